package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okandemir/schoolhub/internal/app/auth"
	"github.com/okandemir/schoolhub/internal/app/controllers"
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	attendanceController *controllers.AttendanceController,
	gradeController *controllers.GradeController,
	enrollmentController *controllers.EnrollmentController,
	notificationController *controllers.NotificationController,
	classController *controllers.ClassController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile routes (any authenticated role)
		authenticated.GET("/auth/profile", authController.GetProfile)
		authenticated.PUT("/auth/profile", authController.UpdateProfile)

		// Role-dispatched dashboard
		authenticated.GET("/dashboard", dashboardController.GetDashboard)

		// Attendance routes
		attendance := authenticated.Group("/attendance")
		{
			// Ownership-gated reads: students and parents reach their own
			// records, teachers those of their classes, admins everything
			attendance.GET("/student/:studentId",
				authMiddleware.RequireOwnership(auth.ResourceStudent, "studentId"),
				attendanceController.GetStudentAttendance)
			attendance.GET("/class/:classId",
				authMiddleware.RequireClassOwnership("classId"),
				attendanceController.GetClassAttendance)
			attendance.GET("/:id",
				authMiddleware.RequireOwnership(auth.ResourceAttendance, "id"),
				attendanceController.GetByID)

			attendanceStaff := attendance.Group("")
			attendanceStaff.Use(authMiddleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))
			{
				attendanceStaff.GET("", attendanceController.List)
				attendanceStaff.POST("", attendanceController.Mark)
				attendanceStaff.PUT("/:id", attendanceController.UpdateStatus)
			}
		}

		// Grade routes
		grades := authenticated.Group("/grades")
		{
			grades.GET("/student/:studentId",
				authMiddleware.RequireOwnership(auth.ResourceStudent, "studentId"),
				gradeController.GetStudentGrades)
			grades.GET("/:id",
				authMiddleware.RequireOwnership(auth.ResourceGrade, "id"),
				gradeController.GetByID)

			gradesStaff := grades.Group("")
			gradesStaff.Use(authMiddleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))
			{
				gradesStaff.GET("", gradeController.List)
				gradesStaff.GET("/exam/:examId", gradeController.GetExamGrades)
				gradesStaff.POST("", gradeController.Create)
				gradesStaff.PUT("/:id", gradeController.Update)
				gradesStaff.DELETE("/:id", gradeController.Delete)
			}
		}

		// Enrollment routes
		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.GET("",
				authMiddleware.RequireRoles(models.RoleTeacher, models.RoleAdmin),
				enrollmentController.List)

			enrollmentsAdmin := enrollments.Group("")
			enrollmentsAdmin.Use(authMiddleware.RequireRoles(models.RoleAdmin))
			{
				enrollmentsAdmin.POST("", enrollmentController.Create)
				enrollmentsAdmin.POST("/assign", enrollmentController.Assign)
				enrollmentsAdmin.DELETE("/:id", enrollmentController.Delete)
			}
		}

		// Notification routes (always scoped to the caller)
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.DELETE("/:id", notificationController.Delete)
		}

		// Class routes
		classes := authenticated.Group("/classes")
		{
			classes.GET("", classController.List)
			classes.GET("/:classId",
				authMiddleware.RequireClassMembership("classId"),
				classController.Get)
			classes.GET("/:classId/students",
				authMiddleware.RequireClassMembership("classId"),
				classController.GetStudents)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
