package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/app/services"
	"github.com/okandemir/schoolhub/internal/middleware"
	"github.com/okandemir/schoolhub/internal/pkg/helpers"
)

// AttendanceController handles attendance endpoints
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// List retrieves attendance records
// @Summary List attendance
// @Description Retrieves attendance records newest first, with filters
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param classId query int false "Filter by class"
// @Param studentId query int false "Filter by student"
// @Param date query string false "Filter to one day (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.AttendanceListResponse "Attendance records"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Failure 500 {object} dto.MessageResponse "Internal server error"
// @Router /attendance [get]
func (c *AttendanceController) List(ctx *gin.Context) {
	filter := repositories.AttendanceFilter{
		ClassID:   queryInt64(ctx, "classId"),
		StudentID: queryInt64(ctx, "studentId"),
		Date:      queryDate(ctx, "date"),
	}
	page, limit := helpers.ParsePaginationParams(ctx)

	resp, err := c.attendanceService.List(ctx.Request.Context(), filter, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetByID retrieves one attendance record
// @Summary Get attendance record
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Success 200 {object} models.Attendance "Attendance record"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Failure 404 {object} dto.MessageResponse "Not found"
// @Router /attendance/{id} [get]
func (c *AttendanceController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	attendance, err := c.attendanceService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, attendance)
}

// GetStudentAttendance retrieves a student's records with their summary
// @Summary Get student attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.StudentAttendanceResponse "Records and summary"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Router /attendance/student/{studentId} [get]
func (c *AttendanceController) GetStudentAttendance(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	resp, err := c.attendanceService.GetStudentAttendance(ctx.Request.Context(), studentID,
		queryDate(ctx, "from"), queryDate(ctx, "to"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetClassAttendance retrieves a class's records
// @Summary Get class attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID"
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Success 200 {object} dto.ClassAttendanceResponse "Records"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Failure 404 {object} dto.MessageResponse "Class not found"
// @Router /attendance/class/{classId} [get]
func (c *AttendanceController) GetClassAttendance(ctx *gin.Context) {
	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	resp, err := c.attendanceService.GetClassAttendance(ctx.Request.Context(), classID, queryDate(ctx, "date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Mark records attendance for a student
// @Summary Mark attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance record"
// @Success 201 {object} dto.AttendanceResponse "Attendance marked"
// @Failure 400 {object} dto.MessageResponse "Invalid request data"
// @Failure 409 {object} dto.MessageResponse "Already marked for this date"
// @Router /attendance [post]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessage("Invalid attendance data: "+middleware.BindingErrorMessage(err)))
		return
	}

	attendance, err := c.attendanceService.Mark(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AttendanceResponse{
		Message:    "Attendance marked",
		Attendance: *attendance,
	})
}

// UpdateStatus changes the status of a record
// @Summary Update attendance status
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Param request body dto.UpdateAttendanceRequest true "New status"
// @Success 200 {object} dto.AttendanceResponse "Attendance updated"
// @Failure 400 {object} dto.MessageResponse "Invalid request data"
// @Failure 404 {object} dto.MessageResponse "Not found"
// @Router /attendance/{id} [put]
func (c *AttendanceController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessage("Invalid attendance data: "+middleware.BindingErrorMessage(err)))
		return
	}

	attendance, err := c.attendanceService.UpdateStatus(ctx.Request.Context(), id, models.AttendanceStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AttendanceResponse{
		Message:    "Attendance updated",
		Attendance: *attendance,
	})
}
