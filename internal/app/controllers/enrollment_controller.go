package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/app/services"
	"github.com/okandemir/schoolhub/internal/middleware"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// List retrieves enrollments
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param classId query int false "Filter by class"
// @Success 200 {object} dto.EnrollmentListResponse "Enrollments"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Router /enrollments [get]
func (c *EnrollmentController) List(ctx *gin.Context) {
	filter := repositories.EnrollmentFilter{
		StudentID: queryInt64(ctx, "studentId"),
		ClassID:   queryInt64(ctx, "classId"),
	}

	enrollments, err := c.enrollmentService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EnrollmentListResponse{Enrollments: enrollments})
}

// Create enrolls a student in a class
// @Summary Create enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequest true "Enrollment"
// @Success 201 {object} dto.EnrollmentResponse "Enrollment created"
// @Failure 400 {object} dto.MessageResponse "Invalid request data"
// @Failure 404 {object} dto.MessageResponse "Class not found"
// @Failure 409 {object} dto.MessageResponse "Already enrolled"
// @Router /enrollments [post]
func (c *EnrollmentController) Create(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessage("Invalid enrollment data: "+middleware.BindingErrorMessage(err)))
		return
	}

	enrollment, err := c.enrollmentService.Create(ctx.Request.Context(), req.StudentID, req.ClassID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.EnrollmentResponse{
		Message:    "Enrollment created",
		Enrollment: *enrollment,
	})
}

// Assign enrolls a student looked up by email
// @Summary Assign student to class by email
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignStudentRequest true "Assignment"
// @Success 201 {object} dto.EnrollmentResponse "Enrollment created"
// @Failure 400 {object} dto.MessageResponse "Invalid request data"
// @Failure 404 {object} dto.MessageResponse "Student or class not found"
// @Failure 409 {object} dto.MessageResponse "Already enrolled"
// @Router /enrollments/assign [post]
func (c *EnrollmentController) Assign(ctx *gin.Context) {
	var req dto.AssignStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessage("Invalid assignment data: "+middleware.BindingErrorMessage(err)))
		return
	}

	enrollment, err := c.enrollmentService.AssignByEmail(ctx.Request.Context(), req.StudentEmail, req.ClassID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.EnrollmentResponse{
		Message:    "Enrollment created",
		Enrollment: *enrollment,
	})
}

// Delete removes an enrollment
// @Summary Delete enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.MessageResponse "Enrollment deleted"
// @Failure 404 {object} dto.MessageResponse "Not found"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.enrollmentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessage("Enrollment deleted"))
}
