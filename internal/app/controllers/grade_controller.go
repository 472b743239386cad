package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/app/services"
	"github.com/okandemir/schoolhub/internal/middleware"
	"github.com/okandemir/schoolhub/internal/pkg/helpers"
)

// GradeController handles grade endpoints
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{
		gradeService: gradeService,
	}
}

// List retrieves grades
// @Summary List grades
// @Description Retrieves grades by exam date descending, with filters
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param examId query int false "Filter by exam"
// @Param subjectId query int false "Filter by subject"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GradeListResponse "Grades"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Router /grades [get]
func (c *GradeController) List(ctx *gin.Context) {
	filter := repositories.GradeFilter{
		StudentID: queryInt64(ctx, "studentId"),
		ExamID:    queryInt64(ctx, "examId"),
		SubjectID: queryInt64(ctx, "subjectId"),
	}
	page, limit := helpers.ParsePaginationParams(ctx)

	resp, err := c.gradeService.List(ctx.Request.Context(), filter, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetByID retrieves one grade
// @Summary Get grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 200 {object} models.Grade "Grade"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Failure 404 {object} dto.MessageResponse "Not found"
// @Router /grades/{id} [get]
func (c *GradeController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	grade, err := c.gradeService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, grade)
}

// GetStudentGrades retrieves a student's grades with their average
// @Summary Get student grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.StudentGradesResponse "Grades and average"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Router /grades/student/{studentId} [get]
func (c *GradeController) GetStudentGrades(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	resp, err := c.gradeService.GetStudentGrades(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetExamGrades retrieves an exam's grades with their statistics
// @Summary Get exam grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param examId path int true "Exam ID"
// @Success 200 {object} dto.ExamGradesResponse "Grades and statistics"
// @Failure 404 {object} dto.MessageResponse "Exam not found"
// @Router /grades/exam/{examId} [get]
func (c *GradeController) GetExamGrades(ctx *gin.Context) {
	examID, ok := parseIDParam(ctx, "examId")
	if !ok {
		return
	}

	resp, err := c.gradeService.GetExamGrades(ctx.Request.Context(), examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Create records a grade
// @Summary Create grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGradeRequest true "Grade"
// @Success 201 {object} dto.GradeResponse "Grade created"
// @Failure 400 {object} dto.MessageResponse "Invalid request data"
// @Failure 409 {object} dto.MessageResponse "Grade already exists"
// @Router /grades [post]
func (c *GradeController) Create(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessage("Invalid grade data: "+middleware.BindingErrorMessage(err)))
		return
	}

	grade, err := c.gradeService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.GradeResponse{
		Message: "Grade created",
		Grade:   *grade,
	})
}

// Update changes the marks of a grade
// @Summary Update grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Param request body dto.UpdateGradeRequest true "New marks"
// @Success 200 {object} dto.GradeResponse "Grade updated"
// @Failure 400 {object} dto.MessageResponse "Invalid request data"
// @Failure 404 {object} dto.MessageResponse "Not found"
// @Router /grades/{id} [put]
func (c *GradeController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessage("Invalid grade data: "+middleware.BindingErrorMessage(err)))
		return
	}

	grade, err := c.gradeService.UpdateMarks(ctx.Request.Context(), id, *req.Marks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GradeResponse{
		Message: "Grade updated",
		Grade:   *grade,
	})
}

// Delete removes a grade
// @Summary Delete grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.MessageResponse "Grade deleted"
// @Failure 404 {object} dto.MessageResponse "Not found"
// @Router /grades/{id} [delete]
func (c *GradeController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.gradeService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessage("Grade deleted"))
}
