package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/services"
	"github.com/okandemir/schoolhub/internal/middleware"
)

// ClassController handles class listing and detail endpoints
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// List retrieves all classes
// @Summary List classes
// @Description Retrieves every class with its teacher and student count
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClassListResponse "Classes"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 500 {object} dto.MessageResponse "Internal server error"
// @Router /classes [get]
func (c *ClassController) List(ctx *gin.Context) {
	classes, err := c.classService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ClassListResponse{Classes: classes})
}

// Get retrieves one class with students and subjects
// @Summary Get class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID"
// @Success 200 {object} models.Class "Class detail"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Failure 404 {object} dto.MessageResponse "Class not found"
// @Router /classes/{classId} [get]
func (c *ClassController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	class, err := c.classService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, class)
}

// GetStudents retrieves the roster of a class
// @Summary Get class students
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID"
// @Success 200 {object} dto.ClassStudentsResponse "Students"
// @Failure 403 {object} dto.MessageResponse "Forbidden"
// @Failure 404 {object} dto.MessageResponse "Class not found"
// @Router /classes/{classId}/students [get]
func (c *ClassController) GetStudents(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	students, err := c.classService.GetStudents(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ClassStudentsResponse{Students: students})
}
