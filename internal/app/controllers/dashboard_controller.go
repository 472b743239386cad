package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/services"
	"github.com/okandemir/schoolhub/internal/middleware"
)

// DashboardController serves the role-dispatched dashboard endpoint
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard composes the caller's dashboard view
// @Summary Get dashboard
// @Description Returns the summary view matching the caller's role
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object "Role-specific dashboard view"
// @Failure 400 {object} dto.MessageResponse "Unknown role"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Profile missing for role"
// @Failure 500 {object} dto.MessageResponse "Internal server error"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewMessage("Authentication required"))
		return
	}

	view, err := c.dashboardService.GetDashboard(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}
