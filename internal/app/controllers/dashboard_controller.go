package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// DashboardController serves management summary counters
type DashboardController struct {
	dashboardService *services.DashboardService
	scopeResolver    *appauth.ScopeResolver
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, scopeResolver *appauth.ScopeResolver) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		scopeResolver:    scopeResolver,
	}
}

// Summary returns counters scoped to the caller's visibility
// @Summary Get dashboard counters
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Router /dashboard/stats [get]
func (c *DashboardController) Summary(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	summary, err := c.dashboardService.Summary(ctx.Request.Context(), scope)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary))
}
