package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// DosenController handles lecturer record administration
type DosenController struct {
	dosenService  *services.DosenService
	scopeResolver *appauth.ScopeResolver
}

// NewDosenController creates a new DosenController
func NewDosenController(dosenService *services.DosenService, scopeResolver *appauth.ScopeResolver) *DosenController {
	return &DosenController{
		dosenService:  dosenService,
		scopeResolver: scopeResolver,
	}
}

// CreateDosen registers a lecturer and their login account
// @Summary Create a dosen
// @Tags dosen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DosenRequest true "Lecturer data"
// @Success 201 {object} dto.APIResponse{data=models.Dosen}
// @Failure 409 {object} dto.ErrorResponse "NIDN or email already registered"
// @Router /master/dosen [post]
func (c *DosenController) CreateDosen(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	var req dto.DosenRequest
	if !bindJSON(ctx, &req) {
		return
	}

	dosen, err := c.dosenService.Create(ctx.Request.Context(), scope, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dosen))
}

// ListDosen returns lecturers within the caller's scope
// @Summary List dosen
// @Tags dosen
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Dosen}
// @Router /master/dosen [get]
func (c *DosenController) ListDosen(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	list, err := c.dosenService.List(ctx.Request.Context(), scope)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// GetDosen returns one lecturer
// @Summary Get a dosen
// @Tags dosen
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dosen ID"
// @Success 200 {object} dto.APIResponse{data=models.Dosen}
// @Router /master/dosen/{id} [get]
func (c *DosenController) GetDosen(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	dosen, err := c.dosenService.Get(ctx.Request.Context(), scope, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dosen))
}

// UpdateDosen updates a lecturer record
// @Summary Update a dosen
// @Tags dosen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dosen ID"
// @Param request body dto.DosenUpdateRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Dosen}
// @Router /master/dosen/{id} [put]
func (c *DosenController) UpdateDosen(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	var req dto.DosenUpdateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	dosen, err := c.dosenService.Update(ctx.Request.Context(), scope, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dosen))
}

// DeleteDosen removes a lecturer and their account
// @Summary Delete a dosen
// @Tags dosen
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dosen ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /master/dosen/{id} [delete]
func (c *DosenController) DeleteDosen(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	if err := c.dosenService.Delete(ctx.Request.Context(), scope, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Dosen berhasil dihapus"})
}
