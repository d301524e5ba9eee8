package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// KelasController handles class sections and schedule conflict checks
type KelasController struct {
	jadwalService *services.JadwalService
	dosenService  *services.DosenService
	scopeResolver *appauth.ScopeResolver
}

// NewKelasController creates a new KelasController
func NewKelasController(jadwalService *services.JadwalService, dosenService *services.DosenService, scopeResolver *appauth.ScopeResolver) *KelasController {
	return &KelasController{
		jadwalService: jadwalService,
		dosenService:  dosenService,
		scopeResolver: scopeResolver,
	}
}

// CheckConflict probes a candidate slot without persisting anything
// @Summary Check a schedule slot for conflicts
// @Tags kelas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckConflictRequest true "Candidate slot"
// @Success 200 {object} dto.KonflikResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid slot"
// @Router /akademik/kelas/check-conflict [post]
func (c *KelasController) CheckConflict(ctx *gin.Context) {
	var req dto.CheckConflictRequest
	if !bindJSON(ctx, &req) {
		return
	}

	konflik, err := c.jadwalService.CheckConflict(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, konflik)
}

// CreateKelas creates a class section, rejecting conflicting slots
// @Summary Create a kelas
// @Tags kelas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.KelasRequest true "Section data"
// @Success 201 {object} dto.APIResponse{data=models.Kelas}
// @Failure 409 {object} dto.ErrorResponse "Schedule conflict"
// @Router /akademik/kelas [post]
func (c *KelasController) CreateKelas(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	var req dto.KelasRequest
	if !bindJSON(ctx, &req) {
		return
	}

	kelas, err := c.jadwalService.CreateKelas(ctx.Request.Context(), scope, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(kelas))
}

// ListKelas returns class sections within the caller's scope
// @Summary List kelas
// @Tags kelas
// @Produce json
// @Security BearerAuth
// @Param tahun_akademik_id query string false "Filter by term"
// @Param dosen_id query string false "Filter by lecturer"
// @Success 200 {object} dto.APIResponse{data=[]models.Kelas}
// @Router /akademik/kelas [get]
func (c *KelasController) ListKelas(ctx *gin.Context) {
	scope, ok := browseScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	list, err := c.jadwalService.ListKelas(ctx.Request.Context(), scope, ctx.Query("tahun_akademik_id"), ctx.Query("dosen_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// MyKelas returns the teaching load of the authenticated dosen
// @Summary List the caller's teaching sections
// @Tags kelas
// @Produce json
// @Security BearerAuth
// @Param tahun_akademik_id query string false "Filter by term"
// @Success 200 {object} dto.APIResponse{data=[]models.Kelas}
// @Router /dosen/kelas [get]
func (c *KelasController) MyKelas(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	dosen, err := c.dosenService.GetByUser(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	list, err := c.jadwalService.ListKelasByDosen(ctx.Request.Context(), dosen.ID, ctx.Query("tahun_akademik_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// GetKelas returns one class section
// @Summary Get a kelas
// @Tags kelas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kelas ID"
// @Success 200 {object} dto.APIResponse{data=models.Kelas}
// @Router /akademik/kelas/{id} [get]
func (c *KelasController) GetKelas(ctx *gin.Context) {
	scope, ok := browseScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	kelas, err := c.jadwalService.GetKelas(ctx.Request.Context(), scope, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(kelas))
}

// UpdateKelas updates a class section, re-running the conflict probe
// @Summary Update a kelas
// @Tags kelas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kelas ID"
// @Param request body dto.KelasRequest true "Section data"
// @Success 200 {object} dto.APIResponse{data=models.Kelas}
// @Failure 409 {object} dto.ErrorResponse "Schedule conflict"
// @Router /akademik/kelas/{id} [put]
func (c *KelasController) UpdateKelas(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	var req dto.KelasRequest
	if !bindJSON(ctx, &req) {
		return
	}

	kelas, err := c.jadwalService.UpdateKelas(ctx.Request.Context(), scope, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(kelas))
}

// DeleteKelas deletes a class section
// @Summary Delete a kelas
// @Tags kelas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kelas ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /akademik/kelas/{id} [delete]
func (c *KelasController) DeleteKelas(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	if err := c.jadwalService.DeleteKelas(ctx.Request.Context(), scope, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Kelas berhasil dihapus"})
}

// KelasTersedia lists sections open for enrollment
// @Summary List sections available for enrollment
// @Tags kelas
// @Produce json
// @Security BearerAuth
// @Param tahun_akademik_id query string false "Term, defaults to the active one"
// @Success 200 {object} dto.APIResponse{data=[]models.Kelas}
// @Router /mahasiswa/kelas-tersedia [get]
func (c *KelasController) KelasTersedia(ctx *gin.Context) {
	list, err := c.jadwalService.ListKelasTersedia(ctx.Request.Context(), ctx.Query("tahun_akademik_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

