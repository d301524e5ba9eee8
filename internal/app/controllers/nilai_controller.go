package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// NilaiController handles grade entry and student transcripts
type NilaiController struct {
	nilaiService *services.NilaiService
}

// NewNilaiController creates a new NilaiController
func NewNilaiController(nilaiService *services.NilaiService) *NilaiController {
	return &NilaiController{nilaiService: nilaiService}
}

// UpsertNilai records component scores for one enrollment in the caller's section
// @Summary Input nilai for an approved KRS entry
// @Tags nilai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NilaiRequest true "Component scores"
// @Success 200 {object} dto.APIResponse{data=models.Nilai}
// @Failure 403 {object} dto.ErrorResponse "Not the lecturer of this kelas"
// @Router /dosen/nilai [post]
func (c *NilaiController) UpsertNilai(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	var req dto.NilaiRequest
	if !bindJSON(ctx, &req) {
		return
	}

	nilai, err := c.nilaiService.Upsert(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nilai))
}

// ListNilai returns the grade sheet of the caller's section
// @Summary List nilai of a kelas
// @Tags nilai
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kelas ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Nilai}
// @Router /dosen/kelas/{id}/nilai [get]
func (c *NilaiController) ListNilai(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	list, err := c.nilaiService.ListByKelas(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// KHS returns the caller's study result card for one term
// @Summary Get the caller's KHS
// @Tags nilai
// @Produce json
// @Security BearerAuth
// @Param tahun_akademik_id query string false "Term, defaults to the active one"
// @Success 200 {object} dto.APIResponse{data=dto.KHSResponse}
// @Router /mahasiswa/khs [get]
func (c *NilaiController) KHS(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	khs, err := c.nilaiService.KHS(ctx.Request.Context(), user.ID, ctx.Query("tahun_akademik_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(khs))
}

// Transkrip returns the caller's cumulative transcript
// @Summary Get the caller's transcript
// @Tags nilai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TranskripResponse}
// @Router /mahasiswa/transkrip [get]
func (c *NilaiController) Transkrip(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	transkrip, err := c.nilaiService.Transkrip(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(transkrip))
}
