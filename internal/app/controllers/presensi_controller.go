package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// PresensiController handles course meetings and attendance
type PresensiController struct {
	presensiService *services.PresensiService
}

// NewPresensiController creates a new PresensiController
func NewPresensiController(presensiService *services.PresensiService) *PresensiController {
	return &PresensiController{presensiService: presensiService}
}

// OpenPertemuan opens a meeting for the caller's section
// @Summary Open a pertemuan
// @Tags presensi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kelas ID"
// @Param request body dto.PertemuanRequest true "Meeting data"
// @Success 201 {object} dto.APIResponse{data=models.Pertemuan}
// @Failure 403 {object} dto.ErrorResponse "Not the lecturer of this kelas"
// @Router /dosen/kelas/{id}/pertemuan [post]
func (c *PresensiController) OpenPertemuan(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	var req dto.PertemuanRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pertemuan, err := c.presensiService.OpenPertemuan(ctx.Request.Context(), user.ID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(pertemuan))
}

// ListPertemuan lists meetings of the caller's section
// @Summary List pertemuan of a kelas
// @Tags presensi
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kelas ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Pertemuan}
// @Router /dosen/kelas/{id}/pertemuan [get]
func (c *PresensiController) ListPertemuan(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	list, err := c.presensiService.ListPertemuan(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// RecordKehadiran records attendance for one meeting
// @Summary Record kehadiran for a pertemuan
// @Tags presensi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pertemuan ID"
// @Param request body dto.PresensiRequest true "Attendance entries"
// @Success 200 {object} dto.APIResponse{data=[]models.Kehadiran}
// @Router /dosen/pertemuan/{id}/kehadiran [post]
func (c *PresensiController) RecordKehadiran(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	var req dto.PresensiRequest
	if !bindJSON(ctx, &req) {
		return
	}

	entries, err := c.presensiService.RecordKehadiran(ctx.Request.Context(), user.ID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entries))
}

// ListKehadiran lists attendance of one meeting
// @Summary List kehadiran of a pertemuan
// @Tags presensi
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pertemuan ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Kehadiran}
// @Router /dosen/pertemuan/{id}/kehadiran [get]
func (c *PresensiController) ListKehadiran(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	list, err := c.presensiService.ListKehadiran(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// RekapKehadiran summarizes attendance per student for a section
// @Summary Recap kehadiran of a kelas
// @Tags presensi
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kelas ID"
// @Success 200 {object} dto.APIResponse
// @Router /dosen/kelas/{id}/presensi/rekap [get]
func (c *PresensiController) RekapKehadiran(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	rekap, err := c.presensiService.RekapKelas(ctx.Request.Context(), user.ID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rekap))
}

// MyPresensi returns the caller's attendance counters per kelas
// @Summary Get the caller's attendance recap
// @Tags presensi
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /mahasiswa/presensi [get]
func (c *PresensiController) MyPresensi(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	rekap, err := c.presensiService.MyPresensi(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rekap))
}
