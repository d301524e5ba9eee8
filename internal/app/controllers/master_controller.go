package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// MasterController handles master data operations: fakultas, prodi,
// kurikulum, mata kuliah, and tahun akademik.
type MasterController struct {
	masterService *services.MasterService
	scopeResolver *appauth.ScopeResolver
}

// NewMasterController creates a new MasterController
func NewMasterController(masterService *services.MasterService, scopeResolver *appauth.ScopeResolver) *MasterController {
	return &MasterController{
		masterService: masterService,
		scopeResolver: scopeResolver,
	}
}

// --- Fakultas ---

// CreateFakultas creates a faculty
// @Summary Create a faculty
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FakultasRequest true "Faculty data"
// @Success 201 {object} dto.APIResponse{data=models.Fakultas}
// @Router /master/fakultas [post]
func (c *MasterController) CreateFakultas(ctx *gin.Context) {
	var req dto.FakultasRequest
	if !bindJSON(ctx, &req) {
		return
	}

	fakultas, err := c.masterService.CreateFakultas(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(fakultas))
}

// ListFakultas returns all faculties
// @Summary List faculties
// @Tags master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Fakultas}
// @Router /master/fakultas [get]
func (c *MasterController) ListFakultas(ctx *gin.Context) {
	list, err := c.masterService.ListFakultas(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// GetFakultas returns one faculty
// @Summary Get a faculty
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fakultas ID"
// @Success 200 {object} dto.APIResponse{data=models.Fakultas}
// @Router /master/fakultas/{id} [get]
func (c *MasterController) GetFakultas(ctx *gin.Context) {
	fakultas, err := c.masterService.GetFakultas(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(fakultas))
}

// UpdateFakultas updates a faculty
// @Summary Update a faculty
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fakultas ID"
// @Param request body dto.FakultasRequest true "Faculty data"
// @Success 200 {object} dto.APIResponse{data=models.Fakultas}
// @Router /master/fakultas/{id} [put]
func (c *MasterController) UpdateFakultas(ctx *gin.Context) {
	var req dto.FakultasRequest
	if !bindJSON(ctx, &req) {
		return
	}

	fakultas, err := c.masterService.UpdateFakultas(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(fakultas))
}

// DeleteFakultas deletes a faculty
// @Summary Delete a faculty
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fakultas ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /master/fakultas/{id} [delete]
func (c *MasterController) DeleteFakultas(ctx *gin.Context) {
	if err := c.masterService.DeleteFakultas(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Fakultas berhasil dihapus"})
}

// --- Prodi ---

// CreateProdi creates a study program
// @Summary Create a prodi
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProdiRequest true "Prodi data"
// @Success 201 {object} dto.APIResponse{data=models.Prodi}
// @Router /master/prodi [post]
func (c *MasterController) CreateProdi(ctx *gin.Context) {
	var req dto.ProdiRequest
	if !bindJSON(ctx, &req) {
		return
	}

	prodi, err := c.masterService.CreateProdi(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(prodi))
}

// ListProdi returns study programs within the caller's scope
// @Summary List prodi
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param fakultas_id query string false "Filter by faculty"
// @Success 200 {object} dto.APIResponse{data=[]models.Prodi}
// @Router /master/prodi [get]
func (c *MasterController) ListProdi(ctx *gin.Context) {
	scope, ok := browseScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	list, err := c.masterService.ListProdi(ctx.Request.Context(), scope, ctx.Query("fakultas_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// GetProdi returns one study program
// @Summary Get a prodi
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param id path string true "Prodi ID"
// @Success 200 {object} dto.APIResponse{data=models.Prodi}
// @Router /master/prodi/{id} [get]
func (c *MasterController) GetProdi(ctx *gin.Context) {
	prodi, err := c.masterService.GetProdi(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(prodi))
}

// UpdateProdi updates a study program
// @Summary Update a prodi
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Prodi ID"
// @Param request body dto.ProdiRequest true "Prodi data"
// @Success 200 {object} dto.APIResponse{data=models.Prodi}
// @Router /master/prodi/{id} [put]
func (c *MasterController) UpdateProdi(ctx *gin.Context) {
	var req dto.ProdiRequest
	if !bindJSON(ctx, &req) {
		return
	}

	prodi, err := c.masterService.UpdateProdi(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(prodi))
}

// DeleteProdi deletes a study program
// @Summary Delete a prodi
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param id path string true "Prodi ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /master/prodi/{id} [delete]
func (c *MasterController) DeleteProdi(ctx *gin.Context) {
	if err := c.masterService.DeleteProdi(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Prodi berhasil dihapus"})
}

// --- Kurikulum ---

// CreateKurikulum creates a curriculum
// @Summary Create a kurikulum
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.KurikulumRequest true "Kurikulum data"
// @Success 201 {object} dto.APIResponse{data=models.Kurikulum}
// @Router /master/kurikulum [post]
func (c *MasterController) CreateKurikulum(ctx *gin.Context) {
	var req dto.KurikulumRequest
	if !bindJSON(ctx, &req) {
		return
	}

	kurikulum, err := c.masterService.CreateKurikulum(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(kurikulum))
}

// ListKurikulum returns curricula within the caller's scope
// @Summary List kurikulum
// @Tags master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Kurikulum}
// @Router /master/kurikulum [get]
func (c *MasterController) ListKurikulum(ctx *gin.Context) {
	scope, ok := browseScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	list, err := c.masterService.ListKurikulum(ctx.Request.Context(), scope)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// UpdateKurikulum updates a curriculum
// @Summary Update a kurikulum
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kurikulum ID"
// @Param request body dto.KurikulumRequest true "Kurikulum data"
// @Success 200 {object} dto.APIResponse{data=models.Kurikulum}
// @Router /master/kurikulum/{id} [put]
func (c *MasterController) UpdateKurikulum(ctx *gin.Context) {
	var req dto.KurikulumRequest
	if !bindJSON(ctx, &req) {
		return
	}

	kurikulum, err := c.masterService.UpdateKurikulum(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(kurikulum))
}

// DeleteKurikulum deletes a curriculum
// @Summary Delete a kurikulum
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kurikulum ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /master/kurikulum/{id} [delete]
func (c *MasterController) DeleteKurikulum(ctx *gin.Context) {
	if err := c.masterService.DeleteKurikulum(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Kurikulum berhasil dihapus"})
}

// --- Mata Kuliah ---

// CreateMataKuliah creates a course
// @Summary Create a mata kuliah
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MataKuliahRequest true "Mata kuliah data"
// @Success 201 {object} dto.APIResponse{data=models.MataKuliah}
// @Router /master/mata-kuliah [post]
func (c *MasterController) CreateMataKuliah(ctx *gin.Context) {
	var req dto.MataKuliahRequest
	if !bindJSON(ctx, &req) {
		return
	}

	mataKuliah, err := c.masterService.CreateMataKuliah(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(mataKuliah))
}

// ListMataKuliah returns courses within the caller's scope
// @Summary List mata kuliah
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param kurikulum_id query string false "Filter by kurikulum"
// @Success 200 {object} dto.APIResponse{data=[]models.MataKuliah}
// @Router /master/mata-kuliah [get]
func (c *MasterController) ListMataKuliah(ctx *gin.Context) {
	scope, ok := browseScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	list, err := c.masterService.ListMataKuliah(ctx.Request.Context(), scope, ctx.Query("kurikulum_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// UpdateMataKuliah updates a course
// @Summary Update a mata kuliah
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mata kuliah ID"
// @Param request body dto.MataKuliahRequest true "Mata kuliah data"
// @Success 200 {object} dto.APIResponse{data=models.MataKuliah}
// @Router /master/mata-kuliah/{id} [put]
func (c *MasterController) UpdateMataKuliah(ctx *gin.Context) {
	var req dto.MataKuliahRequest
	if !bindJSON(ctx, &req) {
		return
	}

	mataKuliah, err := c.masterService.UpdateMataKuliah(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mataKuliah))
}

// DeleteMataKuliah deletes a course
// @Summary Delete a mata kuliah
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mata kuliah ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /master/mata-kuliah/{id} [delete]
func (c *MasterController) DeleteMataKuliah(ctx *gin.Context) {
	if err := c.masterService.DeleteMataKuliah(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Mata kuliah berhasil dihapus"})
}

// --- Tahun Akademik ---

// CreateTahunAkademik creates an academic term
// @Summary Create a tahun akademik
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TahunAkademikRequest true "Term data"
// @Success 201 {object} dto.APIResponse{data=models.TahunAkademik}
// @Router /master/tahun-akademik [post]
func (c *MasterController) CreateTahunAkademik(ctx *gin.Context) {
	var req dto.TahunAkademikRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tahun, err := c.masterService.CreateTahunAkademik(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(tahun))
}

// ListTahunAkademik returns all academic terms
// @Summary List tahun akademik
// @Tags master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.TahunAkademik}
// @Router /master/tahun-akademik [get]
func (c *MasterController) ListTahunAkademik(ctx *gin.Context) {
	list, err := c.masterService.ListTahunAkademik(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// GetActiveTahunAkademik returns the active academic term
// @Summary Get the active tahun akademik
// @Tags master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.TahunAkademik}
// @Router /master/tahun-akademik/active [get]
func (c *MasterController) GetActiveTahunAkademik(ctx *gin.Context) {
	tahun, err := c.masterService.GetActiveTahunAkademik(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tahun))
}

// ActivateTahunAkademik makes a term the single active one
// @Summary Activate a tahun akademik
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tahun akademik ID"
// @Success 200 {object} dto.APIResponse{data=models.TahunAkademik}
// @Router /master/tahun-akademik/{id}/activate [put]
func (c *MasterController) ActivateTahunAkademik(ctx *gin.Context) {
	tahun, err := c.masterService.ActivateTahunAkademik(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tahun))
}

// UpdateTahunAkademik updates an academic term
// @Summary Update a tahun akademik
// @Tags master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tahun akademik ID"
// @Param request body dto.TahunAkademikRequest true "Term data"
// @Success 200 {object} dto.APIResponse{data=models.TahunAkademik}
// @Router /master/tahun-akademik/{id} [put]
func (c *MasterController) UpdateTahunAkademik(ctx *gin.Context) {
	var req dto.TahunAkademikRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tahun, err := c.masterService.UpdateTahunAkademik(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tahun))
}

// DeleteTahunAkademik deletes an academic term
// @Summary Delete a tahun akademik
// @Tags master
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tahun akademik ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /master/tahun-akademik/{id} [delete]
func (c *MasterController) DeleteTahunAkademik(ctx *gin.Context) {
	if err := c.masterService.DeleteTahunAkademik(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Tahun akademik berhasil dihapus"})
}
