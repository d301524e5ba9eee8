package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// MahasiswaController handles student record administration
type MahasiswaController struct {
	mahasiswaService *services.MahasiswaService
	scopeResolver    *appauth.ScopeResolver
}

// NewMahasiswaController creates a new MahasiswaController
func NewMahasiswaController(mahasiswaService *services.MahasiswaService, scopeResolver *appauth.ScopeResolver) *MahasiswaController {
	return &MahasiswaController{
		mahasiswaService: mahasiswaService,
		scopeResolver:    scopeResolver,
	}
}

// CreateMahasiswa registers a student and their login account
// @Summary Create a mahasiswa
// @Tags mahasiswa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MahasiswaRequest true "Student data"
// @Success 201 {object} dto.APIResponse{data=models.Mahasiswa}
// @Failure 403 {object} dto.ErrorResponse "Prodi outside the caller's scope"
// @Failure 409 {object} dto.ErrorResponse "NIM or email already registered"
// @Router /master/mahasiswa [post]
func (c *MahasiswaController) CreateMahasiswa(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	var req dto.MahasiswaRequest
	if !bindJSON(ctx, &req) {
		return
	}

	mahasiswa, err := c.mahasiswaService.Create(ctx.Request.Context(), scope, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(mahasiswa))
}

// ListMahasiswa returns students within the caller's scope
// @Summary List mahasiswa
// @Tags mahasiswa
// @Produce json
// @Security BearerAuth
// @Param prodi_id query string false "Filter by study program"
// @Param angkatan query int false "Filter by cohort year"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.APIResponse{data=[]models.Mahasiswa}
// @Router /master/mahasiswa [get]
func (c *MahasiswaController) ListMahasiswa(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	angkatan := 0
	if raw := ctx.Query("angkatan"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid angkatan")
			errorDetail = errorDetail.WithDetails("angkatan must be a year")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		angkatan = parsed
	}

	list, err := c.mahasiswaService.List(ctx.Request.Context(), scope, ctx.Query("prodi_id"), angkatan, ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// GetMahasiswa returns one student
// @Summary Get a mahasiswa
// @Tags mahasiswa
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mahasiswa ID"
// @Success 200 {object} dto.APIResponse{data=models.Mahasiswa}
// @Router /master/mahasiswa/{id} [get]
func (c *MahasiswaController) GetMahasiswa(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	mahasiswa, err := c.mahasiswaService.Get(ctx.Request.Context(), scope, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mahasiswa))
}

// UpdateMahasiswa updates a student record
// @Summary Update a mahasiswa
// @Tags mahasiswa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mahasiswa ID"
// @Param request body dto.MahasiswaUpdateRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Mahasiswa}
// @Router /master/mahasiswa/{id} [put]
func (c *MahasiswaController) UpdateMahasiswa(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	var req dto.MahasiswaUpdateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	mahasiswa, err := c.mahasiswaService.Update(ctx.Request.Context(), scope, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mahasiswa))
}

// DeleteMahasiswa removes a student and their account
// @Summary Delete a mahasiswa
// @Tags mahasiswa
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mahasiswa ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /master/mahasiswa/{id} [delete]
func (c *MahasiswaController) DeleteMahasiswa(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	if err := c.mahasiswaService.Delete(ctx.Request.Context(), scope, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Mahasiswa berhasil dihapus"})
}

// MyProfile returns the student record of the calling account
// @Summary Get the caller's student profile
// @Tags mahasiswa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Mahasiswa}
// @Router /mahasiswa/profile [get]
func (c *MahasiswaController) MyProfile(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	m, err := c.mahasiswaService.GetByUser(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(m))
}
