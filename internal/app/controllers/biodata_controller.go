package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// BiodataController handles the student biodata change workflow
type BiodataController struct {
	biodataService *services.BiodataService
	scopeResolver  *appauth.ScopeResolver
}

// NewBiodataController creates a new BiodataController
func NewBiodataController(biodataService *services.BiodataService, scopeResolver *appauth.ScopeResolver) *BiodataController {
	return &BiodataController{biodataService: biodataService, scopeResolver: scopeResolver}
}

// MyBiodata returns the caller's biodata
// @Summary Get the caller's biodata
// @Tags biodata
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MyBiodataResponse}
// @Router /mahasiswa/biodata [get]
func (c *BiodataController) MyBiodata(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	biodata, err := c.biodataService.MyBiodata(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(biodata))
}

// FillBiodata applies the caller's first biodata fill
// @Summary Fill biodata for the first time
// @Tags biodata
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BiodataChangeRequestBody true "Biodata fields"
// @Success 200 {object} dto.APIResponse{data=models.Mahasiswa}
// @Failure 400 {object} dto.ErrorResponse "Biodata already filled"
// @Router /mahasiswa/biodata [post]
func (c *BiodataController) FillBiodata(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	var req dto.BiodataChangeRequestBody
	if !bindJSON(ctx, &req) {
		return
	}

	biodata, err := c.biodataService.FillBiodata(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(biodata))
}

// SubmitChangeRequest queues a biodata change for admin review
// @Summary Submit a biodata change request
// @Tags biodata
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BiodataChangeRequestBody true "Requested changes"
// @Success 201 {object} dto.APIResponse{data=models.BiodataChangeRequest}
// @Failure 400 {object} dto.ErrorResponse "Pending request already exists or field not editable"
// @Router /mahasiswa/biodata/change-request [post]
func (c *BiodataController) SubmitChangeRequest(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	var req dto.BiodataChangeRequestBody
	if !bindJSON(ctx, &req) {
		return
	}

	request, err := c.biodataService.SubmitChangeRequest(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(request))
}

// MyChangeRequests lists the caller's change requests
// @Summary List the caller's biodata change requests
// @Tags biodata
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.BiodataChangeRequest}
// @Router /mahasiswa/biodata/change-requests [get]
func (c *BiodataController) MyChangeRequests(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	list, err := c.biodataService.MyChangeRequests(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// ListChangeRequests returns the admin review queue
// @Summary List biodata change requests
// @Tags biodata
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.APIResponse{data=[]models.BiodataChangeRequest}
// @Router /biodata/change-requests [get]
func (c *BiodataController) ListChangeRequests(ctx *gin.Context) {
	list, err := c.biodataService.ListChangeRequests(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// GetChangeRequest shows one request next to the current field values
// @Summary Get a biodata change request
// @Tags biodata
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.ChangeRequestDetail}
// @Router /biodata/change-requests/{id} [get]
func (c *BiodataController) GetChangeRequest(ctx *gin.Context) {
	detail, err := c.biodataService.GetChangeRequest(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}

// ListBiodata returns student records within the caller's scope
// @Summary List biodata of students in scope
// @Tags biodata
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Mahasiswa}
// @Router /biodata/list [get]
func (c *BiodataController) ListBiodata(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	list, err := c.biodataService.ListBiodata(ctx.Request.Context(), scope)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// BelumIsi lists in-scope students who have not filled their biodata
// @Summary List students without biodata
// @Tags biodata
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Mahasiswa}
// @Router /biodata/mahasiswa-belum-isi [get]
func (c *BiodataController) BelumIsi(ctx *gin.Context) {
	scope, _, ok := resolveScope(ctx, c.scopeResolver)
	if !ok {
		return
	}

	list, err := c.biodataService.BelumIsi(ctx.Request.Context(), scope)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// ReviewChangeRequest applies the admin verdict on a change request
// @Summary Review a biodata change request
// @Tags biodata
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.ReviewRequest true "Verdict"
// @Success 200 {object} dto.APIResponse{data=models.BiodataChangeRequest}
// @Failure 400 {object} dto.ErrorResponse "Request already reviewed"
// @Router /biodata/change-requests/{id}/review [put]
func (c *BiodataController) ReviewChangeRequest(ctx *gin.Context) {
	var req dto.ReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}

	request, err := c.biodataService.Review(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(request))
}
