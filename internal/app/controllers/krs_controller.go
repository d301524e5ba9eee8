package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// KRSController handles course enrollment for students and the
// approval workflow for academic advisors.
type KRSController struct {
	krsService *services.KRSService
}

// NewKRSController creates a new KRSController
func NewKRSController(krsService *services.KRSService) *KRSController {
	return &KRSController{krsService: krsService}
}

// Enroll adds a class section to the caller's study plan
// @Summary Enroll in a kelas
// @Tags krs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.KRSRequest true "Section to enroll in"
// @Success 201 {object} dto.APIResponse{data=models.KRS}
// @Failure 400 {object} dto.ErrorResponse "Kuota penuh"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /mahasiswa/krs [post]
func (c *KRSController) Enroll(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	var req dto.KRSRequest
	if !bindJSON(ctx, &req) {
		return
	}

	krs, err := c.krsService.Enroll(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(krs))
}

// MyKRS returns the caller's study plan for a term
// @Summary List the caller's KRS entries
// @Tags krs
// @Produce json
// @Security BearerAuth
// @Param tahun_akademik_id query string false "Term, defaults to the active one"
// @Success 200 {object} dto.APIResponse{data=[]models.KRS}
// @Router /mahasiswa/krs [get]
func (c *KRSController) MyKRS(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	list, err := c.krsService.MyKRS(ctx.Request.Context(), user.ID, ctx.Query("tahun_akademik_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// Drop removes a pending entry from the caller's study plan
// @Summary Drop a KRS entry
// @Tags krs
// @Produce json
// @Security BearerAuth
// @Param id path string true "KRS ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Entry already approved"
// @Router /mahasiswa/krs/{id} [delete]
func (c *KRSController) Drop(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	if err := c.krsService.Drop(ctx.Request.Context(), user.ID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "KRS berhasil dibatalkan"})
}

// ListAll returns every enrollment for administrative review
// @Summary List all KRS entries
// @Tags krs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param tahun_akademik_id query string false "Filter by term"
// @Success 200 {object} dto.APIResponse{data=[]models.KRS}
// @Router /akademik/krs [get]
func (c *KRSController) ListAll(ctx *gin.Context) {
	list, err := c.krsService.ListAll(ctx.Request.Context(), ctx.Query("status"), ctx.Query("tahun_akademik_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// PendingApprovals lists submissions awaiting the advisor's verdict
// @Summary List pending KRS approvals for the caller's advisees
// @Tags krs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.KRS}
// @Router /akademik/krs/approvals [get]
func (c *KRSController) PendingApprovals(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	list, err := c.krsService.PendingApprovals(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// Approve accepts an advisee's submission
// @Summary Approve a KRS entry
// @Tags krs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "KRS ID"
// @Param request body dto.KRSVerdictRequest false "Optional note"
// @Success 200 {object} dto.APIResponse{data=models.KRS}
// @Failure 403 {object} dto.ErrorResponse "Not the advisor of this student"
// @Router /akademik/krs/{id}/approve [put]
func (c *KRSController) Approve(ctx *gin.Context) {
	c.review(ctx, "approve")
}

// Reject turns down an advisee's submission
// @Summary Reject a KRS entry
// @Tags krs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "KRS ID"
// @Param request body dto.KRSVerdictRequest false "Optional note"
// @Success 200 {object} dto.APIResponse{data=models.KRS}
// @Failure 403 {object} dto.ErrorResponse "Not the advisor of this student"
// @Router /akademik/krs/{id}/reject [put]
func (c *KRSController) Reject(ctx *gin.Context) {
	c.review(ctx, "reject")
}

func (c *KRSController) review(ctx *gin.Context, action string) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	var body dto.KRSVerdictRequest
	if ctx.Request.ContentLength > 0 && !bindJSON(ctx, &body) {
		return
	}

	req := dto.KRSReviewRequest{Action: action, CatatanPA: body.Catatan}
	krs, err := c.krsService.Review(ctx.Request.Context(), user, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(krs))
}

// Roster lists enrollments of one class section
// @Summary List KRS entries of a kelas
// @Tags krs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kelas ID"
// @Success 200 {object} dto.APIResponse{data=[]models.KRS}
// @Router /dosen/kelas/{id}/mahasiswa [get]
func (c *KRSController) Roster(ctx *gin.Context) {
	list, err := c.krsService.Roster(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}
