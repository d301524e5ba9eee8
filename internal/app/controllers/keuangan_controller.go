package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
)

// KeuanganController handles tuition categories, billing, and payments
type KeuanganController struct {
	keuanganService *services.KeuanganService
}

// NewKeuanganController creates a new KeuanganController
func NewKeuanganController(keuanganService *services.KeuanganService) *KeuanganController {
	return &KeuanganController{keuanganService: keuanganService}
}

// CreateKategori creates a tuition fee category
// @Summary Create a kategori UKT
// @Tags keuangan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.KategoriUKTRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=models.KategoriUKT}
// @Router /keuangan/kategori-ukt [post]
func (c *KeuanganController) CreateKategori(ctx *gin.Context) {
	var req dto.KategoriUKTRequest
	if !bindJSON(ctx, &req) {
		return
	}

	kategori, err := c.keuanganService.CreateKategori(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(kategori))
}

// ListKategori lists tuition fee categories
// @Summary List kategori UKT
// @Tags keuangan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.KategoriUKT}
// @Router /keuangan/kategori-ukt [get]
func (c *KeuanganController) ListKategori(ctx *gin.Context) {
	list, err := c.keuanganService.ListKategori(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// UpdateKategori updates a tuition fee category
// @Summary Update a kategori UKT
// @Tags keuangan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kategori ID"
// @Param request body dto.KategoriUKTRequest true "Category data"
// @Success 200 {object} dto.APIResponse{data=models.KategoriUKT}
// @Router /keuangan/kategori-ukt/{id} [put]
func (c *KeuanganController) UpdateKategori(ctx *gin.Context) {
	var req dto.KategoriUKTRequest
	if !bindJSON(ctx, &req) {
		return
	}

	kategori, err := c.keuanganService.UpdateKategori(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(kategori))
}

// DeleteKategori removes an unused tuition category
// @Summary Delete a kategori UKT
// @Tags keuangan
// @Produce json
// @Security BearerAuth
// @Param id path string true "Kategori ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Kategori referenced by tagihan"
// @Router /keuangan/kategori-ukt/{id} [delete]
func (c *KeuanganController) DeleteKategori(ctx *gin.Context) {
	if err := c.keuanganService.DeleteKategori(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Kategori UKT berhasil dihapus"})
}

// CreateTagihan issues a bill for one student
// @Summary Create a tagihan
// @Tags keuangan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TagihanRequest true "Bill data"
// @Success 201 {object} dto.APIResponse{data=models.Tagihan}
// @Failure 409 {object} dto.ErrorResponse "Bill already exists for this term"
// @Router /keuangan/tagihan [post]
func (c *KeuanganController) CreateTagihan(ctx *gin.Context) {
	var req dto.TagihanRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tagihan, err := c.keuanganService.CreateTagihan(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(tagihan))
}

// CreateTagihanMassal issues bills for every active student of a prodi
// @Summary Create tagihan massal
// @Tags keuangan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TagihanMassalRequest true "Batch parameters"
// @Success 201 {object} dto.APIResponse
// @Router /keuangan/tagihan/massal [post]
func (c *KeuanganController) CreateTagihanMassal(ctx *gin.Context) {
	var req dto.TagihanMassalRequest
	if !bindJSON(ctx, &req) {
		return
	}

	created, err := c.keuanganService.CreateTagihanMassal(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(gin.H{"created": created}))
}

// ListTagihan lists bills
// @Summary List tagihan
// @Tags keuangan
// @Produce json
// @Security BearerAuth
// @Param tahun_akademik_id query string false "Filter by term"
// @Param mahasiswa_id query string false "Filter by student"
// @Success 200 {object} dto.APIResponse{data=[]models.Tagihan}
// @Router /keuangan/tagihan [get]
func (c *KeuanganController) ListTagihan(ctx *gin.Context) {
	list, err := c.keuanganService.ListTagihan(ctx.Request.Context(), ctx.Query("tahun_akademik_id"), ctx.Query("mahasiswa_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// MyTagihan lists the caller's bills
// @Summary List the caller's tagihan
// @Tags keuangan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Tagihan}
// @Router /mahasiswa/tagihan [get]
func (c *KeuanganController) MyTagihan(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	list, err := c.keuanganService.MyTagihan(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// DeleteTagihan removes an unpaid bill
// @Summary Delete a tagihan
// @Tags keuangan
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tagihan ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Bill already has payments"
// @Router /keuangan/tagihan/{id} [delete]
func (c *KeuanganController) DeleteTagihan(ctx *gin.Context) {
	if err := c.keuanganService.DeleteTagihan(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Tagihan berhasil dihapus"})
}

// SubmitPembayaran records a payment against the caller's bill
// @Summary Submit a pembayaran
// @Tags keuangan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PembayaranRequest true "Payment data"
// @Success 201 {object} dto.APIResponse{data=models.Pembayaran}
// @Router /keuangan/pembayaran [post]
func (c *KeuanganController) SubmitPembayaran(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	var req dto.PembayaranRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pembayaran, err := c.keuanganService.SubmitPembayaran(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(pembayaran))
}

// ListPembayaran lists payments for review
// @Summary List pembayaran
// @Tags keuangan
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param mahasiswa_id query string false "Filter by student"
// @Success 200 {object} dto.APIResponse{data=[]models.Pembayaran}
// @Router /keuangan/pembayaran [get]
func (c *KeuanganController) ListPembayaran(ctx *gin.Context) {
	list, err := c.keuanganService.ListPembayaran(ctx.Request.Context(), ctx.Query("status"), ctx.Query("mahasiswa_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// MyPembayaran lists the caller's payments
// @Summary List the caller's pembayaran
// @Tags keuangan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Pembayaran}
// @Router /mahasiswa/pembayaran [get]
func (c *KeuanganController) MyPembayaran(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	list, err := c.keuanganService.MyPembayaran(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// VerifyPembayaran applies the finance verdict on a payment
// @Summary Verify a pembayaran
// @Tags keuangan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pembayaran ID"
// @Param request body dto.PembayaranVerifyRequest true "Verdict"
// @Success 200 {object} dto.APIResponse{data=models.Pembayaran}
// @Failure 400 {object} dto.ErrorResponse "Payment already reviewed"
// @Router /keuangan/pembayaran/{id}/verify [put]
func (c *KeuanganController) VerifyPembayaran(ctx *gin.Context) {
	var req dto.PembayaranVerifyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pembayaran, err := c.keuanganService.VerifyPembayaran(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(pembayaran))
}

// Rekap summarizes billing for a term
// @Summary Recap keuangan
// @Tags keuangan
// @Produce json
// @Security BearerAuth
// @Param tahun_akademik_id query string false "Term, defaults to the active one"
// @Success 200 {object} dto.APIResponse{data=dto.RekapKeuanganResponse}
// @Router /keuangan/rekap [get]
func (c *KeuanganController) Rekap(ctx *gin.Context) {
	rekap, err := c.keuanganService.Rekap(ctx.Request.Context(), ctx.Query("tahun_akademik_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rekap))
}
