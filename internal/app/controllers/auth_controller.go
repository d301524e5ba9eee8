package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/middleware"
	"github.com/nurhakim/siakad/internal/pkg/filestorage"
)

// AuthController handles authentication and account operations
type AuthController struct {
	authService *services.AuthService
	fileStorage filestorage.FileStorage
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, fileStorage filestorage.FileStorage) *AuthController {
	return &AuthController{
		authService: authService,
		fileStorage: fileStorage,
	}
}

// Login authenticates a user
// @Summary Login with NIM, NIDN, NIP, or email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(token))
}

// MyAccess describes the caller's resolved visibility scope
// @Summary Get the caller's access scope
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MyAccessResponse}
// @Router /auth/my-access [get]
func (c *AuthController) MyAccess(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	access, err := c.authService.MyAccess(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(access))
}

// Me returns the authenticated account
// @Summary Get the caller's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// ChangePassword changes the caller's password
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/change-password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), user, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password berhasil diubah"})
}

// ForgotPassword queues a password reset request
// @Summary Request a password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account identifier"
// @Failure 404 {object} dto.ErrorResponse "Unknown identifier"
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/forgot-password-request [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ForgotPassword(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Permintaan reset password telah diajukan"})
}

// ListResetRequests returns the password reset queue
// @Summary List password reset requests
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.APIResponse{data=[]models.PasswordResetRequest}
// @Router /auth/forgot-password-requests [get]
func (c *AuthController) ListResetRequests(ctx *gin.Context) {
	requests, err := c.authService.ListResetRequests(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requests))
}

// ProcessResetRequest resolves a queued reset request
// @Summary Process a password reset request
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.ProcessResetRequest true "Verdict"
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/forgot-password-requests/{id}/review [put]
func (c *AuthController) ProcessResetRequest(ctx *gin.Context) {
	var req dto.ProcessResetRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ProcessResetRequest(ctx.Request.Context(), ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password berhasil direset"})
}

// SubmitFotoProfil uploads a profile photo for admin review
// @Summary Submit a profile photo
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param foto formData file true "Photo file"
// @Success 201 {object} dto.APIResponse{data=models.FotoProfilRequest}
// @Router /auth/upload-foto-profil [post]
func (c *AuthController) SubmitFotoProfil(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("foto")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails("File foto wajib diunggah")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fotoURL, err := c.fileStorage.SaveFile(fileHeader, "foto_profil")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	request, err := c.authService.SubmitFotoProfil(ctx.Request.Context(), user, fotoURL)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(request))
}

// ListFotoRequests returns the photo review queue
// @Summary List profile photo requests
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.APIResponse{data=[]models.FotoProfilRequest}
// @Router /auth/foto-profil-requests [get]
func (c *AuthController) ListFotoRequests(ctx *gin.Context) {
	requests, err := c.authService.ListFotoRequests(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requests))
}

// MyFotoRequests returns the caller's photo request history
// @Summary List the caller's profile photo requests
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.FotoProfilRequest}
// @Router /auth/my-foto-profil-requests [get]
func (c *AuthController) MyFotoRequests(ctx *gin.Context) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return
	}

	requests, err := c.authService.MyFotoRequests(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requests))
}

// ProcessFotoRequest resolves a queued photo request
// @Summary Review a profile photo request
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.ReviewRequest true "Verdict"
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/foto-profil-requests/{id}/review [put]
func (c *AuthController) ProcessFotoRequest(ctx *gin.Context) {
	var req dto.ReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ProcessFotoRequest(ctx.Request.Context(), ctx.Param("id"), req.Action); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Permintaan foto profil telah diproses"})
}
