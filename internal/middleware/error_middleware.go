package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
	"github.com/nurhakim/siakad/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers
// funnel every error through here so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	withDetails := func(detail *dto.ErrorDetail) *dto.ErrorDetail {
		if errors.As(err, &custom) {
			if custom.Message != "" {
				detail.Message = custom.Message
			}
			if custom.Details != nil {
				detail = detail.WithDetails(custom.Details)
			}
		}
		return detail
	}

	switch {
	case errors.Is(err, apperrors.ErrJadwalConflict):
		// conflict responses keep the probe shape so clients can show
		// the same collision list either way
		conflicts := []dto.KonflikDetail{}
		if errors.As(err, &custom) {
			if list, ok := custom.Details.([]dto.KonflikDetail); ok {
				conflicts = list
			}
		}
		c.JSON(http.StatusConflict, gin.H{
			"has_conflict": true,
			"conflicts":    conflicts,
		})

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			withDetails(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "NIM/NIDN/email atau password salah"))))

	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			withDetails(dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Akun dinonaktifkan"))))

	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrNotDosenPA):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			withDetails(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Akses ditolak"))))

	case isNotFound(err):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			withDetails(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()))))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrNIMAlreadyExists),
		errors.Is(err, apperrors.ErrNIDNAlreadyExists),
		errors.Is(err, apperrors.ErrFakultasAlreadyExists),
		errors.Is(err, apperrors.ErrProdiAlreadyExists),
		errors.Is(err, apperrors.ErrKRSAlreadyExists),
		errors.Is(err, apperrors.ErrTagihanAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			withDetails(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()))))

	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			withDetails(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()))))

	case errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrKelasKuotaPenuh),
		errors.Is(err, apperrors.ErrKRSAlreadyApproved),
		errors.Is(err, apperrors.ErrChangeRequestPending),
		errors.Is(err, apperrors.ErrRequestNotPending),
		errors.Is(err, apperrors.ErrPembayaranNotPending),
		errors.Is(err, apperrors.ErrNoActiveTahunAkademik),
		errors.Is(err, apperrors.ErrFakultasHasProdi),
		errors.Is(err, apperrors.ErrTagihanHasPembayaran),
		errors.Is(err, apperrors.ErrKategoriUKTInUse):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			withDetails(dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error()))))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Terjadi kesalahan pada server")))
	}
}

func isNotFound(err error) bool {
	for _, target := range []error{
		apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrFakultasNotFound,
		apperrors.ErrProdiNotFound,
		apperrors.ErrKurikulumNotFound,
		apperrors.ErrMataKuliahNotFound,
		apperrors.ErrTahunAkademikNotFound,
		apperrors.ErrMahasiswaNotFound,
		apperrors.ErrDosenNotFound,
		apperrors.ErrKelasNotFound,
		apperrors.ErrKRSNotFound,
		apperrors.ErrPertemuanNotFound,
		apperrors.ErrKategoriUKTNotFound,
		apperrors.ErrTagihanNotFound,
		apperrors.ErrPembayaranNotFound,
		apperrors.ErrChangeRequestNotFound,
		apperrors.ErrResetRequestNotFound,
		apperrors.ErrFotoRequestNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HandleValidationError maps request binding failures to 400 responses,
// the same status bindJSON writes.
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
}
