package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Master data errors
var (
	ErrFakultasNotFound      = errors.New("fakultas not found")
	ErrFakultasAlreadyExists = errors.New("fakultas with this kode already exists")
	ErrFakultasHasProdi      = errors.New("fakultas has associated prodi and cannot be deleted")
	ErrProdiNotFound         = errors.New("prodi not found")
	ErrProdiAlreadyExists    = errors.New("prodi with this kode already exists")
	ErrKurikulumNotFound     = errors.New("kurikulum not found")
	ErrMataKuliahNotFound    = errors.New("mata kuliah not found")
	ErrTahunAkademikNotFound = errors.New("tahun akademik not found")
	ErrNoActiveTahunAkademik = errors.New("no active tahun akademik")
	ErrMahasiswaNotFound     = errors.New("mahasiswa not found")
	ErrNIMAlreadyExists      = errors.New("NIM already registered")
	ErrDosenNotFound         = errors.New("dosen not found")
	ErrNIDNAlreadyExists     = errors.New("NIDN already registered")
)

// Akademik errors
var (
	ErrKelasNotFound       = errors.New("kelas not found")
	ErrJadwalConflict      = errors.New("jadwal conflict")
	ErrKRSNotFound         = errors.New("KRS not found")
	ErrKRSAlreadyExists    = errors.New("already enrolled in this kelas")
	ErrKelasKuotaPenuh     = errors.New("kelas kuota is full")
	ErrKRSAlreadyApproved  = errors.New("approved KRS cannot be deleted")
	ErrNotDosenPA          = errors.New("not the dosen PA of this mahasiswa")
	ErrPertemuanNotFound   = errors.New("pertemuan not found")
)

// Keuangan errors
var (
	ErrKategoriUKTNotFound   = errors.New("kategori UKT not found")
	ErrKategoriUKTInUse      = errors.New("kategori UKT is referenced by tagihan and cannot be deleted")
	ErrTagihanNotFound       = errors.New("tagihan not found")
	ErrTagihanAlreadyExists  = errors.New("tagihan already exists for this mahasiswa and tahun akademik")
	ErrTagihanHasPembayaran  = errors.New("tagihan has payments and cannot be deleted")
	ErrPembayaranNotFound    = errors.New("pembayaran not found")
	ErrPembayaranNotPending  = errors.New("pembayaran has already been reviewed")
)

// Biodata and request-queue errors
var (
	ErrBiodataNotFound        = errors.New("biodata not found")
	ErrChangeRequestNotFound  = errors.New("change request not found")
	ErrChangeRequestPending   = errors.New("a pending change request already exists")
	ErrRequestNotPending      = errors.New("request has already been reviewed")
	ErrResetRequestNotFound   = errors.New("password reset request not found")
	ErrFotoRequestNotFound    = errors.New("foto profil request not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details interface{}) *CustomError {
	e.Details = details
	return e
}

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
