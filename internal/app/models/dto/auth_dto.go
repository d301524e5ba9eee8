package dto

import "github.com/nurhakim/siakad/internal/app/models"

// LoginRequest represents login credentials. UserID accepts a NIM,
// NIDN, NIP, or email depending on the account type.
type LoginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information returned on login
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        *models.User `json:"user"`
}

// ScopeRef names one prodi or fakultas visible to the caller
type ScopeRef struct {
	ID   string `json:"id"`
	Nama string `json:"nama"`
}

// MyAccessResponse describes the caller's resolved visibility scope
type MyAccessResponse struct {
	Role               string     `json:"role"`
	HasFullAccess      bool       `json:"has_full_access"`
	IsManagement       bool       `json:"is_management"`
	ProdiID            *string    `json:"prodi_id"`
	FakultasID         *string    `json:"fakultas_id"`
	AccessibleProdi    []ScopeRef `json:"accessible_prodi"`
	AccessibleFakultas []ScopeRef `json:"accessible_fakultas"`
}

// RegisterRequest creates a bare account. Mahasiswa and dosen accounts
// are provisioned through their own modules instead.
type RegisterRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	Nama       string  `json:"nama" binding:"required"`
	Role       string  `json:"role" binding:"required,oneof=admin rektor dekan kaprodi"`
	ProdiID    *string `json:"prodi_id"`
	FakultasID *string `json:"fakultas_id"`
}

// ChangePasswordRequest represents a self-service password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ForgotPasswordRequest queues a reset request for admin processing.
// UserIDNumber accepts the same identifiers as login: NIM, NIDN, NIP,
// or email. PasswordBaru is the password the requester wants.
type ForgotPasswordRequest struct {
	UserIDNumber string  `json:"user_id_number" binding:"required"`
	PasswordBaru *string `json:"password_baru" binding:"omitempty,min=6"`
}

// ProcessResetRequest is the admin verdict on a queued reset request.
// On approve, NewPassword overrides the requester's choice.
type ProcessResetRequest struct {
	Action      string  `json:"action" binding:"required,oneof=approve reject"`
	NewPassword *string `json:"new_password" binding:"omitempty,min=6"`
}

// ReviewRequest is the generic approve/reject action body used by
// the admin review queues.
type ReviewRequest struct {
	Action  string  `json:"action" binding:"required,oneof=approve reject"`
	Catatan *string `json:"catatan"`
}
