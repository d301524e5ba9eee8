package models

import "time"

// User represents a login account. One user row backs every role;
// mahasiswa and dosen accounts are provisioned together with their
// academic records.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Nama       string    `json:"nama"`
	Role       RoleType  `json:"role"`
	ProdiID    *string   `json:"prodi_id,omitempty"`
	FakultasID *string   `json:"fakultas_id,omitempty"`
	FotoProfil *string   `json:"foto_profil,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PasswordResetRequest is a queued forgot-password request awaiting
// admin review. PasswordBaru holds the hash of the password the
// requester asked for; it never leaves the server.
type PasswordResetRequest struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Email        string     `json:"email"`
	Nama         string     `json:"nama"`
	Role         RoleType   `json:"role"`
	PasswordBaru *string    `json:"-"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
}

// FotoProfilRequest is a queued profile-photo change awaiting admin review.
type FotoProfilRequest struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Nama        string     `json:"nama"`
	Role        RoleType   `json:"role"`
	FotoURL     string     `json:"foto_url"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}
