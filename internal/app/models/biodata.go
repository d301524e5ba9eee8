package models

import "time"

// BiodataChangeRequest is a student's requested change to their own
// biodata fields, applied only after admin approval.
type BiodataChangeRequest struct {
	ID            string            `json:"id"`
	MahasiswaID   string            `json:"mahasiswa_id"`
	MahasiswaNama string            `json:"mahasiswa_nama,omitempty"`
	MahasiswaNIM  string            `json:"mahasiswa_nim,omitempty"`
	Changes       map[string]string `json:"changes"`
	Status        string            `json:"status"`
	Catatan       *string           `json:"catatan,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	ProcessedAt   *time.Time        `json:"processed_at,omitempty"`
}

// BiodataEditableFields are the mahasiswa columns a change request may touch.
var BiodataEditableFields = map[string]bool{
	"jenis_kelamin": true,
	"tempat_lahir":  true,
	"tanggal_lahir": true,
	"alamat":        true,
	"no_hp":         true,
}
