package dto

import "github.com/nurhakim/siakad/internal/app/models"

// BiodataChangeRequestBody submits requested biodata edits. Keys must
// be editable biodata fields; unknown keys are rejected.
type BiodataChangeRequestBody struct {
	Changes map[string]string `json:"changes" binding:"required"`
}

// MyBiodataResponse pairs a student's record with their pending change
// request, if any.
type MyBiodataResponse struct {
	Biodata           *models.Mahasiswa            `json:"biodata"`
	HasPendingRequest bool                         `json:"has_pending_request"`
	PendingRequest    *models.BiodataChangeRequest `json:"pending_request,omitempty"`
}

// ChangeRequestDetail shows one change request next to the current
// values of the fields it wants to change.
type ChangeRequestDetail struct {
	Request *models.BiodataChangeRequest `json:"request"`
	Current map[string]*string           `json:"current"`
}

// DashboardResponse carries the role-dependent landing page counters
type DashboardResponse struct {
	TotalMahasiswa     int64  `json:"total_mahasiswa"`
	TotalDosen         int64  `json:"total_dosen"`
	TotalProdi         int64  `json:"total_prodi"`
	TotalMataKuliah    int64  `json:"total_mata_kuliah"`
	TotalKelas         int64  `json:"total_kelas"`
	MahasiswaAktif     int64  `json:"mahasiswa_aktif"`
	TahunAkademikAktif string `json:"tahun_akademik_aktif"`
}
