package dto

// FakultasRequest creates or updates a faculty
type FakultasRequest struct {
	Kode string `json:"kode" binding:"required"`
	Nama string `json:"nama" binding:"required"`
}

// ProdiRequest creates or updates a study program
type ProdiRequest struct {
	Kode       string `json:"kode" binding:"required"`
	Nama       string `json:"nama" binding:"required"`
	Jenjang    string `json:"jenjang" binding:"required"`
	FakultasID string `json:"fakultas_id" binding:"required"`
}

// KurikulumRequest creates or updates a curriculum
type KurikulumRequest struct {
	Kode     string `json:"kode" binding:"required"`
	Nama     string `json:"nama" binding:"required"`
	Tahun    int    `json:"tahun" binding:"required"`
	ProdiID  string `json:"prodi_id" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// MataKuliahRequest creates or updates a course. The total credit load
// is derived from the two components.
type MataKuliahRequest struct {
	Kode        string   `json:"kode" binding:"required"`
	Nama        string   `json:"nama" binding:"required"`
	SKSTeori    int      `json:"sks_teori" binding:"min=0,max=6"`
	SKSPraktik  int      `json:"sks_praktik" binding:"min=0,max=6"`
	Semester    int      `json:"semester" binding:"required,min=1,max=14"`
	KurikulumID string   `json:"kurikulum_id" binding:"required"`
	Prasyarat   []string `json:"prasyarat"`
}

// TahunAkademikRequest creates or updates an academic term
type TahunAkademikRequest struct {
	Kode     string `json:"kode" binding:"required"`
	Nama     string `json:"nama" binding:"required"`
	Semester string `json:"semester" binding:"required,oneof=ganjil genap pendek"`
	IsActive *bool  `json:"is_active"`
}

// MahasiswaRequest creates a student together with their login account
type MahasiswaRequest struct {
	NIM          string  `json:"nim" binding:"required"`
	Nama         string  `json:"nama" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	ProdiID      string  `json:"prodi_id" binding:"required"`
	Angkatan     int     `json:"angkatan" binding:"required"`
	DosenPAID    *string `json:"dosen_pa_id"`
	JenisKelamin *string `json:"jenis_kelamin"`
	TempatLahir  *string `json:"tempat_lahir"`
	TanggalLahir *string `json:"tanggal_lahir"`
	Alamat       *string `json:"alamat"`
	NoHP         *string `json:"no_hp"`
}

// MahasiswaUpdateRequest updates an existing student record
type MahasiswaUpdateRequest struct {
	Nama         *string `json:"nama"`
	ProdiID      *string `json:"prodi_id"`
	Angkatan     *int    `json:"angkatan"`
	Status       *string `json:"status" binding:"omitempty,oneof=aktif cuti lulus drop_out"`
	DosenPAID    *string `json:"dosen_pa_id"`
	JenisKelamin *string `json:"jenis_kelamin"`
	TempatLahir  *string `json:"tempat_lahir"`
	TanggalLahir *string `json:"tanggal_lahir"`
	Alamat       *string `json:"alamat"`
	NoHP         *string `json:"no_hp"`
}

// DosenRequest creates a lecturer together with their login account
type DosenRequest struct {
	NIDN       string  `json:"nidn" binding:"required"`
	NIP        *string `json:"nip"`
	Nama       string  `json:"nama" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	ProdiID    string  `json:"prodi_id" binding:"required"`
	Pendidikan *string `json:"pendidikan"`
	Jabatan    *string `json:"jabatan"`
	NoHP       *string `json:"no_hp"`
}

// DosenUpdateRequest updates an existing lecturer record
type DosenUpdateRequest struct {
	Nama       *string `json:"nama"`
	NIP        *string `json:"nip"`
	ProdiID    *string `json:"prodi_id"`
	Pendidikan *string `json:"pendidikan"`
	Jabatan    *string `json:"jabatan"`
	NoHP       *string `json:"no_hp"`
}
