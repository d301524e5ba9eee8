package models

import "time"

// Fakultas is a faculty.
type Fakultas struct {
	ID        string    `json:"id"`
	Kode      string    `json:"kode"`
	Nama      string    `json:"nama"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Prodi is a study program under a faculty.
type Prodi struct {
	ID           string    `json:"id"`
	Kode         string    `json:"kode"`
	Nama         string    `json:"nama"`
	Jenjang      string    `json:"jenjang"`
	FakultasID   string    `json:"fakultas_id"`
	FakultasNama string    `json:"fakultas_nama,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Kurikulum is a curriculum version owned by a prodi.
type Kurikulum struct {
	ID        string    `json:"id"`
	Kode      string    `json:"kode"`
	Nama      string    `json:"nama"`
	Tahun     int       `json:"tahun"`
	ProdiID   string    `json:"prodi_id"`
	ProdiNama string    `json:"prodi_nama,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MataKuliah is a course in a curriculum. TotalSKS is derived from the
// teori and praktik components, never stored.
type MataKuliah struct {
	ID            string    `json:"id"`
	Kode          string    `json:"kode"`
	Nama          string    `json:"nama"`
	SKSTeori      int       `json:"sks_teori"`
	SKSPraktik    int       `json:"sks_praktik"`
	TotalSKS      int       `json:"total_sks"`
	Semester      int       `json:"semester"`
	KurikulumID   string    `json:"kurikulum_id"`
	KurikulumNama string    `json:"kurikulum_nama,omitempty"`
	ProdiID       string    `json:"prodi_id"`
	ProdiNama     string    `json:"prodi_nama,omitempty"`
	Prasyarat     []string  `json:"prasyarat"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TahunAkademik is an academic term. At most one row is active.
type TahunAkademik struct {
	ID        string    `json:"id"`
	Kode      string    `json:"kode"`
	Nama      string    `json:"nama"`
	Semester  string    `json:"semester"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Mahasiswa is a student record, tied to a user account by UserID.
type Mahasiswa struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	NIM          string    `json:"nim"`
	Nama         string    `json:"nama"`
	Email        string    `json:"email"`
	ProdiID      string    `json:"prodi_id"`
	ProdiNama    string    `json:"prodi_nama,omitempty"`
	Angkatan     int       `json:"angkatan"`
	Status       string    `json:"status"`
	DosenPAID    *string   `json:"dosen_pa_id,omitempty"`
	DosenPANama  string    `json:"dosen_pa_nama,omitempty"`
	JenisKelamin *string   `json:"jenis_kelamin,omitempty"`
	TempatLahir  *string   `json:"tempat_lahir,omitempty"`
	TanggalLahir *string   `json:"tanggal_lahir,omitempty"`
	Alamat       *string   `json:"alamat,omitempty"`
	NoHP         *string   `json:"no_hp,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Dosen is a lecturer record, tied to a user account by UserID.
type Dosen struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	NIDN       string    `json:"nidn"`
	NIP        *string   `json:"nip,omitempty"`
	Nama       string    `json:"nama"`
	Email      string    `json:"email"`
	ProdiID    string    `json:"prodi_id"`
	ProdiNama  string    `json:"prodi_nama,omitempty"`
	Pendidikan *string   `json:"pendidikan,omitempty"`
	Jabatan    *string   `json:"jabatan,omitempty"`
	NoHP       *string   `json:"no_hp,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
