package models

import "time"

// Kelas is a scheduled class section: a mata kuliah taught by a dosen
// in a given term, with a weekly time slot and an optional room.
type Kelas struct {
	ID                string    `json:"id"`
	KodeKelas         string    `json:"kode_kelas"`
	MataKuliahID      string    `json:"mata_kuliah_id"`
	MataKuliahNama    string    `json:"mata_kuliah_nama,omitempty"`
	MataKuliahKode    string    `json:"mata_kuliah_kode,omitempty"`
	SKS               int       `json:"sks,omitempty"`
	DosenID           string    `json:"dosen_id"`
	DosenNama         string    `json:"dosen_nama,omitempty"`
	TahunAkademikID   string    `json:"tahun_akademik_id"`
	TahunAkademikNama string    `json:"tahun_akademik_nama,omitempty"`
	ProdiID           string    `json:"prodi_id"`
	ProdiNama         string    `json:"prodi_nama,omitempty"`
	Hari              string    `json:"hari"`
	JamMulai          string    `json:"jam_mulai"`
	JamSelesai        string    `json:"jam_selesai"`
	Ruangan           *string   `json:"ruangan"`
	Kuota             int       `json:"kuota"`
	JumlahPeserta     int       `json:"jumlah_peserta"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// KRS is one student enrollment in one kelas for a term.
type KRS struct {
	ID              string    `json:"id"`
	MahasiswaID     string    `json:"mahasiswa_id"`
	MahasiswaNama   string    `json:"mahasiswa_nama,omitempty"`
	MahasiswaNIM    string    `json:"mahasiswa_nim,omitempty"`
	KelasID         string    `json:"kelas_id"`
	KodeKelas       string    `json:"kode_kelas,omitempty"`
	MataKuliahNama  string    `json:"mata_kuliah_nama,omitempty"`
	MataKuliahKode  string    `json:"mata_kuliah_kode,omitempty"`
	SKS             int       `json:"sks,omitempty"`
	TahunAkademikID string    `json:"tahun_akademik_id"`
	Status          string    `json:"status"`
	CatatanPA       *string   `json:"catatan_pa,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Nilai is the grade record for one KRS entry.
type Nilai struct {
	ID          string    `json:"id"`
	KRSID       string    `json:"krs_id"`
	MahasiswaID string    `json:"mahasiswa_id"`
	KelasID     string    `json:"kelas_id"`
	Tugas       float64   `json:"tugas"`
	UTS         float64   `json:"uts"`
	UAS         float64   `json:"uas"`
	NilaiAkhir  float64   `json:"nilai_akhir"`
	NilaiHuruf  string    `json:"nilai_huruf"`
	Bobot       float64   `json:"bobot"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Pertemuan is one class meeting opened by the dosen for attendance.
type Pertemuan struct {
	ID          string    `json:"id"`
	KelasID     string    `json:"kelas_id"`
	PertemuanKe int       `json:"pertemuan_ke"`
	Tanggal     string    `json:"tanggal"`
	Materi      *string   `json:"materi,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Kehadiran is one student's attendance at one pertemuan.
type Kehadiran struct {
	ID            string    `json:"id"`
	PertemuanID   string    `json:"pertemuan_id"`
	MahasiswaID   string    `json:"mahasiswa_id"`
	MahasiswaNama string    `json:"mahasiswa_nama,omitempty"`
	MahasiswaNIM  string    `json:"mahasiswa_nim,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
