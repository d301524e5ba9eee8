package dto

// KelasRequest creates or updates a class section
type KelasRequest struct {
	KodeKelas       string  `json:"kode_kelas" binding:"required"`
	MataKuliahID    string  `json:"mata_kuliah_id" binding:"required"`
	DosenID         string  `json:"dosen_id" binding:"required"`
	TahunAkademikID string  `json:"tahun_akademik_id" binding:"required"`
	Hari            string  `json:"hari" binding:"required"`
	JamMulai        string  `json:"jam_mulai" binding:"required"`
	JamSelesai      string  `json:"jam_selesai" binding:"required"`
	Ruangan         *string `json:"ruangan"`
	Kuota           int     `json:"kuota" binding:"required,min=1"`
}

// CheckConflictRequest is the dry-run schedule conflict probe. KelasID
// excludes an existing section from the scan when checking an update.
// A nil or empty Ruangan means the slot has no room and skips the room
// scan entirely.
type CheckConflictRequest struct {
	KelasID         *string `json:"kelas_id"`
	DosenID         string  `json:"dosen_id" binding:"required"`
	TahunAkademikID string  `json:"tahun_akademik_id" binding:"required"`
	Hari            string  `json:"hari" binding:"required"`
	JamMulai        string  `json:"jam_mulai" binding:"required"`
	JamSelesai      string  `json:"jam_selesai" binding:"required"`
	Ruangan         *string `json:"ruangan"`
}

// KonflikDetail is one detected schedule collision
type KonflikDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// KonflikResponse is the conflict probe result
type KonflikResponse struct {
	HasConflict bool            `json:"has_conflict"`
	Conflicts   []KonflikDetail `json:"conflicts"`
}

// KRSRequest enrolls the calling student into a kelas
type KRSRequest struct {
	KelasID string `json:"kelas_id" binding:"required"`
}

// KRSReviewRequest is the advisor action on a submitted KRS entry
type KRSReviewRequest struct {
	Action    string  `json:"action" binding:"required,oneof=approve reject"`
	CatatanPA *string `json:"catatan_pa"`
}

// KRSVerdictRequest carries the optional reviewer note on an approve
// or reject call.
type KRSVerdictRequest struct {
	Catatan *string `json:"catatan"`
}

// NilaiRequest upserts grade components for one enrollment
type NilaiRequest struct {
	KRSID string  `json:"krs_id" binding:"required"`
	Tugas float64 `json:"tugas" binding:"min=0,max=100"`
	UTS   float64 `json:"uts" binding:"min=0,max=100"`
	UAS   float64 `json:"uas" binding:"min=0,max=100"`
}

// PertemuanRequest opens a class meeting for attendance
type PertemuanRequest struct {
	PertemuanKe int     `json:"pertemuan_ke" binding:"required,min=1"`
	Tanggal     string  `json:"tanggal" binding:"required"`
	Materi      *string `json:"materi"`
}

// KehadiranEntry is one student's attendance mark
type KehadiranEntry struct {
	MahasiswaID string `json:"mahasiswa_id" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=hadir izin sakit alpa"`
}

// PresensiRequest records attendance for a pertemuan in bulk
type PresensiRequest struct {
	Kehadiran []KehadiranEntry `json:"kehadiran" binding:"required,dive"`
}

// KHSEntry is one graded course on a semester transcript
type KHSEntry struct {
	MataKuliahKode string  `json:"mata_kuliah_kode"`
	MataKuliahNama string  `json:"mata_kuliah_nama"`
	SKS            int     `json:"sks"`
	NilaiAkhir     float64 `json:"nilai_akhir"`
	NilaiHuruf     string  `json:"nilai_huruf"`
	Bobot          float64 `json:"bobot"`
}

// KHSResponse is a per-term grade report
type KHSResponse struct {
	TahunAkademikID   string     `json:"tahun_akademik_id"`
	TahunAkademikNama string     `json:"tahun_akademik_nama"`
	Entries           []KHSEntry `json:"entries"`
	TotalSKS          int        `json:"total_sks"`
	IPS               float64    `json:"ips"`
}

// TranskripResponse is the cumulative transcript
type TranskripResponse struct {
	MahasiswaNama string        `json:"mahasiswa_nama"`
	MahasiswaNIM  string        `json:"mahasiswa_nim"`
	ProdiNama     string        `json:"prodi_nama"`
	Semesters     []KHSResponse `json:"semesters"`
	TotalSKS      int           `json:"total_sks"`
	IPK           float64       `json:"ipk"`
}
