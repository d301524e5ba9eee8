package dto

// KategoriUKTRequest creates or updates a tuition fee category
type KategoriUKTRequest struct {
	Nama      string  `json:"nama" binding:"required"`
	Nominal   float64 `json:"nominal" binding:"required,min=0"`
	Deskripsi *string `json:"deskripsi"`
}

// TagihanRequest issues a bill to one student for a term
type TagihanRequest struct {
	MahasiswaID     string  `json:"mahasiswa_id" binding:"required"`
	TahunAkademikID string  `json:"tahun_akademik_id" binding:"required"`
	KategoriUKTID   string  `json:"kategori_ukt_id" binding:"required"`
	JatuhTempo      *string `json:"jatuh_tempo"`
}

// TagihanMassalRequest issues bills to every active student in a prodi
type TagihanMassalRequest struct {
	ProdiID         string  `json:"prodi_id" binding:"required"`
	TahunAkademikID string  `json:"tahun_akademik_id" binding:"required"`
	KategoriUKTID   string  `json:"kategori_ukt_id" binding:"required"`
	JatuhTempo      *string `json:"jatuh_tempo"`
}

// PembayaranRequest submits a payment against a bill
type PembayaranRequest struct {
	TagihanID        string  `json:"tagihan_id" binding:"required"`
	Jumlah           float64 `json:"jumlah" binding:"required,gt=0"`
	MetodePembayaran string  `json:"metode_pembayaran" binding:"required"`
	BuktiURL         *string `json:"bukti_url"`
}

// PembayaranVerifyRequest is the admin verification action
type PembayaranVerifyRequest struct {
	Action  string  `json:"action" binding:"required,oneof=approve reject"`
	Catatan *string `json:"catatan"`
}

// RekapKeuanganResponse summarizes billing for a term
type RekapKeuanganResponse struct {
	TahunAkademikID string  `json:"tahun_akademik_id"`
	TotalTagihan    float64 `json:"total_tagihan"`
	TotalDibayar    float64 `json:"total_dibayar"`
	JumlahTagihan   int     `json:"jumlah_tagihan"`
	JumlahLunas     int     `json:"jumlah_lunas"`
	JumlahSebagian  int     `json:"jumlah_sebagian"`
	JumlahBelum     int     `json:"jumlah_belum"`
}
