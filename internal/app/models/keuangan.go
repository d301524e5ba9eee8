package models

import "time"

// KategoriUKT is a tuition fee category with its per-term nominal.
type KategoriUKT struct {
	ID        string    `json:"id"`
	Nama      string    `json:"nama"`
	Nominal   float64   `json:"nominal"`
	Deskripsi *string   `json:"deskripsi,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tagihan is one student's bill for one term.
type Tagihan struct {
	ID                string    `json:"id"`
	MahasiswaID       string    `json:"mahasiswa_id"`
	MahasiswaNama     string    `json:"mahasiswa_nama,omitempty"`
	MahasiswaNIM      string    `json:"mahasiswa_nim,omitempty"`
	ProdiNama         string    `json:"prodi_nama,omitempty"`
	TahunAkademikID   string    `json:"tahun_akademik_id"`
	TahunAkademikNama string    `json:"tahun_akademik_nama,omitempty"`
	KategoriUKTID     string    `json:"kategori_ukt_id"`
	KategoriNama      string    `json:"kategori_nama,omitempty"`
	Nominal           float64   `json:"nominal"`
	Dibayar           float64   `json:"dibayar"`
	Status            string    `json:"status"`
	JatuhTempo        *string   `json:"jatuh_tempo,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Tagihan status values
const (
	TagihanBelumBayar = "belum_bayar"
	TagihanSebagian   = "sebagian"
	TagihanLunas      = "lunas"
)

// Pembayaran is a payment submitted against a tagihan, verified by
// an admin before it counts.
type Pembayaran struct {
	ID               string     `json:"id"`
	TagihanID        string     `json:"tagihan_id"`
	MahasiswaID      string     `json:"mahasiswa_id"`
	MahasiswaNama    string     `json:"mahasiswa_nama,omitempty"`
	MahasiswaNIM     string     `json:"mahasiswa_nim,omitempty"`
	Jumlah           float64    `json:"jumlah"`
	MetodePembayaran string     `json:"metode_pembayaran"`
	BuktiURL         *string    `json:"bukti_url,omitempty"`
	Status           string     `json:"status"`
	Catatan          *string    `json:"catatan,omitempty"`
	TanggalBayar     time.Time  `json:"tanggal_bayar"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
