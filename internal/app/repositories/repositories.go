package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared sentinel for missing rows. Repositories
// wrap it into the resource-specific apperrors sentinel at the call site.
var ErrNotFound = errors.New("resource not found")

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	FakultasRepository      *FakultasRepository
	ProdiRepository         *ProdiRepository
	KurikulumRepository     *KurikulumRepository
	MataKuliahRepository    *MataKuliahRepository
	TahunAkademikRepository *TahunAkademikRepository
	MahasiswaRepository     *MahasiswaRepository
	DosenRepository         *DosenRepository
	KelasRepository         *KelasRepository
	KRSRepository           *KRSRepository
	NilaiRepository         *NilaiRepository
	PresensiRepository      *PresensiRepository
	KeuanganRepository      *KeuanganRepository
	BiodataRepository       *BiodataRepository
	AuthRequestRepository   *AuthRequestRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		FakultasRepository:      NewFakultasRepository(db),
		ProdiRepository:         NewProdiRepository(db),
		KurikulumRepository:     NewKurikulumRepository(db),
		MataKuliahRepository:    NewMataKuliahRepository(db),
		TahunAkademikRepository: NewTahunAkademikRepository(db),
		MahasiswaRepository:     NewMahasiswaRepository(db),
		DosenRepository:         NewDosenRepository(db),
		KelasRepository:         NewKelasRepository(db),
		KRSRepository:           NewKRSRepository(db),
		NilaiRepository:         NewNilaiRepository(db),
		PresensiRepository:      NewPresensiRepository(db),
		KeuanganRepository:      NewKeuanganRepository(db),
		BiodataRepository:       NewBiodataRepository(db),
		AuthRequestRepository:   NewAuthRequestRepository(db),
	}
}
