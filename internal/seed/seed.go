// Package seed creates the initial accounts and master data on first
// startup. Every record is created only when absent, so reruns are
// safe.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/repositories"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
	"github.com/nurhakim/siakad/internal/pkg/auth"
	"github.com/nurhakim/siakad/internal/pkg/logger"
)

// Seeder populates initial data.
type Seeder struct {
	repos *repositories.Repositories
}

// NewSeeder creates a Seeder.
func NewSeeder(repos *repositories.Repositories) *Seeder {
	return &Seeder{repos: repos}
}

// Run seeds the default admin, demo management accounts, one academic
// term, and a small catalog.
func (s *Seeder) Run(ctx context.Context) error {
	fakultasID, err := s.ensureFakultas(ctx, "FT", "Fakultas Teknik")
	if err != nil {
		return err
	}
	prodiID, err := s.ensureProdi(ctx, "TI", "Teknik Informatika", "S1", fakultasID)
	if err != nil {
		return err
	}
	if err := s.ensureTahunAkademik(ctx); err != nil {
		return err
	}
	kurikulumID, err := s.ensureKurikulum(ctx, prodiID)
	if err != nil {
		return err
	}
	if err := s.ensureMataKuliah(ctx, kurikulumID, prodiID); err != nil {
		return err
	}

	accounts := []struct {
		email    string
		nama     string
		role     models.RoleType
		password string
		prodi    *string
		fakultas *string
	}{
		{"admin@siakad.ac.id", "Administrator", models.RoleAdmin, "admin123", nil, nil},
		{"rektor@siakad.ac.id", "Prof. Rektor", models.RoleRektor, "password", nil, nil},
		{"dekan@siakad.ac.id", "Dr. Dekan Teknik", models.RoleDekan, "password", nil, &fakultasID},
		{"kaprodi@siakad.ac.id", "Dr. Kaprodi Informatika", models.RoleKaprodi, "password", &prodiID, nil},
	}
	for _, a := range accounts {
		if err := s.ensureUser(ctx, a.email, a.nama, a.role, a.password, a.prodi, a.fakultas); err != nil {
			return err
		}
	}

	dosenID, err := s.ensureDosen(ctx, prodiID)
	if err != nil {
		return err
	}
	return s.ensureMahasiswa(ctx, prodiID, dosenID)
}

func (s *Seeder) ensureDosen(ctx context.Context, prodiID string) (string, error) {
	const nidn = "0001018901"
	existing, err := s.repos.DosenRepository.GetByNIDN(ctx, nidn)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrDosenNotFound) {
		return "", err
	}

	hashed, err := auth.HashPassword("password")
	if err != nil {
		return "", err
	}
	user := &models.User{
		ID:       uuid.NewString(),
		Email:    "dosen@siakad.ac.id",
		Password: hashed,
		Nama:     "Dr. Budi Dosen, M.Kom.",
		Role:     models.RoleDosen,
		ProdiID:  &prodiID,
		IsActive: true,
	}
	if err := s.repos.UserRepository.Create(ctx, user); err != nil {
		return "", fmt.Errorf("failed to seed dosen account: %w", err)
	}

	d := &models.Dosen{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		NIDN:    nidn,
		Nama:    user.Nama,
		Email:   user.Email,
		ProdiID: prodiID,
	}
	if err := s.repos.DosenRepository.Create(ctx, d); err != nil {
		return "", fmt.Errorf("failed to seed dosen: %w", err)
	}
	logger.Info().Str("nidn", nidn).Msg("Seeded dosen")
	return d.ID, nil
}

func (s *Seeder) ensureMahasiswa(ctx context.Context, prodiID, dosenPAID string) error {
	const nim = "2024001001"
	_, err := s.repos.MahasiswaRepository.GetByNIM(ctx, nim)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrMahasiswaNotFound) {
		return err
	}

	hashed, err := auth.HashPassword("password")
	if err != nil {
		return err
	}
	user := &models.User{
		ID:       uuid.NewString(),
		Email:    "mahasiswa@siakad.ac.id",
		Password: hashed,
		Nama:     "Andi Mahasiswa",
		Role:     models.RoleMahasiswa,
		ProdiID:  &prodiID,
		IsActive: true,
	}
	if err := s.repos.UserRepository.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to seed mahasiswa account: %w", err)
	}

	m := &models.Mahasiswa{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		NIM:       nim,
		Nama:      user.Nama,
		Email:     user.Email,
		ProdiID:   prodiID,
		Angkatan:  2024,
		Status:    models.MahasiswaAktif,
		DosenPAID: &dosenPAID,
	}
	if err := s.repos.MahasiswaRepository.Create(ctx, m); err != nil {
		return fmt.Errorf("failed to seed mahasiswa: %w", err)
	}
	logger.Info().Str("nim", nim).Msg("Seeded mahasiswa")
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, email, nama string, role models.RoleType, password string, prodiID, fakultasID *string) error {
	_, err := s.repos.UserRepository.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up seed account %s: %w", email, err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{
		ID:         uuid.NewString(),
		Email:      email,
		Password:   hashed,
		Nama:       nama,
		Role:       role,
		ProdiID:    prodiID,
		FakultasID: fakultasID,
		IsActive:   true,
	}
	if err := s.repos.UserRepository.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to seed account %s: %w", email, err)
	}
	logger.Info().Str("email", email).Str("role", string(role)).Msg("Seeded account")
	return nil
}

func (s *Seeder) ensureFakultas(ctx context.Context, kode, nama string) (string, error) {
	list, err := s.repos.FakultasRepository.List(ctx)
	if err != nil {
		return "", err
	}
	for _, f := range list {
		if f.Kode == kode {
			return f.ID, nil
		}
	}

	f := &models.Fakultas{ID: uuid.NewString(), Kode: kode, Nama: nama}
	if err := s.repos.FakultasRepository.Create(ctx, f); err != nil {
		return "", fmt.Errorf("failed to seed fakultas: %w", err)
	}
	logger.Info().Str("kode", kode).Msg("Seeded fakultas")
	return f.ID, nil
}

func (s *Seeder) ensureProdi(ctx context.Context, kode, nama, jenjang, fakultasID string) (string, error) {
	list, err := s.repos.ProdiRepository.List(ctx, nil)
	if err != nil {
		return "", err
	}
	for _, p := range list {
		if p.Kode == kode {
			return p.ID, nil
		}
	}

	p := &models.Prodi{ID: uuid.NewString(), Kode: kode, Nama: nama, Jenjang: jenjang, FakultasID: fakultasID}
	if err := s.repos.ProdiRepository.Create(ctx, p); err != nil {
		return "", fmt.Errorf("failed to seed prodi: %w", err)
	}
	logger.Info().Str("kode", kode).Msg("Seeded prodi")
	return p.ID, nil
}

func (s *Seeder) ensureTahunAkademik(ctx context.Context) error {
	list, err := s.repos.TahunAkademikRepository.List(ctx)
	if err != nil {
		return err
	}
	if len(list) > 0 {
		return nil
	}

	ta := &models.TahunAkademik{
		ID:       uuid.NewString(),
		Kode:     "20241",
		Nama:     "2024/2025",
		Semester: "ganjil",
		IsActive: true,
	}
	if err := s.repos.TahunAkademikRepository.Create(ctx, ta); err != nil {
		return fmt.Errorf("failed to seed tahun akademik: %w", err)
	}
	logger.Info().Str("kode", ta.Kode).Msg("Seeded tahun akademik")
	return nil
}

func (s *Seeder) ensureKurikulum(ctx context.Context, prodiID string) (string, error) {
	list, err := s.repos.KurikulumRepository.List(ctx, nil)
	if err != nil {
		return "", err
	}
	for _, k := range list {
		if k.Kode == "KUR2024" {
			return k.ID, nil
		}
	}

	k := &models.Kurikulum{
		ID:       uuid.NewString(),
		Kode:     "KUR2024",
		Nama:     "Kurikulum 2024",
		Tahun:    2024,
		ProdiID:  prodiID,
		IsActive: true,
	}
	if err := s.repos.KurikulumRepository.Create(ctx, k); err != nil {
		return "", fmt.Errorf("failed to seed kurikulum: %w", err)
	}
	logger.Info().Str("kode", k.Kode).Msg("Seeded kurikulum")
	return k.ID, nil
}

func (s *Seeder) ensureMataKuliah(ctx context.Context, kurikulumID, prodiID string) error {
	existing, err := s.repos.MataKuliahRepository.List(ctx, kurikulumID, nil)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, mk := range existing {
		have[mk.Kode] = true
	}

	catalog := []struct {
		kode       string
		nama       string
		sksTeori   int
		sksPraktik int
		semester   int
	}{
		{"TI101", "Algoritma dan Pemrograman", 2, 1, 1},
		{"TI102", "Matematika Diskrit", 3, 0, 1},
		{"TI201", "Struktur Data", 2, 1, 2},
		{"TI202", "Basis Data", 2, 1, 2},
		{"TI301", "Pemrograman Web", 1, 2, 3},
		{"TI302", "Jaringan Komputer", 2, 1, 3},
	}
	for _, c := range catalog {
		if have[c.kode] {
			continue
		}
		mk := &models.MataKuliah{
			ID:          uuid.NewString(),
			Kode:        c.kode,
			Nama:        c.nama,
			SKSTeori:    c.sksTeori,
			SKSPraktik:  c.sksPraktik,
			Semester:    c.semester,
			KurikulumID: kurikulumID,
			ProdiID:     prodiID,
			Prasyarat:   []string{},
		}
		if err := s.repos.MataKuliahRepository.Create(ctx, mk); err != nil {
			return fmt.Errorf("failed to seed mata kuliah %s: %w", c.kode, err)
		}
	}
	return nil
}
