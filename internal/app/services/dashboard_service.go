package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/repositories"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
)

// DashboardService assembles the landing page counters for management
// roles, scoped to what the caller may see.
type DashboardService struct {
	mahasiswaRepo  *repositories.MahasiswaRepository
	dosenRepo      *repositories.DosenRepository
	prodiRepo      *repositories.ProdiRepository
	mataKuliahRepo *repositories.MataKuliahRepository
	kelasRepo      *repositories.KelasRepository
	tahunRepo      *repositories.TahunAkademikRepository
	logger         zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	mahasiswaRepo *repositories.MahasiswaRepository,
	dosenRepo *repositories.DosenRepository,
	prodiRepo *repositories.ProdiRepository,
	mataKuliahRepo *repositories.MataKuliahRepository,
	kelasRepo *repositories.KelasRepository,
	tahunRepo *repositories.TahunAkademikRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		mahasiswaRepo:  mahasiswaRepo,
		dosenRepo:      dosenRepo,
		prodiRepo:      prodiRepo,
		mataKuliahRepo: mataKuliahRepo,
		kelasRepo:      kelasRepo,
		tahunRepo:      tahunRepo,
		logger:         logger,
	}
}

// TahunAkademikLabel renders a term as "2024/2025 - Ganjil".
func TahunAkademikLabel(ta *models.TahunAkademik) string {
	sem := ta.Semester
	if sem != "" {
		sem = strings.ToUpper(sem[:1]) + sem[1:]
	}
	return ta.Nama + " - " + sem
}

// Summary returns counters within the caller's scope.
func (s *DashboardService) Summary(ctx context.Context, scope appauth.AccessScope) (*dto.DashboardResponse, error) {
	filter := scopeFilter(scope)

	totalMahasiswa, err := s.mahasiswaRepo.CountByProdi(ctx, filter)
	if err != nil {
		return nil, err
	}
	mahasiswaAktif, err := s.mahasiswaRepo.CountByProdiStatus(ctx, filter, models.MahasiswaAktif)
	if err != nil {
		return nil, err
	}
	totalDosen, err := s.dosenRepo.CountByProdi(ctx, filter)
	if err != nil {
		return nil, err
	}
	totalMataKuliah, err := s.mataKuliahRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	totalKelas, err := s.kelasRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalMahasiswa:  totalMahasiswa,
		TotalDosen:      totalDosen,
		TotalMataKuliah: totalMataKuliah,
		TotalKelas:      totalKelas,
		MahasiswaAktif:  mahasiswaAktif,
	}
	if scope.Unrestricted {
		totalProdi, err := s.prodiRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		resp.TotalProdi = totalProdi
	} else {
		resp.TotalProdi = int64(len(scope.ProdiIDs))
	}

	active, err := s.tahunRepo.GetActive(ctx)
	switch {
	case err == nil:
		resp.TahunAkademikAktif = TahunAkademikLabel(active)
	case errors.Is(err, apperrors.ErrNoActiveTahunAkademik):
		// no active term yet, leave the label empty
	default:
		return nil, err
	}
	return resp, nil
}
