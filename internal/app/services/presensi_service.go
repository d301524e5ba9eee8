package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/repositories"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
)

// PresensiService handles class meetings and attendance.
type PresensiService struct {
	presensiRepo  *repositories.PresensiRepository
	kelasRepo     *repositories.KelasRepository
	krsRepo       *repositories.KRSRepository
	mahasiswaRepo *repositories.MahasiswaRepository
	dosenRepo     *repositories.DosenRepository
	logger        zerolog.Logger
}

// NewPresensiService creates a new PresensiService
func NewPresensiService(
	presensiRepo *repositories.PresensiRepository,
	kelasRepo *repositories.KelasRepository,
	krsRepo *repositories.KRSRepository,
	mahasiswaRepo *repositories.MahasiswaRepository,
	dosenRepo *repositories.DosenRepository,
	logger zerolog.Logger,
) *PresensiService {
	return &PresensiService{
		presensiRepo:  presensiRepo,
		kelasRepo:     kelasRepo,
		krsRepo:       krsRepo,
		mahasiswaRepo: mahasiswaRepo,
		dosenRepo:     dosenRepo,
		logger:        logger,
	}
}

// ownSection checks the kelas belongs to the calling dosen.
func (s *PresensiService) ownSection(ctx context.Context, dosenUserID, kelasID string) (*models.Kelas, error) {
	dosen, err := s.dosenRepo.GetByUserID(ctx, dosenUserID)
	if err != nil {
		return nil, err
	}
	kelas, err := s.kelasRepo.GetByID(ctx, kelasID)
	if err != nil {
		return nil, err
	}
	if kelas.DosenID != dosen.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	return kelas, nil
}

// OpenPertemuan opens a class meeting for attendance.
func (s *PresensiService) OpenPertemuan(ctx context.Context, dosenUserID, kelasID string, req *dto.PertemuanRequest) (*models.Pertemuan, error) {
	if _, err := s.ownSection(ctx, dosenUserID, kelasID); err != nil {
		return nil, err
	}
	p := &models.Pertemuan{
		ID:          uuid.NewString(),
		KelasID:     kelasID,
		PertemuanKe: req.PertemuanKe,
		Tanggal:     req.Tanggal,
		Materi:      req.Materi,
	}
	if err := s.presensiRepo.CreatePertemuan(ctx, p); err != nil {
		return nil, err
	}
	return s.presensiRepo.GetPertemuan(ctx, p.ID)
}

// ListPertemuan returns the meetings of one section.
func (s *PresensiService) ListPertemuan(ctx context.Context, dosenUserID, kelasID string) ([]*models.Pertemuan, error) {
	if _, err := s.ownSection(ctx, dosenUserID, kelasID); err != nil {
		return nil, err
	}
	list, err := s.presensiRepo.ListPertemuan(ctx, kelasID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*models.Pertemuan{}
	}
	return list, nil
}

// RecordKehadiran writes attendance marks for one meeting. Only
// students enrolled (approved) in the section are accepted.
func (s *PresensiService) RecordKehadiran(ctx context.Context, dosenUserID, pertemuanID string, req *dto.PresensiRequest) ([]*models.Kehadiran, error) {
	pertemuan, err := s.presensiRepo.GetPertemuan(ctx, pertemuanID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownSection(ctx, dosenUserID, pertemuan.KelasID); err != nil {
		return nil, err
	}

	roster, err := s.krsRepo.ListByKelas(ctx, pertemuan.KelasID)
	if err != nil {
		return nil, err
	}
	enrolled := make(map[string]bool, len(roster))
	for _, k := range roster {
		if k.Status == models.KRSDisetujui {
			enrolled[k.MahasiswaID] = true
		}
	}

	entries := make([]*models.Kehadiran, 0, len(req.Kehadiran))
	for _, e := range req.Kehadiran {
		if !enrolled[e.MahasiswaID] {
			return nil, apperrors.NewBadRequestError("mahasiswa tidak terdaftar di kelas ini")
		}
		entries = append(entries, &models.Kehadiran{
			ID:          uuid.NewString(),
			PertemuanID: pertemuanID,
			MahasiswaID: e.MahasiswaID,
			Status:      e.Status,
		})
	}
	if err := s.presensiRepo.UpsertKehadiran(ctx, entries); err != nil {
		return nil, err
	}
	return s.ListKehadiran(ctx, dosenUserID, pertemuanID)
}

// ListKehadiran returns the attendance of one meeting with student names.
func (s *PresensiService) ListKehadiran(ctx context.Context, dosenUserID, pertemuanID string) ([]*models.Kehadiran, error) {
	pertemuan, err := s.presensiRepo.GetPertemuan(ctx, pertemuanID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownSection(ctx, dosenUserID, pertemuan.KelasID); err != nil {
		return nil, err
	}

	list, err := s.presensiRepo.ListKehadiran(ctx, pertemuanID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.Kehadiran{}, nil
	}

	ids := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, e := range list {
		if !seen[e.MahasiswaID] {
			seen[e.MahasiswaID] = true
			ids = append(ids, e.MahasiswaID)
		}
	}
	students, err := s.mahasiswaRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		if m, ok := students[e.MahasiswaID]; ok {
			e.MahasiswaNama = m.Nama
			e.MahasiswaNIM = m.NIM
		}
	}
	return list, nil
}

// RekapKelas returns per-student attendance counters for one section.
func (s *PresensiService) RekapKelas(ctx context.Context, dosenUserID, kelasID string) (map[string]map[string]int, error) {
	if _, err := s.ownSection(ctx, dosenUserID, kelasID); err != nil {
		return nil, err
	}
	return s.presensiRepo.RekapKehadiran(ctx, kelasID)
}

// MyPresensi returns the calling student's attendance counters per
// section.
func (s *PresensiService) MyPresensi(ctx context.Context, userID string) (map[string]map[string]int, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.presensiRepo.RekapByMahasiswa(ctx, m.ID)
}
