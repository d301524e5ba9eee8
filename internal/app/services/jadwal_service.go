package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/repositories"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
	"github.com/nurhakim/siakad/internal/pkg/schedule"
)

// SlotSource lists the stored sections a candidate slot must be
// checked against.
type SlotSource interface {
	ListByRuangan(ctx context.Context, tahunAkademikID, ruangan string) ([]*models.Kelas, error)
	ListByDosen(ctx context.Context, tahunAkademikID, dosenID string) ([]*models.Kelas, error)
}

// CourseNamer resolves course display names for conflict messages.
type CourseNamer interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.MataKuliah, error)
}

// ConflictChecker detects room and lecturer schedule collisions.
type ConflictChecker struct {
	slots   SlotSource
	courses CourseNamer
}

// NewConflictChecker creates a ConflictChecker.
func NewConflictChecker(slots SlotSource, courses CourseNamer) *ConflictChecker {
	return &ConflictChecker{slots: slots, courses: courses}
}

func (c *ConflictChecker) toSlots(ctx context.Context, list []*models.Kelas) ([]schedule.Slot, error) {
	ids := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, k := range list {
		if !seen[k.MataKuliahID] {
			seen[k.MataKuliahID] = true
			ids = append(ids, k.MataKuliahID)
		}
	}
	courses, err := c.courses.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]schedule.Slot, 0, len(list))
	for _, k := range list {
		nama := ""
		if mk, ok := courses[k.MataKuliahID]; ok {
			nama = mk.Nama
		}
		out = append(out, schedule.Slot{
			KelasID:    k.ID,
			KodeKelas:  k.KodeKelas,
			MataKuliah: nama,
			Hari:       k.Hari,
			JamMulai:   k.JamMulai,
			JamSelesai: k.JamSelesai,
		})
	}
	return out, nil
}

// Check scans for collisions against the candidate slot. Room conflicts
// come before lecturer conflicts in the result.
func (c *ConflictChecker) Check(ctx context.Context, req *dto.CheckConflictRequest) (*dto.KonflikResponse, error) {
	cand := schedule.Candidate{
		Hari:       req.Hari,
		JamMulai:   req.JamMulai,
		JamSelesai: req.JamSelesai,
	}
	if req.KelasID != nil {
		cand.ExcludeKelasID = *req.KelasID
	}
	if _, _, err := cand.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var conflicts []schedule.Conflict
	if req.Ruangan != nil && *req.Ruangan != "" {
		roomKelas, err := c.slots.ListByRuangan(ctx, req.TahunAkademikID, *req.Ruangan)
		if err != nil {
			return nil, err
		}
		roomSlots, err := c.toSlots(ctx, roomKelas)
		if err != nil {
			return nil, err
		}
		conflicts = schedule.ScanSlots(cand, schedule.ConflictRoom, *req.Ruangan, roomSlots)
	}

	dosenKelas, err := c.slots.ListByDosen(ctx, req.TahunAkademikID, req.DosenID)
	if err != nil {
		return nil, err
	}
	dosenSlots, err := c.toSlots(ctx, dosenKelas)
	if err != nil {
		return nil, err
	}
	conflicts = append(conflicts, schedule.ScanSlots(cand, schedule.ConflictLecturer, "", dosenSlots)...)

	resp := &dto.KonflikResponse{
		HasConflict: len(conflicts) > 0,
		Conflicts:   make([]dto.KonflikDetail, 0, len(conflicts)),
	}
	for _, k := range conflicts {
		resp.Conflicts = append(resp.Conflicts, dto.KonflikDetail{Type: k.Type, Message: k.Message})
	}
	return resp, nil
}

// KelasStore is the section persistence surface the service needs.
type KelasStore interface {
	SlotSource
	Create(ctx context.Context, k *models.Kelas) error
	GetByID(ctx context.Context, id string) (*models.Kelas, error)
	Update(ctx context.Context, k *models.Kelas) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repositories.ListFilter) ([]*models.Kelas, error)
	CountPeserta(ctx context.Context, kelasIDs []string) (map[string]int, error)
}

// CourseStore resolves courses for validation and decoration.
type CourseStore interface {
	CourseNamer
	GetByID(ctx context.Context, id string) (*models.MataKuliah, error)
}

// DosenDirectory resolves lecturers for validation and decoration.
type DosenDirectory interface {
	GetByID(ctx context.Context, id string) (*models.Dosen, error)
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// TermStore resolves academic terms.
type TermStore interface {
	GetByID(ctx context.Context, id string) (*models.TahunAkademik, error)
	GetActive(ctx context.Context) (*models.TahunAkademik, error)
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// ProdiNamer resolves study program display names.
type ProdiNamer interface {
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// JadwalService handles class sections and their weekly schedule.
type JadwalService struct {
	kelasRepo      KelasStore
	mataKuliahRepo CourseStore
	dosenRepo      DosenDirectory
	tahunRepo      TermStore
	prodiRepo      ProdiNamer
	checker        *ConflictChecker
	logger         zerolog.Logger
}

// NewJadwalService creates a new JadwalService
func NewJadwalService(
	kelasRepo KelasStore,
	mataKuliahRepo CourseStore,
	dosenRepo DosenDirectory,
	tahunRepo TermStore,
	prodiRepo ProdiNamer,
	logger zerolog.Logger,
) *JadwalService {
	return &JadwalService{
		kelasRepo:      kelasRepo,
		mataKuliahRepo: mataKuliahRepo,
		dosenRepo:      dosenRepo,
		tahunRepo:      tahunRepo,
		prodiRepo:      prodiRepo,
		checker:        NewConflictChecker(kelasRepo, mataKuliahRepo),
		logger:         logger,
	}
}

// CheckConflict runs a dry-run collision probe without writing anything.
func (s *JadwalService) CheckConflict(ctx context.Context, req *dto.CheckConflictRequest) (*dto.KonflikResponse, error) {
	return s.checker.Check(ctx, req)
}

// CreateKelas creates a class section after validating references and
// rejecting schedule collisions.
func (s *JadwalService) CreateKelas(ctx context.Context, scope appauth.AccessScope, req *dto.KelasRequest) (*models.Kelas, error) {
	mk, err := s.mataKuliahRepo.GetByID(ctx, req.MataKuliahID)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProdi(mk.ProdiID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if _, err := s.dosenRepo.GetByID(ctx, req.DosenID); err != nil {
		return nil, err
	}
	if _, err := s.tahunRepo.GetByID(ctx, req.TahunAkademikID); err != nil {
		return nil, err
	}

	probe := &dto.CheckConflictRequest{
		DosenID:         req.DosenID,
		TahunAkademikID: req.TahunAkademikID,
		Hari:            req.Hari,
		JamMulai:        req.JamMulai,
		JamSelesai:      req.JamSelesai,
		Ruangan:         req.Ruangan,
	}
	konflik, err := s.checker.Check(ctx, probe)
	if err != nil {
		return nil, err
	}
	if konflik.HasConflict {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrJadwalConflict,
			Message: "jadwal bentrok",
			Details: konflik.Conflicts,
		}
	}

	k := &models.Kelas{
		ID:              uuid.NewString(),
		KodeKelas:       req.KodeKelas,
		MataKuliahID:    req.MataKuliahID,
		DosenID:         req.DosenID,
		TahunAkademikID: req.TahunAkademikID,
		ProdiID:         mk.ProdiID,
		Hari:            req.Hari,
		JamMulai:        req.JamMulai,
		JamSelesai:      req.JamSelesai,
		Ruangan:         req.Ruangan,
		Kuota:           req.Kuota,
	}
	if err := s.kelasRepo.Create(ctx, k); err != nil {
		return nil, err
	}
	return s.GetKelas(ctx, scope, k.ID)
}

// UpdateKelas modifies a section, excluding it from its own conflict scan.
func (s *JadwalService) UpdateKelas(ctx context.Context, scope appauth.AccessScope, id string, req *dto.KelasRequest) (*models.Kelas, error) {
	existing, err := s.kelasRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProdi(existing.ProdiID) {
		return nil, apperrors.ErrPermissionDenied
	}
	mk, err := s.mataKuliahRepo.GetByID(ctx, req.MataKuliahID)
	if err != nil {
		return nil, err
	}
	if _, err := s.dosenRepo.GetByID(ctx, req.DosenID); err != nil {
		return nil, err
	}
	if _, err := s.tahunRepo.GetByID(ctx, req.TahunAkademikID); err != nil {
		return nil, err
	}

	probe := &dto.CheckConflictRequest{
		KelasID:         &id,
		DosenID:         req.DosenID,
		TahunAkademikID: req.TahunAkademikID,
		Hari:            req.Hari,
		JamMulai:        req.JamMulai,
		JamSelesai:      req.JamSelesai,
		Ruangan:         req.Ruangan,
	}
	konflik, err := s.checker.Check(ctx, probe)
	if err != nil {
		return nil, err
	}
	if konflik.HasConflict {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrJadwalConflict,
			Message: "jadwal bentrok",
			Details: konflik.Conflicts,
		}
	}

	existing.KodeKelas = req.KodeKelas
	existing.MataKuliahID = req.MataKuliahID
	existing.DosenID = req.DosenID
	existing.TahunAkademikID = req.TahunAkademikID
	existing.ProdiID = mk.ProdiID
	existing.Hari = req.Hari
	existing.JamMulai = req.JamMulai
	existing.JamSelesai = req.JamSelesai
	existing.Ruangan = req.Ruangan
	existing.Kuota = req.Kuota

	if err := s.kelasRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.GetKelas(ctx, scope, id)
}

// ListKelas returns sections matching the filter within scope.
func (s *JadwalService) ListKelas(ctx context.Context, scope appauth.AccessScope, tahunAkademikID, dosenID string) ([]*models.Kelas, error) {
	filter := repositories.ListFilter{
		TahunAkademikID: tahunAkademikID,
		ProdiIDs:        scopeFilter(scope),
		DosenID:         dosenID,
	}
	list, err := s.kelasRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.Kelas{}, nil
	}
	if err := s.decorate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListKelasTersedia returns the sections students can enroll in,
// defaulting to the active term.
func (s *JadwalService) ListKelasTersedia(ctx context.Context, tahunAkademikID string) ([]*models.Kelas, error) {
	if tahunAkademikID == "" {
		active, err := s.tahunRepo.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		tahunAkademikID = active.ID
	}
	list, err := s.kelasRepo.List(ctx, repositories.ListFilter{TahunAkademikID: tahunAkademikID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.Kelas{}, nil
	}
	if err := s.decorate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListKelasByDosen returns the sections one lecturer teaches.
func (s *JadwalService) ListKelasByDosen(ctx context.Context, dosenID, tahunAkademikID string) ([]*models.Kelas, error) {
	filter := repositories.ListFilter{
		TahunAkademikID: tahunAkademikID,
		DosenID:         dosenID,
	}
	list, err := s.kelasRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.Kelas{}, nil
	}
	if err := s.decorate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// decorate fills course, lecturer, term, prodi names and enrollment
// counts with batch fetches.
func (s *JadwalService) decorate(ctx context.Context, list []*models.Kelas) error {
	mkIDs := make([]string, 0, len(list))
	dosenIDs := make([]string, 0, len(list))
	tahunIDs := make([]string, 0, len(list))
	prodiIDs := make([]string, 0, len(list))
	kelasIDs := make([]string, 0, len(list))
	seen := make(map[string]bool)
	add := func(bucket *[]string, id string) {
		if !seen[id] {
			seen[id] = true
			*bucket = append(*bucket, id)
		}
	}
	for _, k := range list {
		add(&mkIDs, k.MataKuliahID)
		add(&dosenIDs, k.DosenID)
		add(&tahunIDs, k.TahunAkademikID)
		add(&prodiIDs, k.ProdiID)
		kelasIDs = append(kelasIDs, k.ID)
	}

	courses, err := s.mataKuliahRepo.GetByIDs(ctx, mkIDs)
	if err != nil {
		return err
	}
	dosenNames, err := s.dosenRepo.NamesByIDs(ctx, dosenIDs)
	if err != nil {
		return err
	}
	tahunNames, err := s.tahunRepo.NamesByIDs(ctx, tahunIDs)
	if err != nil {
		return err
	}
	prodiNames, err := s.prodiRepo.NamesByIDs(ctx, prodiIDs)
	if err != nil {
		return err
	}
	counts, err := s.kelasRepo.CountPeserta(ctx, kelasIDs)
	if err != nil {
		return err
	}

	for _, k := range list {
		if mk, ok := courses[k.MataKuliahID]; ok {
			k.MataKuliahNama = mk.Nama
			k.MataKuliahKode = mk.Kode
			k.SKS = mk.TotalSKS
		}
		k.DosenNama = dosenNames[k.DosenID]
		k.TahunAkademikNama = tahunNames[k.TahunAkademikID]
		k.ProdiNama = prodiNames[k.ProdiID]
		k.JumlahPeserta = counts[k.ID]
	}
	return nil
}

// GetKelas retrieves one decorated section within scope.
func (s *JadwalService) GetKelas(ctx context.Context, scope appauth.AccessScope, id string) (*models.Kelas, error) {
	k, err := s.kelasRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProdi(k.ProdiID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := s.decorate(ctx, []*models.Kelas{k}); err != nil {
		return nil, err
	}
	return k, nil
}

// DeleteKelas removes a section.
func (s *JadwalService) DeleteKelas(ctx context.Context, scope appauth.AccessScope, id string) error {
	k, err := s.kelasRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !scope.AllowsProdi(k.ProdiID) {
		return apperrors.ErrPermissionDenied
	}
	return s.kelasRepo.Delete(ctx, id)
}
