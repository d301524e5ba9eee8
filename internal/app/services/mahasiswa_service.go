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
	"github.com/nurhakim/siakad/internal/pkg/auth"
)

// MahasiswaService handles student records and their login accounts.
type MahasiswaService struct {
	mahasiswaRepo *repositories.MahasiswaRepository
	userRepo      *repositories.UserRepository
	prodiRepo     *repositories.ProdiRepository
	dosenRepo     *repositories.DosenRepository
	logger        zerolog.Logger
}

// NewMahasiswaService creates a new MahasiswaService
func NewMahasiswaService(
	mahasiswaRepo *repositories.MahasiswaRepository,
	userRepo *repositories.UserRepository,
	prodiRepo *repositories.ProdiRepository,
	dosenRepo *repositories.DosenRepository,
	logger zerolog.Logger,
) *MahasiswaService {
	return &MahasiswaService{
		mahasiswaRepo: mahasiswaRepo,
		userRepo:      userRepo,
		prodiRepo:     prodiRepo,
		dosenRepo:     dosenRepo,
		logger:        logger,
	}
}

// Create provisions a student record together with their login
// account. The initial password is the NIM.
func (s *MahasiswaService) Create(ctx context.Context, scope appauth.AccessScope, req *dto.MahasiswaRequest) (*models.Mahasiswa, error) {
	if !scope.AllowsProdi(req.ProdiID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if _, err := s.prodiRepo.GetByID(ctx, req.ProdiID); err != nil {
		return nil, err
	}
	if req.DosenPAID != nil {
		if _, err := s.dosenRepo.GetByID(ctx, *req.DosenPAID); err != nil {
			return nil, err
		}
	}

	hashed, err := auth.HashPassword(req.NIM)
	if err != nil {
		return nil, err
	}

	prodiID := req.ProdiID
	user := &models.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: hashed,
		Nama:     req.Nama,
		Role:     models.RoleMahasiswa,
		ProdiID:  &prodiID,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	m := &models.Mahasiswa{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		NIM:          req.NIM,
		Nama:         req.Nama,
		Email:        req.Email,
		ProdiID:      req.ProdiID,
		Angkatan:     req.Angkatan,
		Status:       models.MahasiswaAktif,
		DosenPAID:    req.DosenPAID,
		JenisKelamin: req.JenisKelamin,
		TempatLahir:  req.TempatLahir,
		TanggalLahir: req.TanggalLahir,
		Alamat:       req.Alamat,
		NoHP:         req.NoHP,
	}
	if err := s.mahasiswaRepo.Create(ctx, m); err != nil {
		// roll back the orphaned account
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("user_id", user.ID).Msg("Failed to remove orphaned account")
		}
		return nil, err
	}
	return s.Get(ctx, scope, m.ID)
}

// List returns students within the caller's scope, optionally narrowed
// to one prodi. The prodi filter intersects with the scope; it cannot
// widen it.
func (s *MahasiswaService) List(ctx context.Context, scope appauth.AccessScope, prodiID string, angkatan int, status string) ([]*models.Mahasiswa, error) {
	list, err := s.mahasiswaRepo.List(ctx, scopeFilter(scope.ApplyProdiFilter(prodiID)), angkatan, status)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.Mahasiswa{}, nil
	}
	if err := s.decorate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *MahasiswaService) decorate(ctx context.Context, list []*models.Mahasiswa) error {
	prodiIDs := make([]string, 0, len(list))
	dosenIDs := make([]string, 0, len(list))
	seenProdi := make(map[string]bool)
	seenDosen := make(map[string]bool)
	for _, m := range list {
		if !seenProdi[m.ProdiID] {
			seenProdi[m.ProdiID] = true
			prodiIDs = append(prodiIDs, m.ProdiID)
		}
		if m.DosenPAID != nil && !seenDosen[*m.DosenPAID] {
			seenDosen[*m.DosenPAID] = true
			dosenIDs = append(dosenIDs, *m.DosenPAID)
		}
	}

	prodiNames, err := s.prodiRepo.NamesByIDs(ctx, prodiIDs)
	if err != nil {
		return err
	}
	dosenNames, err := s.dosenRepo.NamesByIDs(ctx, dosenIDs)
	if err != nil {
		return err
	}
	for _, m := range list {
		m.ProdiNama = prodiNames[m.ProdiID]
		if m.DosenPAID != nil {
			m.DosenPANama = dosenNames[*m.DosenPAID]
		}
	}
	return nil
}

// Get retrieves one student, enforcing the caller's scope.
func (s *MahasiswaService) Get(ctx context.Context, scope appauth.AccessScope, id string) (*models.Mahasiswa, error) {
	m, err := s.mahasiswaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProdi(m.ProdiID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := s.decorate(ctx, []*models.Mahasiswa{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// GetByUser retrieves the student record behind a login account.
func (s *MahasiswaService) GetByUser(ctx context.Context, userID string) (*models.Mahasiswa, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, []*models.Mahasiswa{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// Update modifies a student record.
func (s *MahasiswaService) Update(ctx context.Context, scope appauth.AccessScope, id string, req *dto.MahasiswaUpdateRequest) (*models.Mahasiswa, error) {
	m, err := s.mahasiswaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProdi(m.ProdiID) {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Nama != nil {
		m.Nama = *req.Nama
	}
	if req.ProdiID != nil {
		if !scope.AllowsProdi(*req.ProdiID) {
			return nil, apperrors.ErrPermissionDenied
		}
		if _, err := s.prodiRepo.GetByID(ctx, *req.ProdiID); err != nil {
			return nil, err
		}
		m.ProdiID = *req.ProdiID
	}
	if req.Angkatan != nil {
		m.Angkatan = *req.Angkatan
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	if req.DosenPAID != nil {
		if _, err := s.dosenRepo.GetByID(ctx, *req.DosenPAID); err != nil {
			return nil, err
		}
		m.DosenPAID = req.DosenPAID
	}
	if req.JenisKelamin != nil {
		m.JenisKelamin = req.JenisKelamin
	}
	if req.TempatLahir != nil {
		m.TempatLahir = req.TempatLahir
	}
	if req.TanggalLahir != nil {
		m.TanggalLahir = req.TanggalLahir
	}
	if req.Alamat != nil {
		m.Alamat = req.Alamat
	}
	if req.NoHP != nil {
		m.NoHP = req.NoHP
	}

	if err := s.mahasiswaRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	if req.Nama != nil {
		if err := s.userRepo.UpdateNama(ctx, m.UserID, m.Nama); err != nil {
			s.logger.Warn().Err(err).Str("user_id", m.UserID).Msg("Failed to sync account name")
		}
	}
	return s.Get(ctx, scope, id)
}

// Delete removes a student record and its account.
func (s *MahasiswaService) Delete(ctx context.Context, scope appauth.AccessScope, id string) error {
	m, err := s.mahasiswaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !scope.AllowsProdi(m.ProdiID) {
		return apperrors.ErrPermissionDenied
	}
	if err := s.mahasiswaRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, m.UserID)
}
