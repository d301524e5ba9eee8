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

// DosenService handles lecturer records and their login accounts.
type DosenService struct {
	dosenRepo *repositories.DosenRepository
	userRepo  *repositories.UserRepository
	prodiRepo *repositories.ProdiRepository
	logger    zerolog.Logger
}

// NewDosenService creates a new DosenService
func NewDosenService(
	dosenRepo *repositories.DosenRepository,
	userRepo *repositories.UserRepository,
	prodiRepo *repositories.ProdiRepository,
	logger zerolog.Logger,
) *DosenService {
	return &DosenService{
		dosenRepo: dosenRepo,
		userRepo:  userRepo,
		prodiRepo: prodiRepo,
		logger:    logger,
	}
}

// Create provisions a lecturer record together with their login
// account. The initial password is the NIDN.
func (s *DosenService) Create(ctx context.Context, scope appauth.AccessScope, req *dto.DosenRequest) (*models.Dosen, error) {
	if !scope.AllowsProdi(req.ProdiID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if _, err := s.prodiRepo.GetByID(ctx, req.ProdiID); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.NIDN)
	if err != nil {
		return nil, err
	}

	prodiID := req.ProdiID
	user := &models.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: hashed,
		Nama:     req.Nama,
		Role:     models.RoleDosen,
		ProdiID:  &prodiID,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	d := &models.Dosen{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		NIDN:       req.NIDN,
		NIP:        req.NIP,
		Nama:       req.Nama,
		Email:      req.Email,
		ProdiID:    req.ProdiID,
		Pendidikan: req.Pendidikan,
		Jabatan:    req.Jabatan,
		NoHP:       req.NoHP,
	}
	if err := s.dosenRepo.Create(ctx, d); err != nil {
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("user_id", user.ID).Msg("Failed to remove orphaned account")
		}
		return nil, err
	}
	return s.Get(ctx, scope, d.ID)
}

// List returns lecturers within the caller's scope.
func (s *DosenService) List(ctx context.Context, scope appauth.AccessScope) ([]*models.Dosen, error) {
	list, err := s.dosenRepo.List(ctx, scopeFilter(scope))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.Dosen{}, nil
	}
	if err := s.decorate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *DosenService) decorate(ctx context.Context, list []*models.Dosen) error {
	prodiIDs := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, d := range list {
		if !seen[d.ProdiID] {
			seen[d.ProdiID] = true
			prodiIDs = append(prodiIDs, d.ProdiID)
		}
	}
	names, err := s.prodiRepo.NamesByIDs(ctx, prodiIDs)
	if err != nil {
		return err
	}
	for _, d := range list {
		d.ProdiNama = names[d.ProdiID]
	}
	return nil
}

// Get retrieves one lecturer, enforcing the caller's scope.
func (s *DosenService) Get(ctx context.Context, scope appauth.AccessScope, id string) (*models.Dosen, error) {
	d, err := s.dosenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProdi(d.ProdiID) {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := s.decorate(ctx, []*models.Dosen{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByUser retrieves the lecturer record behind a login account.
func (s *DosenService) GetByUser(ctx context.Context, userID string) (*models.Dosen, error) {
	d, err := s.dosenRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, []*models.Dosen{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// Update modifies a lecturer record.
func (s *DosenService) Update(ctx context.Context, scope appauth.AccessScope, id string, req *dto.DosenUpdateRequest) (*models.Dosen, error) {
	d, err := s.dosenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProdi(d.ProdiID) {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Nama != nil {
		d.Nama = *req.Nama
	}
	if req.NIP != nil {
		d.NIP = req.NIP
	}
	if req.ProdiID != nil {
		if !scope.AllowsProdi(*req.ProdiID) {
			return nil, apperrors.ErrPermissionDenied
		}
		if _, err := s.prodiRepo.GetByID(ctx, *req.ProdiID); err != nil {
			return nil, err
		}
		d.ProdiID = *req.ProdiID
	}
	if req.Pendidikan != nil {
		d.Pendidikan = req.Pendidikan
	}
	if req.Jabatan != nil {
		d.Jabatan = req.Jabatan
	}
	if req.NoHP != nil {
		d.NoHP = req.NoHP
	}

	if err := s.dosenRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	if req.Nama != nil {
		if err := s.userRepo.UpdateNama(ctx, d.UserID, d.Nama); err != nil {
			s.logger.Warn().Err(err).Str("user_id", d.UserID).Msg("Failed to sync account name")
		}
	}
	return s.Get(ctx, scope, id)
}

// Delete removes a lecturer record and its account.
func (s *DosenService) Delete(ctx context.Context, scope appauth.AccessScope, id string) error {
	d, err := s.dosenRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !scope.AllowsProdi(d.ProdiID) {
		return apperrors.ErrPermissionDenied
	}
	if err := s.dosenRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, d.UserID)
}
