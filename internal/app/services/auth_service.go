package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/repositories"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
	"github.com/nurhakim/siakad/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo      *repositories.UserRepository
	mahasiswaRepo *repositories.MahasiswaRepository
	dosenRepo     *repositories.DosenRepository
	requestRepo   *repositories.AuthRequestRepository
	prodiRepo     *repositories.ProdiRepository
	fakultasRepo  *repositories.FakultasRepository
	scopeResolver *appauth.ScopeResolver
	jwtService    *auth.JWTService
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	mahasiswaRepo *repositories.MahasiswaRepository,
	dosenRepo *repositories.DosenRepository,
	requestRepo *repositories.AuthRequestRepository,
	prodiRepo *repositories.ProdiRepository,
	fakultasRepo *repositories.FakultasRepository,
	scopeResolver *appauth.ScopeResolver,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		mahasiswaRepo: mahasiswaRepo,
		dosenRepo:     dosenRepo,
		requestRepo:   requestRepo,
		prodiRepo:     prodiRepo,
		fakultasRepo:  fakultasRepo,
		scopeResolver: scopeResolver,
		jwtService:    jwtService,
		logger:        logger,
	}
}

// resolveAccount maps a login identifier to the backing user account.
// An identifier containing "@" is treated as an email; otherwise it is
// tried as NIM, then NIDN, then NIP.
func (s *AuthService) resolveAccount(ctx context.Context, identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		user, err := s.userRepo.GetByEmail(ctx, identifier)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperrors.ErrInvalidCredentials
			}
			return nil, err
		}
		return user, nil
	}

	if m, err := s.mahasiswaRepo.GetByNIM(ctx, identifier); err == nil {
		return s.userRepo.GetByID(ctx, m.UserID)
	}
	if d, err := s.dosenRepo.GetByNIDN(ctx, identifier); err == nil {
		return s.userRepo.GetByID(ctx, d.UserID)
	}
	if d, err := s.dosenRepo.GetByNIP(ctx, identifier); err == nil {
		return s.userRepo.GetByID(ctx, d.UserID)
	}
	return nil, apperrors.ErrInvalidCredentials
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.resolveAccount(ctx, strings.TrimSpace(req.UserID))
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Str("user_id", user.ID).Msg("Password mismatch on login")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role), user.ProdiID, user.FakultasID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		User:        user,
	}, nil
}

// MyAccess resolves and describes the caller's visibility scope.
func (s *AuthService) MyAccess(ctx context.Context, user *models.User) (*dto.MyAccessResponse, error) {
	scope, err := s.scopeResolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	prodiRefs, err := s.scopeRefs(ctx, scope.ProdiIDs, s.prodiRepo.NamesByIDs)
	if err != nil {
		return nil, err
	}
	fakultasRefs, err := s.scopeRefs(ctx, scope.FakultasIDs, s.fakultasRepo.NamesByIDs)
	if err != nil {
		return nil, err
	}

	return &dto.MyAccessResponse{
		Role:               string(user.Role),
		HasFullAccess:      scope.Unrestricted,
		IsManagement:       user.Role.IsManagement(),
		ProdiID:            user.ProdiID,
		FakultasID:         user.FakultasID,
		AccessibleProdi:    prodiRefs,
		AccessibleFakultas: fakultasRefs,
	}, nil
}

// scopeRefs pairs scope ids with their display names.
func (s *AuthService) scopeRefs(ctx context.Context, ids []string, namesByIDs func(context.Context, []string) (map[string]string, error)) ([]dto.ScopeRef, error) {
	if len(ids) == 0 {
		return []dto.ScopeRef{}, nil
	}
	names, err := namesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	refs := make([]dto.ScopeRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, dto.ScopeRef{ID: id, Nama: names[id]})
	}
	return refs, nil
}

// ChangePassword verifies the old password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, req *dto.ChangePasswordRequest) error {
	if !auth.CheckPassword(user.Password, req.OldPassword) {
		return apperrors.NewBadRequestError("password lama salah")
	}
	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hashed)
}

// ForgotPassword queues a reset request for the account behind the
// identifier. Unknown identifiers are reported, not hidden: the flow
// is admin-reviewed, so enumeration buys nothing.
func (s *AuthService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	user, err := s.resolveAccount(ctx, strings.TrimSpace(req.UserIDNumber))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	request := &models.PasswordResetRequest{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Status: models.StatusPending,
	}
	if req.PasswordBaru != nil && *req.PasswordBaru != "" {
		hashed, err := auth.HashPassword(*req.PasswordBaru)
		if err != nil {
			return err
		}
		request.PasswordBaru = &hashed
	}
	return s.requestRepo.CreateResetRequest(ctx, request)
}

// ListResetRequests returns the admin reset queue.
func (s *AuthService) ListResetRequests(ctx context.Context, status string) ([]*models.PasswordResetRequest, error) {
	out, err := s.requestRepo.ListResetRequests(ctx, status)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.PasswordResetRequest{}
	}
	return out, nil
}

// ProcessResetRequest applies the admin verdict. On approve the admin
// password wins when supplied, otherwise the requester's stored choice
// is used.
func (s *AuthService) ProcessResetRequest(ctx context.Context, requestID string, req *dto.ProcessResetRequest) error {
	request, err := s.requestRepo.GetResetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != models.StatusPending {
		return apperrors.ErrRequestNotPending
	}

	if req.Action != "approve" {
		return s.requestRepo.MarkResetProcessed(ctx, requestID, models.StatusRejected)
	}

	hashed, err := resetPasswordHash(req.NewPassword, request.PasswordBaru)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, request.UserID, hashed); err != nil {
		return err
	}
	return s.requestRepo.MarkResetProcessed(ctx, requestID, models.StatusApproved)
}

// resetPasswordHash picks the hash applied on approval: an admin
// override wins over the hash stored with the request.
func resetPasswordHash(override, stored *string) (string, error) {
	switch {
	case override != nil && *override != "":
		return auth.HashPassword(*override)
	case stored != nil && *stored != "":
		return *stored, nil
	default:
		return "", apperrors.NewBadRequestError("tidak ada password baru untuk diterapkan")
	}
}

// SubmitFotoProfil queues an uploaded profile photo for admin review.
func (s *AuthService) SubmitFotoProfil(ctx context.Context, user *models.User, fotoURL string) (*models.FotoProfilRequest, error) {
	req := &models.FotoProfilRequest{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Nama:    user.Nama,
		Role:    user.Role,
		FotoURL: fotoURL,
		Status:  models.StatusPending,
	}
	if err := s.requestRepo.CreateFotoRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListFotoRequests returns the admin photo review queue.
func (s *AuthService) ListFotoRequests(ctx context.Context, status string) ([]*models.FotoProfilRequest, error) {
	out, err := s.requestRepo.ListFotoRequests(ctx, status)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.FotoProfilRequest{}
	}
	return out, nil
}

// MyFotoRequests returns the caller's photo request history.
func (s *AuthService) MyFotoRequests(ctx context.Context, userID string) ([]*models.FotoProfilRequest, error) {
	out, err := s.requestRepo.ListFotoRequestsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.FotoProfilRequest{}
	}
	return out, nil
}

// Register creates a bare account for one of the management roles.
// Dekan needs a fakultas assignment and kaprodi a prodi assignment, or
// the resolved scope of the new account would be empty.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	role := models.RoleType(req.Role)
	if role == models.RoleDekan && req.FakultasID == nil {
		return nil, apperrors.NewValidationError("akun dekan membutuhkan fakultas_id")
	}
	if role == models.RoleKaprodi && req.ProdiID == nil {
		return nil, apperrors.NewValidationError("akun kaprodi membutuhkan prodi_id")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:         uuid.NewString(),
		Email:      strings.ToLower(req.Email),
		Password:   hashed,
		Nama:       req.Nama,
		Role:       role,
		ProdiID:    req.ProdiID,
		FakultasID: req.FakultasID,
		IsActive:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", user.Email).Str("role", req.Role).Msg("Account registered")
	return s.userRepo.GetByID(ctx, user.ID)
}

// ListUsers returns accounts, optionally narrowed to one role.
func (s *AuthService) ListUsers(ctx context.Context, role string) ([]*models.User, error) {
	out, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.User{}
	}
	return out, nil
}

// ToggleUserActive flips the active flag and returns the updated account.
func (s *AuthService) ToggleUserActive(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if err := s.userRepo.SetActive(ctx, userID, !user.IsActive); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// ProcessFotoRequest applies the admin verdict; approval publishes the
// photo on the account.
func (s *AuthService) ProcessFotoRequest(ctx context.Context, requestID, action string) error {
	req, err := s.requestRepo.GetFotoRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != models.StatusPending {
		return apperrors.ErrRequestNotPending
	}

	status := models.StatusRejected
	if action == "approve" {
		status = models.StatusApproved
		if err := s.userRepo.UpdateFotoProfil(ctx, req.UserID, req.FotoURL); err != nil {
			return err
		}
	}
	return s.requestRepo.MarkFotoProcessed(ctx, requestID, status)
}
