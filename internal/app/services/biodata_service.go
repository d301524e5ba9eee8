package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/repositories"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
)

// BiodataService handles student biodata change requests. Edits never
// touch the record directly; an admin applies them on approval.
type BiodataService struct {
	biodataRepo   *repositories.BiodataRepository
	mahasiswaRepo *repositories.MahasiswaRepository
	logger        zerolog.Logger
}

// NewBiodataService creates a new BiodataService
func NewBiodataService(
	biodataRepo *repositories.BiodataRepository,
	mahasiswaRepo *repositories.MahasiswaRepository,
	logger zerolog.Logger,
) *BiodataService {
	return &BiodataService{
		biodataRepo:   biodataRepo,
		mahasiswaRepo: mahasiswaRepo,
		logger:        logger,
	}
}

// MyBiodata returns the calling student's record together with their
// pending change request, if one is queued.
func (s *BiodataService) MyBiodata(ctx context.Context, userID string) (*dto.MyBiodataResponse, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.MyBiodataResponse{Biodata: m}

	requests, err := s.biodataRepo.List(ctx, models.StatusPending, m.ID)
	if err != nil {
		return nil, err
	}
	if len(requests) > 0 {
		out.HasPendingRequest = true
		out.PendingRequest = requests[0]
	}
	return out, nil
}

// FillBiodata applies the first biodata fill directly. Once any field
// is set, edits have to go through the change-request queue.
func (s *BiodataService) FillBiodata(ctx context.Context, userID string, req *dto.BiodataChangeRequestBody) (*models.Mahasiswa, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if biodataFilled(m) {
		return nil, apperrors.NewBadRequestError("biodata sudah terisi, ajukan change request untuk mengubahnya")
	}
	if len(req.Changes) == 0 {
		return nil, apperrors.NewValidationError("tidak ada field yang diisi")
	}
	for field := range req.Changes {
		if !models.BiodataEditableFields[field] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("field %q tidak dapat diubah", field))
		}
	}
	if err := s.mahasiswaRepo.UpdateFields(ctx, m.ID, req.Changes); err != nil {
		return nil, err
	}
	return s.mahasiswaRepo.GetByID(ctx, m.ID)
}

func biodataFilled(m *models.Mahasiswa) bool {
	for _, v := range []*string{m.JenisKelamin, m.TempatLahir, m.TanggalLahir, m.Alamat, m.NoHP} {
		if v != nil && *v != "" {
			return true
		}
	}
	return false
}

// SubmitChangeRequest queues a biodata edit for admin review. One
// pending request per student at a time; unknown fields are rejected.
func (s *BiodataService) SubmitChangeRequest(ctx context.Context, userID string, req *dto.BiodataChangeRequestBody) (*models.BiodataChangeRequest, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(req.Changes) == 0 {
		return nil, apperrors.NewValidationError("tidak ada perubahan yang diajukan")
	}
	for field := range req.Changes {
		if !models.BiodataEditableFields[field] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("field %q tidak dapat diubah", field))
		}
	}

	pending, err := s.biodataRepo.HasPending(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.ErrChangeRequestPending
	}

	request := &models.BiodataChangeRequest{
		ID:          uuid.NewString(),
		MahasiswaID: m.ID,
		Changes:     req.Changes,
		Status:      models.StatusPending,
	}
	if err := s.biodataRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return s.biodataRepo.GetByID(ctx, request.ID)
}

// MyChangeRequests returns the calling student's request history.
func (s *BiodataService) MyChangeRequests(ctx context.Context, userID string) ([]*models.BiodataChangeRequest, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := s.biodataRepo.List(ctx, "", m.ID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*models.BiodataChangeRequest{}
	}
	return list, nil
}

// ListChangeRequests returns the admin review queue with student names.
func (s *BiodataService) ListChangeRequests(ctx context.Context, status string) ([]*models.BiodataChangeRequest, error) {
	list, err := s.biodataRepo.List(ctx, status, "")
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.BiodataChangeRequest{}, nil
	}

	ids := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, r := range list {
		if !seen[r.MahasiswaID] {
			seen[r.MahasiswaID] = true
			ids = append(ids, r.MahasiswaID)
		}
	}
	students, err := s.mahasiswaRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, r := range list {
		if m, ok := students[r.MahasiswaID]; ok {
			r.MahasiswaNama = m.Nama
			r.MahasiswaNIM = m.NIM
		}
	}
	return list, nil
}

// GetChangeRequest returns one request with the current values of the
// fields it wants to change.
func (s *BiodataService) GetChangeRequest(ctx context.Context, requestID string) (*dto.ChangeRequestDetail, error) {
	request, err := s.biodataRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	m, err := s.mahasiswaRepo.GetByID(ctx, request.MahasiswaID)
	if err != nil {
		return nil, err
	}
	request.MahasiswaNama = m.Nama
	request.MahasiswaNIM = m.NIM

	current := make(map[string]*string, len(request.Changes))
	values := map[string]*string{
		"jenis_kelamin": m.JenisKelamin,
		"tempat_lahir":  m.TempatLahir,
		"tanggal_lahir": m.TanggalLahir,
		"alamat":        m.Alamat,
		"no_hp":         m.NoHP,
	}
	for field := range request.Changes {
		current[field] = values[field]
	}
	return &dto.ChangeRequestDetail{Request: request, Current: current}, nil
}

// ListBiodata returns student records within the caller's scope.
func (s *BiodataService) ListBiodata(ctx context.Context, scope appauth.AccessScope) ([]*models.Mahasiswa, error) {
	list, err := s.mahasiswaRepo.List(ctx, scopeFilter(scope), 0, "")
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*models.Mahasiswa{}
	}
	return list, nil
}

// BelumIsi returns in-scope students who have not filled their biodata.
func (s *BiodataService) BelumIsi(ctx context.Context, scope appauth.AccessScope) ([]*models.Mahasiswa, error) {
	list, err := s.mahasiswaRepo.ListBiodataKosong(ctx, scopeFilter(scope))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*models.Mahasiswa{}
	}
	return list, nil
}

// Review applies the admin verdict. Approval patches the student
// record with the requested changes.
func (s *BiodataService) Review(ctx context.Context, requestID string, req *dto.ReviewRequest) (*models.BiodataChangeRequest, error) {
	request, err := s.biodataRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.StatusPending {
		return nil, apperrors.ErrRequestNotPending
	}

	status := models.StatusRejected
	if req.Action == "approve" {
		status = models.StatusApproved
		if err := s.mahasiswaRepo.UpdateFields(ctx, request.MahasiswaID, request.Changes); err != nil {
			return nil, err
		}
	}
	if err := s.biodataRepo.SetStatus(ctx, requestID, status, req.Catatan); err != nil {
		return nil, err
	}
	return s.biodataRepo.GetByID(ctx, requestID)
}
