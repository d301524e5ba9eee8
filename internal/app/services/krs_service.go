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

// KRSService handles the enrollment lifecycle: submit, drop, and the
// advisor approval queue.
type KRSService struct {
	krsRepo       *repositories.KRSRepository
	kelasRepo     *repositories.KelasRepository
	mahasiswaRepo *repositories.MahasiswaRepository
	dosenRepo     *repositories.DosenRepository
	tahunRepo     *repositories.TahunAkademikRepository
	jadwalService *JadwalService
	logger        zerolog.Logger
}

// NewKRSService creates a new KRSService
func NewKRSService(
	krsRepo *repositories.KRSRepository,
	kelasRepo *repositories.KelasRepository,
	mahasiswaRepo *repositories.MahasiswaRepository,
	dosenRepo *repositories.DosenRepository,
	tahunRepo *repositories.TahunAkademikRepository,
	jadwalService *JadwalService,
	logger zerolog.Logger,
) *KRSService {
	return &KRSService{
		krsRepo:       krsRepo,
		kelasRepo:     kelasRepo,
		mahasiswaRepo: mahasiswaRepo,
		dosenRepo:     dosenRepo,
		tahunRepo:     tahunRepo,
		jadwalService: jadwalService,
		logger:        logger,
	}
}

// Enroll submits the calling student into a section of the active term.
func (s *KRSService) Enroll(ctx context.Context, userID string, req *dto.KRSRequest) (*models.KRS, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	kelas, err := s.kelasRepo.GetByID(ctx, req.KelasID)
	if err != nil {
		return nil, err
	}
	active, err := s.tahunRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if kelas.TahunAkademikID != active.ID {
		return nil, apperrors.NewBadRequestError("kelas bukan bagian dari tahun akademik aktif")
	}

	counts, err := s.kelasRepo.CountPeserta(ctx, []string{kelas.ID})
	if err != nil {
		return nil, err
	}
	if counts[kelas.ID] >= kelas.Kuota {
		return nil, apperrors.ErrKelasKuotaPenuh
	}

	krs := &models.KRS{
		ID:              uuid.NewString(),
		MahasiswaID:     m.ID,
		KelasID:         kelas.ID,
		TahunAkademikID: kelas.TahunAkademikID,
		Status:          models.KRSDiajukan,
	}
	if err := s.krsRepo.Create(ctx, krs); err != nil {
		return nil, err
	}
	decorated, err := s.decorate(ctx, []*models.KRS{krs})
	if err != nil {
		return nil, err
	}
	return decorated[0], nil
}

// MyKRS returns the calling student's enrollments, defaulting to the
// active term when none is named.
func (s *KRSService) MyKRS(ctx context.Context, userID, tahunAkademikID string) ([]*models.KRS, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tahunAkademikID == "" {
		active, err := s.tahunRepo.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		tahunAkademikID = active.ID
	}
	list, err := s.krsRepo.ListByMahasiswa(ctx, m.ID, tahunAkademikID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, list)
}

// Drop removes the student's own submitted enrollment. Approved
// entries can no longer be dropped.
func (s *KRSService) Drop(ctx context.Context, userID, krsID string) error {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	krs, err := s.krsRepo.GetByID(ctx, krsID)
	if err != nil {
		return err
	}
	if krs.MahasiswaID != m.ID {
		return apperrors.ErrPermissionDenied
	}
	if krs.Status == models.KRSDisetujui {
		return apperrors.ErrKRSAlreadyApproved
	}
	return s.krsRepo.Delete(ctx, krsID)
}

// PendingApprovals returns submitted enrollments of the dosen's advisees.
func (s *KRSService) PendingApprovals(ctx context.Context, dosenUserID string) ([]*models.KRS, error) {
	dosen, err := s.dosenRepo.GetByUserID(ctx, dosenUserID)
	if err != nil {
		return nil, err
	}
	advisees, err := s.mahasiswaRepo.ListByDosenPA(ctx, dosen.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(advisees))
	for _, m := range advisees {
		ids = append(ids, m.ID)
	}
	list, err := s.krsRepo.ListPendingByMahasiswaIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, list)
}

// ListAll returns every enrollment, optionally filtered by status and
// term. Administrative view.
func (s *KRSService) ListAll(ctx context.Context, status, tahunAkademikID string) ([]*models.KRS, error) {
	list, err := s.krsRepo.ListAll(ctx, status, tahunAkademikID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, list)
}

// Review applies a decision to a submitted enrollment. Admins may
// decide any enrollment; a dosen only those of their own advisees.
func (s *KRSService) Review(ctx context.Context, reviewer *models.User, krsID string, req *dto.KRSReviewRequest) (*models.KRS, error) {
	krs, err := s.krsRepo.GetByID(ctx, krsID)
	if err != nil {
		return nil, err
	}
	if krs.Status != models.KRSDiajukan {
		return nil, apperrors.ErrKRSAlreadyApproved
	}

	if reviewer.Role != models.RoleAdmin {
		dosen, err := s.dosenRepo.GetByUserID(ctx, reviewer.ID)
		if err != nil {
			return nil, err
		}
		m, err := s.mahasiswaRepo.GetByID(ctx, krs.MahasiswaID)
		if err != nil {
			return nil, err
		}
		if m.DosenPAID == nil || *m.DosenPAID != dosen.ID {
			return nil, apperrors.ErrNotDosenPA
		}
	}

	status := models.KRSDitolak
	if req.Action == "approve" {
		status = models.KRSDisetujui
	}
	if err := s.krsRepo.UpdateStatus(ctx, krsID, status, req.CatatanPA); err != nil {
		return nil, err
	}

	updated, err := s.krsRepo.GetByID(ctx, krsID)
	if err != nil {
		return nil, err
	}
	decorated, err := s.decorate(ctx, []*models.KRS{updated})
	if err != nil {
		return nil, err
	}
	return decorated[0], nil
}

// Roster returns the enrollments of one section with student names.
func (s *KRSService) Roster(ctx context.Context, kelasID string) ([]*models.KRS, error) {
	list, err := s.krsRepo.ListByKelas(ctx, kelasID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, list)
}

// decorate fills student and section fields with batch fetches.
func (s *KRSService) decorate(ctx context.Context, list []*models.KRS) ([]*models.KRS, error) {
	if len(list) == 0 {
		return []*models.KRS{}, nil
	}

	mahasiswaIDs := make([]string, 0, len(list))
	kelasIDs := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, k := range list {
		if !seen[k.MahasiswaID] {
			seen[k.MahasiswaID] = true
			mahasiswaIDs = append(mahasiswaIDs, k.MahasiswaID)
		}
		if !seen[k.KelasID] {
			seen[k.KelasID] = true
			kelasIDs = append(kelasIDs, k.KelasID)
		}
	}

	students, err := s.mahasiswaRepo.GetByIDs(ctx, mahasiswaIDs)
	if err != nil {
		return nil, err
	}
	sections, err := s.kelasRepo.GetByIDs(ctx, kelasIDs)
	if err != nil {
		return nil, err
	}

	mkIDs := make([]string, 0, len(sections))
	seenMK := make(map[string]bool)
	for _, kelas := range sections {
		if !seenMK[kelas.MataKuliahID] {
			seenMK[kelas.MataKuliahID] = true
			mkIDs = append(mkIDs, kelas.MataKuliahID)
		}
	}
	courses, err := s.jadwalService.mataKuliahRepo.GetByIDs(ctx, mkIDs)
	if err != nil {
		return nil, err
	}

	for _, k := range list {
		if m, ok := students[k.MahasiswaID]; ok {
			k.MahasiswaNama = m.Nama
			k.MahasiswaNIM = m.NIM
		}
		if kelas, ok := sections[k.KelasID]; ok {
			k.KodeKelas = kelas.KodeKelas
			if mk, ok := courses[kelas.MataKuliahID]; ok {
				k.MataKuliahNama = mk.Nama
				k.MataKuliahKode = mk.Kode
				k.SKS = mk.TotalSKS
			}
		}
	}
	return list, nil
}
