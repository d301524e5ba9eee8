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
)

// MasterService handles the master data entities: faculties, study
// programs, curricula, courses and academic terms.
type MasterService struct {
	fakultasRepo   *repositories.FakultasRepository
	prodiRepo      *repositories.ProdiRepository
	kurikulumRepo  *repositories.KurikulumRepository
	mataKuliahRepo *repositories.MataKuliahRepository
	tahunRepo      *repositories.TahunAkademikRepository
	logger         zerolog.Logger
}

// NewMasterService creates a new MasterService
func NewMasterService(
	fakultasRepo *repositories.FakultasRepository,
	prodiRepo *repositories.ProdiRepository,
	kurikulumRepo *repositories.KurikulumRepository,
	mataKuliahRepo *repositories.MataKuliahRepository,
	tahunRepo *repositories.TahunAkademikRepository,
	logger zerolog.Logger,
) *MasterService {
	return &MasterService{
		fakultasRepo:   fakultasRepo,
		prodiRepo:      prodiRepo,
		kurikulumRepo:  kurikulumRepo,
		mataKuliahRepo: mataKuliahRepo,
		tahunRepo:      tahunRepo,
		logger:         logger,
	}
}

// scopeFilter converts an access scope into the repository prodi
// filter: nil means unrestricted, an empty slice means nothing visible.
func scopeFilter(scope appauth.AccessScope) []string {
	if scope.Unrestricted {
		return nil
	}
	if scope.ProdiIDs == nil {
		return []string{}
	}
	return scope.ProdiIDs
}

// CreateFakultas creates a faculty.
func (s *MasterService) CreateFakultas(ctx context.Context, req *dto.FakultasRequest) (*models.Fakultas, error) {
	f := &models.Fakultas{ID: uuid.NewString(), Kode: req.Kode, Nama: req.Nama}
	if err := s.fakultasRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return s.fakultasRepo.GetByID(ctx, f.ID)
}

// ListFakultas returns all faculties.
func (s *MasterService) ListFakultas(ctx context.Context) ([]*models.Fakultas, error) {
	out, err := s.fakultasRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.Fakultas{}
	}
	return out, nil
}

// GetFakultas retrieves one faculty.
func (s *MasterService) GetFakultas(ctx context.Context, id string) (*models.Fakultas, error) {
	return s.fakultasRepo.GetByID(ctx, id)
}

// UpdateFakultas modifies a faculty.
func (s *MasterService) UpdateFakultas(ctx context.Context, id string, req *dto.FakultasRequest) (*models.Fakultas, error) {
	f := &models.Fakultas{ID: id, Kode: req.Kode, Nama: req.Nama}
	if err := s.fakultasRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return s.fakultasRepo.GetByID(ctx, id)
}

// DeleteFakultas removes a faculty.
func (s *MasterService) DeleteFakultas(ctx context.Context, id string) error {
	return s.fakultasRepo.Delete(ctx, id)
}

// CreateProdi creates a study program after checking the faculty exists.
func (s *MasterService) CreateProdi(ctx context.Context, req *dto.ProdiRequest) (*models.Prodi, error) {
	if _, err := s.fakultasRepo.GetByID(ctx, req.FakultasID); err != nil {
		return nil, err
	}
	p := &models.Prodi{
		ID:         uuid.NewString(),
		Kode:       req.Kode,
		Nama:       req.Nama,
		Jenjang:    req.Jenjang,
		FakultasID: req.FakultasID,
	}
	if err := s.prodiRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.GetProdi(ctx, p.ID)
}

// ListProdi returns study programs visible to the caller, decorated
// with faculty names in one batch fetch. A fakultas filter intersects
// with the scoped result set.
func (s *MasterService) ListProdi(ctx context.Context, scope appauth.AccessScope, fakultasID string) ([]*models.Prodi, error) {
	list, err := s.prodiRepo.List(ctx, scopeFilter(scope))
	if err != nil {
		return nil, err
	}
	if fakultasID != "" {
		filtered := make([]*models.Prodi, 0, len(list))
		for _, p := range list {
			if p.FakultasID == fakultasID {
				filtered = append(filtered, p)
			}
		}
		list = filtered
	}
	if len(list) == 0 {
		return []*models.Prodi{}, nil
	}

	fakultasIDs := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, p := range list {
		if !seen[p.FakultasID] {
			seen[p.FakultasID] = true
			fakultasIDs = append(fakultasIDs, p.FakultasID)
		}
	}
	names, err := s.fakultasRepo.NamesByIDs(ctx, fakultasIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.FakultasNama = names[p.FakultasID]
	}
	return list, nil
}

// GetProdi retrieves one study program with its faculty name.
func (s *MasterService) GetProdi(ctx context.Context, id string) (*models.Prodi, error) {
	p, err := s.prodiRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	names, err := s.fakultasRepo.NamesByIDs(ctx, []string{p.FakultasID})
	if err != nil {
		return nil, err
	}
	p.FakultasNama = names[p.FakultasID]
	return p, nil
}

// UpdateProdi modifies a study program.
func (s *MasterService) UpdateProdi(ctx context.Context, id string, req *dto.ProdiRequest) (*models.Prodi, error) {
	if _, err := s.fakultasRepo.GetByID(ctx, req.FakultasID); err != nil {
		return nil, err
	}
	p := &models.Prodi{
		ID:         id,
		Kode:       req.Kode,
		Nama:       req.Nama,
		Jenjang:    req.Jenjang,
		FakultasID: req.FakultasID,
	}
	if err := s.prodiRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.GetProdi(ctx, id)
}

// DeleteProdi removes a study program.
func (s *MasterService) DeleteProdi(ctx context.Context, id string) error {
	return s.prodiRepo.Delete(ctx, id)
}

// CreateKurikulum creates a curriculum under a prodi.
func (s *MasterService) CreateKurikulum(ctx context.Context, req *dto.KurikulumRequest) (*models.Kurikulum, error) {
	if _, err := s.prodiRepo.GetByID(ctx, req.ProdiID); err != nil {
		return nil, err
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	k := &models.Kurikulum{
		ID:       uuid.NewString(),
		Kode:     req.Kode,
		Nama:     req.Nama,
		Tahun:    req.Tahun,
		ProdiID:  req.ProdiID,
		IsActive: isActive,
	}
	if err := s.kurikulumRepo.Create(ctx, k); err != nil {
		return nil, err
	}
	return s.kurikulumRepo.GetByID(ctx, k.ID)
}

// ListKurikulum returns curricula within the caller's scope, decorated
// with prodi names.
func (s *MasterService) ListKurikulum(ctx context.Context, scope appauth.AccessScope) ([]*models.Kurikulum, error) {
	list, err := s.kurikulumRepo.List(ctx, scopeFilter(scope))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.Kurikulum{}, nil
	}

	prodiIDs := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, k := range list {
		if !seen[k.ProdiID] {
			seen[k.ProdiID] = true
			prodiIDs = append(prodiIDs, k.ProdiID)
		}
	}
	names, err := s.prodiRepo.NamesByIDs(ctx, prodiIDs)
	if err != nil {
		return nil, err
	}
	for _, k := range list {
		k.ProdiNama = names[k.ProdiID]
	}
	return list, nil
}

// UpdateKurikulum modifies a curriculum.
func (s *MasterService) UpdateKurikulum(ctx context.Context, id string, req *dto.KurikulumRequest) (*models.Kurikulum, error) {
	existing, err := s.kurikulumRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Kode = req.Kode
	existing.Nama = req.Nama
	existing.Tahun = req.Tahun
	existing.ProdiID = req.ProdiID
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.kurikulumRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.kurikulumRepo.GetByID(ctx, id)
}

// DeleteKurikulum removes a curriculum.
func (s *MasterService) DeleteKurikulum(ctx context.Context, id string) error {
	return s.kurikulumRepo.Delete(ctx, id)
}

// CreateMataKuliah creates a course, inheriting the prodi from its
// curriculum.
func (s *MasterService) CreateMataKuliah(ctx context.Context, req *dto.MataKuliahRequest) (*models.MataKuliah, error) {
	kurikulum, err := s.kurikulumRepo.GetByID(ctx, req.KurikulumID)
	if err != nil {
		return nil, err
	}
	prasyarat, err := s.resolvePrasyarat(ctx, req)
	if err != nil {
		return nil, err
	}
	mk := &models.MataKuliah{
		ID:          uuid.NewString(),
		Kode:        req.Kode,
		Nama:        req.Nama,
		SKSTeori:    req.SKSTeori,
		SKSPraktik:  req.SKSPraktik,
		Semester:    req.Semester,
		KurikulumID: kurikulum.ID,
		ProdiID:     kurikulum.ProdiID,
		Prasyarat:   prasyarat,
	}
	if err := s.mataKuliahRepo.Create(ctx, mk); err != nil {
		return nil, err
	}
	return s.mataKuliahRepo.GetByID(ctx, mk.ID)
}

// resolvePrasyarat validates the prerequisite list: every id must name
// an existing course and the combined credit load must be positive.
func (s *MasterService) resolvePrasyarat(ctx context.Context, req *dto.MataKuliahRequest) ([]string, error) {
	if req.SKSTeori+req.SKSPraktik < 1 {
		return nil, apperrors.NewValidationError("total sks harus lebih dari 0")
	}
	if len(req.Prasyarat) == 0 {
		return []string{}, nil
	}
	known, err := s.mataKuliahRepo.GetByIDs(ctx, req.Prasyarat)
	if err != nil {
		return nil, err
	}
	for _, id := range req.Prasyarat {
		if _, ok := known[id]; !ok {
			return nil, apperrors.ErrMataKuliahNotFound
		}
	}
	return req.Prasyarat, nil
}

// ListMataKuliah returns courses within scope, optionally filtered by
// curriculum, decorated with prodi names.
func (s *MasterService) ListMataKuliah(ctx context.Context, scope appauth.AccessScope, kurikulumID string) ([]*models.MataKuliah, error) {
	list, err := s.mataKuliahRepo.List(ctx, kurikulumID, scopeFilter(scope))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.MataKuliah{}, nil
	}

	prodiIDs := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, mk := range list {
		if !seen[mk.ProdiID] {
			seen[mk.ProdiID] = true
			prodiIDs = append(prodiIDs, mk.ProdiID)
		}
	}
	names, err := s.prodiRepo.NamesByIDs(ctx, prodiIDs)
	if err != nil {
		return nil, err
	}
	for _, mk := range list {
		mk.ProdiNama = names[mk.ProdiID]
	}
	return list, nil
}

// UpdateMataKuliah modifies a course.
func (s *MasterService) UpdateMataKuliah(ctx context.Context, id string, req *dto.MataKuliahRequest) (*models.MataKuliah, error) {
	kurikulum, err := s.kurikulumRepo.GetByID(ctx, req.KurikulumID)
	if err != nil {
		return nil, err
	}
	prasyarat, err := s.resolvePrasyarat(ctx, req)
	if err != nil {
		return nil, err
	}
	mk := &models.MataKuliah{
		ID:          id,
		Kode:        req.Kode,
		Nama:        req.Nama,
		SKSTeori:    req.SKSTeori,
		SKSPraktik:  req.SKSPraktik,
		Semester:    req.Semester,
		KurikulumID: kurikulum.ID,
		ProdiID:     kurikulum.ProdiID,
		Prasyarat:   prasyarat,
	}
	if err := s.mataKuliahRepo.Update(ctx, mk); err != nil {
		return nil, err
	}
	return s.mataKuliahRepo.GetByID(ctx, id)
}

// DeleteMataKuliah removes a course.
func (s *MasterService) DeleteMataKuliah(ctx context.Context, id string) error {
	return s.mataKuliahRepo.Delete(ctx, id)
}

// CreateTahunAkademik creates an academic term.
func (s *MasterService) CreateTahunAkademik(ctx context.Context, req *dto.TahunAkademikRequest) (*models.TahunAkademik, error) {
	isActive := false
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	ta := &models.TahunAkademik{
		ID:       uuid.NewString(),
		Kode:     req.Kode,
		Nama:     req.Nama,
		Semester: req.Semester,
		IsActive: isActive,
	}
	if err := s.tahunRepo.Create(ctx, ta); err != nil {
		return nil, err
	}
	return s.tahunRepo.GetByID(ctx, ta.ID)
}

// ListTahunAkademik returns all terms.
func (s *MasterService) ListTahunAkademik(ctx context.Context) ([]*models.TahunAkademik, error) {
	out, err := s.tahunRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.TahunAkademik{}
	}
	return out, nil
}

// GetActiveTahunAkademik returns the single active term.
func (s *MasterService) GetActiveTahunAkademik(ctx context.Context) (*models.TahunAkademik, error) {
	return s.tahunRepo.GetActive(ctx)
}

// ActivateTahunAkademik flips the active term atomically.
func (s *MasterService) ActivateTahunAkademik(ctx context.Context, id string) (*models.TahunAkademik, error) {
	if err := s.tahunRepo.SetActive(ctx, id); err != nil {
		return nil, err
	}
	return s.tahunRepo.GetByID(ctx, id)
}

// UpdateTahunAkademik modifies a term's descriptive fields. Activation
// goes through ActivateTahunAkademik so the single-active invariant
// holds.
func (s *MasterService) UpdateTahunAkademik(ctx context.Context, id string, req *dto.TahunAkademikRequest) (*models.TahunAkademik, error) {
	ta := &models.TahunAkademik{ID: id, Kode: req.Kode, Nama: req.Nama, Semester: req.Semester}
	if err := s.tahunRepo.Update(ctx, ta); err != nil {
		return nil, err
	}
	if req.IsActive != nil && *req.IsActive {
		if err := s.tahunRepo.SetActive(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.tahunRepo.GetByID(ctx, id)
}

// DeleteTahunAkademik removes a term unless it is the active one.
func (s *MasterService) DeleteTahunAkademik(ctx context.Context, id string) error {
	ta, err := s.tahunRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ta.IsActive {
		return apperrors.NewBadRequestError("tahun akademik aktif tidak dapat dihapus")
	}
	return s.tahunRepo.Delete(ctx, id)
}
