package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/repositories"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
)

// KeuanganService handles tuition categories, billing and payments.
type KeuanganService struct {
	keuanganRepo  *repositories.KeuanganRepository
	mahasiswaRepo *repositories.MahasiswaRepository
	prodiRepo     *repositories.ProdiRepository
	tahunRepo     *repositories.TahunAkademikRepository
	logger        zerolog.Logger
}

// NewKeuanganService creates a new KeuanganService
func NewKeuanganService(
	keuanganRepo *repositories.KeuanganRepository,
	mahasiswaRepo *repositories.MahasiswaRepository,
	prodiRepo *repositories.ProdiRepository,
	tahunRepo *repositories.TahunAkademikRepository,
	logger zerolog.Logger,
) *KeuanganService {
	return &KeuanganService{
		keuanganRepo:  keuanganRepo,
		mahasiswaRepo: mahasiswaRepo,
		prodiRepo:     prodiRepo,
		tahunRepo:     tahunRepo,
		logger:        logger,
	}
}

// CreateKategori creates a tuition fee category.
func (s *KeuanganService) CreateKategori(ctx context.Context, req *dto.KategoriUKTRequest) (*models.KategoriUKT, error) {
	k := &models.KategoriUKT{
		ID:        uuid.NewString(),
		Nama:      req.Nama,
		Nominal:   req.Nominal,
		Deskripsi: req.Deskripsi,
	}
	if err := s.keuanganRepo.CreateKategori(ctx, k); err != nil {
		return nil, err
	}
	return s.keuanganRepo.GetKategori(ctx, k.ID)
}

// ListKategori returns all tuition fee categories.
func (s *KeuanganService) ListKategori(ctx context.Context) ([]*models.KategoriUKT, error) {
	out, err := s.keuanganRepo.ListKategori(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.KategoriUKT{}
	}
	return out, nil
}

// UpdateKategori modifies a tuition fee category.
func (s *KeuanganService) UpdateKategori(ctx context.Context, id string, req *dto.KategoriUKTRequest) (*models.KategoriUKT, error) {
	k := &models.KategoriUKT{
		ID:        id,
		Nama:      req.Nama,
		Nominal:   req.Nominal,
		Deskripsi: req.Deskripsi,
	}
	if err := s.keuanganRepo.UpdateKategori(ctx, k); err != nil {
		return nil, err
	}
	return s.keuanganRepo.GetKategori(ctx, id)
}

// DeleteKategori removes a tuition category. Categories referenced by
// a bill cannot be deleted.
func (s *KeuanganService) DeleteKategori(ctx context.Context, id string) error {
	return s.keuanganRepo.DeleteKategori(ctx, id)
}

// CreateTagihan issues a bill to one student. The amount is frozen
// from the category at issue time.
func (s *KeuanganService) CreateTagihan(ctx context.Context, req *dto.TagihanRequest) (*models.Tagihan, error) {
	if _, err := s.mahasiswaRepo.GetByID(ctx, req.MahasiswaID); err != nil {
		return nil, err
	}
	if _, err := s.tahunRepo.GetByID(ctx, req.TahunAkademikID); err != nil {
		return nil, err
	}
	kategori, err := s.keuanganRepo.GetKategori(ctx, req.KategoriUKTID)
	if err != nil {
		return nil, err
	}

	t := &models.Tagihan{
		ID:              uuid.NewString(),
		MahasiswaID:     req.MahasiswaID,
		TahunAkademikID: req.TahunAkademikID,
		KategoriUKTID:   kategori.ID,
		Nominal:         kategori.Nominal,
		Dibayar:         0,
		Status:          models.TagihanBelumBayar,
		JatuhTempo:      req.JatuhTempo,
	}
	if err := s.keuanganRepo.CreateTagihan(ctx, t); err != nil {
		return nil, err
	}
	decorated, err := s.decorateTagihan(ctx, []*models.Tagihan{t})
	if err != nil {
		return nil, err
	}
	return decorated[0], nil
}

// CreateTagihanMassal issues bills to every active student of a prodi.
// Students already billed for the term are skipped.
func (s *KeuanganService) CreateTagihanMassal(ctx context.Context, req *dto.TagihanMassalRequest) (int, error) {
	if _, err := s.prodiRepo.GetByID(ctx, req.ProdiID); err != nil {
		return 0, err
	}
	if _, err := s.tahunRepo.GetByID(ctx, req.TahunAkademikID); err != nil {
		return 0, err
	}
	kategori, err := s.keuanganRepo.GetKategori(ctx, req.KategoriUKTID)
	if err != nil {
		return 0, err
	}

	mahasiswaIDs, err := s.mahasiswaRepo.ListActiveIDsByProdi(ctx, req.ProdiID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, id := range mahasiswaIDs {
		t := &models.Tagihan{
			ID:              uuid.NewString(),
			MahasiswaID:     id,
			TahunAkademikID: req.TahunAkademikID,
			KategoriUKTID:   kategori.ID,
			Nominal:         kategori.Nominal,
			Status:          models.TagihanBelumBayar,
			JatuhTempo:      req.JatuhTempo,
		}
		err := s.keuanganRepo.CreateTagihan(ctx, t)
		if err != nil {
			if errors.Is(err, apperrors.ErrTagihanAlreadyExists) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

// ListTagihan returns bills, decorated with student, term and category
// names in batch.
func (s *KeuanganService) ListTagihan(ctx context.Context, tahunAkademikID, mahasiswaID string) ([]*models.Tagihan, error) {
	list, err := s.keuanganRepo.ListTagihan(ctx, tahunAkademikID, mahasiswaID)
	if err != nil {
		return nil, err
	}
	return s.decorateTagihan(ctx, list)
}

// MyTagihan returns the calling student's bills.
func (s *KeuanganService) MyTagihan(ctx context.Context, userID string) ([]*models.Tagihan, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ListTagihan(ctx, "", m.ID)
}

func (s *KeuanganService) decorateTagihan(ctx context.Context, list []*models.Tagihan) ([]*models.Tagihan, error) {
	if len(list) == 0 {
		return []*models.Tagihan{}, nil
	}

	mahasiswaIDs := make([]string, 0, len(list))
	tahunIDs := make([]string, 0, len(list))
	kategoriIDs := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, t := range list {
		if !seen[t.MahasiswaID] {
			seen[t.MahasiswaID] = true
			mahasiswaIDs = append(mahasiswaIDs, t.MahasiswaID)
		}
		if !seen[t.TahunAkademikID] {
			seen[t.TahunAkademikID] = true
			tahunIDs = append(tahunIDs, t.TahunAkademikID)
		}
		if !seen[t.KategoriUKTID] {
			seen[t.KategoriUKTID] = true
			kategoriIDs = append(kategoriIDs, t.KategoriUKTID)
		}
	}

	students, err := s.mahasiswaRepo.GetByIDs(ctx, mahasiswaIDs)
	if err != nil {
		return nil, err
	}
	prodiIDs := make([]string, 0)
	seenProdi := make(map[string]bool)
	for _, m := range students {
		if !seenProdi[m.ProdiID] {
			seenProdi[m.ProdiID] = true
			prodiIDs = append(prodiIDs, m.ProdiID)
		}
	}
	prodiNames, err := s.prodiRepo.NamesByIDs(ctx, prodiIDs)
	if err != nil {
		return nil, err
	}
	tahunNames, err := s.tahunRepo.NamesByIDs(ctx, tahunIDs)
	if err != nil {
		return nil, err
	}
	kategoriNames, err := s.keuanganRepo.KategoriNamesByIDs(ctx, kategoriIDs)
	if err != nil {
		return nil, err
	}

	for _, t := range list {
		if m, ok := students[t.MahasiswaID]; ok {
			t.MahasiswaNama = m.Nama
			t.MahasiswaNIM = m.NIM
			t.ProdiNama = prodiNames[m.ProdiID]
		}
		t.TahunAkademikNama = tahunNames[t.TahunAkademikID]
		t.KategoriNama = kategoriNames[t.KategoriUKTID]
	}
	return list, nil
}

// DeleteTagihan removes an unpaid bill.
func (s *KeuanganService) DeleteTagihan(ctx context.Context, id string) error {
	t, err := s.keuanganRepo.GetTagihan(ctx, id)
	if err != nil {
		return err
	}
	if t.Dibayar > 0 {
		return apperrors.ErrTagihanHasPembayaran
	}
	return s.keuanganRepo.DeleteTagihan(ctx, id)
}

// SubmitPembayaran records a student payment for verification.
func (s *KeuanganService) SubmitPembayaran(ctx context.Context, userID string, req *dto.PembayaranRequest) (*models.Pembayaran, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tagihan, err := s.keuanganRepo.GetTagihan(ctx, req.TagihanID)
	if err != nil {
		return nil, err
	}
	if tagihan.MahasiswaID != m.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	if tagihan.Status == models.TagihanLunas {
		return nil, apperrors.NewBadRequestError("tagihan sudah lunas")
	}

	p := &models.Pembayaran{
		ID:               uuid.NewString(),
		TagihanID:        tagihan.ID,
		MahasiswaID:      m.ID,
		Jumlah:           req.Jumlah,
		MetodePembayaran: req.MetodePembayaran,
		BuktiURL:         req.BuktiURL,
		Status:           models.PembayaranPending,
		TanggalBayar:     time.Now(),
	}
	if err := s.keuanganRepo.CreatePembayaran(ctx, p); err != nil {
		return nil, err
	}
	return s.keuanganRepo.GetPembayaran(ctx, p.ID)
}

// ListPembayaran returns payments, decorated with student names.
func (s *KeuanganService) ListPembayaran(ctx context.Context, status, mahasiswaID string) ([]*models.Pembayaran, error) {
	list, err := s.keuanganRepo.ListPembayaran(ctx, status, mahasiswaID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*models.Pembayaran{}, nil
	}

	ids := make([]string, 0, len(list))
	seen := make(map[string]bool)
	for _, p := range list {
		if !seen[p.MahasiswaID] {
			seen[p.MahasiswaID] = true
			ids = append(ids, p.MahasiswaID)
		}
	}
	students, err := s.mahasiswaRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if m, ok := students[p.MahasiswaID]; ok {
			p.MahasiswaNama = m.Nama
			p.MahasiswaNIM = m.NIM
		}
	}
	return list, nil
}

// MyPembayaran returns the calling student's payment history.
func (s *KeuanganService) MyPembayaran(ctx context.Context, userID string) ([]*models.Pembayaran, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ListPembayaran(ctx, "", m.ID)
}

// VerifyPembayaran applies the admin verdict on a pending payment.
func (s *KeuanganService) VerifyPembayaran(ctx context.Context, id string, req *dto.PembayaranVerifyRequest) (*models.Pembayaran, error) {
	status := models.PembayaranRejected
	if req.Action == "approve" {
		status = models.PembayaranVerified
	}
	if err := s.keuanganRepo.VerifyPembayaran(ctx, id, status, req.Catatan); err != nil {
		return nil, err
	}
	return s.keuanganRepo.GetPembayaran(ctx, id)
}

// Rekap summarizes billing for a term.
func (s *KeuanganService) Rekap(ctx context.Context, tahunAkademikID string) (*dto.RekapKeuanganResponse, error) {
	if tahunAkademikID == "" {
		active, err := s.tahunRepo.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		tahunAkademikID = active.ID
	}
	totals, counts, err := s.keuanganRepo.RekapTagihan(ctx, tahunAkademikID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return &dto.RekapKeuanganResponse{
		TahunAkademikID: tahunAkademikID,
		TotalTagihan:    totals.Nominal,
		TotalDibayar:    totals.Dibayar,
		JumlahTagihan:   total,
		JumlahLunas:     counts[models.TagihanLunas],
		JumlahSebagian:  counts[models.TagihanSebagian],
		JumlahBelum:     counts[models.TagihanBelumBayar],
	}, nil
}
