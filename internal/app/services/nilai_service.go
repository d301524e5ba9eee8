package services

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/repositories"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
)

// Component weights for the final score.
const (
	bobotTugas = 0.3
	bobotUTS   = 0.3
	bobotUAS   = 0.4
)

// HitungNilaiAkhir computes the weighted final score.
func HitungNilaiAkhir(tugas, uts, uas float64) float64 {
	return bobotTugas*tugas + bobotUTS*uts + bobotUAS*uas
}

// NilaiHuruf maps a final score to the letter grade and its weight.
func NilaiHuruf(nilaiAkhir float64) (string, float64) {
	switch {
	case nilaiAkhir >= 85:
		return "A", 4.0
	case nilaiAkhir >= 80:
		return "A-", 3.7
	case nilaiAkhir >= 75:
		return "B+", 3.3
	case nilaiAkhir >= 70:
		return "B", 3.0
	case nilaiAkhir >= 65:
		return "B-", 2.7
	case nilaiAkhir >= 60:
		return "C+", 2.3
	case nilaiAkhir >= 55:
		return "C", 2.0
	case nilaiAkhir >= 50:
		return "D", 1.0
	default:
		return "E", 0.0
	}
}

// roundIP keeps grade point averages at two decimals.
func roundIP(v float64) float64 {
	return math.Round(v*100) / 100
}

// NilaiService handles grading, KHS and transcripts.
type NilaiService struct {
	nilaiRepo     *repositories.NilaiRepository
	krsRepo       *repositories.KRSRepository
	kelasRepo     *repositories.KelasRepository
	mahasiswaRepo *repositories.MahasiswaRepository
	dosenRepo     *repositories.DosenRepository
	tahunRepo     *repositories.TahunAkademikRepository
	mkRepo        *repositories.MataKuliahRepository
	prodiRepo     *repositories.ProdiRepository
	logger        zerolog.Logger
}

// NewNilaiService creates a new NilaiService
func NewNilaiService(
	nilaiRepo *repositories.NilaiRepository,
	krsRepo *repositories.KRSRepository,
	kelasRepo *repositories.KelasRepository,
	mahasiswaRepo *repositories.MahasiswaRepository,
	dosenRepo *repositories.DosenRepository,
	tahunRepo *repositories.TahunAkademikRepository,
	mkRepo *repositories.MataKuliahRepository,
	prodiRepo *repositories.ProdiRepository,
	logger zerolog.Logger,
) *NilaiService {
	return &NilaiService{
		nilaiRepo:     nilaiRepo,
		krsRepo:       krsRepo,
		kelasRepo:     kelasRepo,
		mahasiswaRepo: mahasiswaRepo,
		dosenRepo:     dosenRepo,
		tahunRepo:     tahunRepo,
		mkRepo:        mkRepo,
		prodiRepo:     prodiRepo,
		logger:        logger,
	}
}

// Upsert writes grade components for one approved enrollment in the
// dosen's own section, keyed on the KRS entry.
func (s *NilaiService) Upsert(ctx context.Context, dosenUserID string, req *dto.NilaiRequest) (*models.Nilai, error) {
	dosen, err := s.dosenRepo.GetByUserID(ctx, dosenUserID)
	if err != nil {
		return nil, err
	}
	krs, err := s.krsRepo.GetByID(ctx, req.KRSID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrKRSNotFound
		}
		return nil, err
	}
	kelas, err := s.kelasRepo.GetByID(ctx, krs.KelasID)
	if err != nil {
		return nil, err
	}
	if kelas.DosenID != dosen.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	if krs.Status != models.KRSDisetujui {
		return nil, apperrors.NewBadRequestError("krs belum disetujui")
	}

	akhir := HitungNilaiAkhir(req.Tugas, req.UTS, req.UAS)
	huruf, bobot := NilaiHuruf(akhir)

	n := &models.Nilai{
		ID:          uuid.NewString(),
		KRSID:       krs.ID,
		MahasiswaID: krs.MahasiswaID,
		KelasID:     krs.KelasID,
		Tugas:       req.Tugas,
		UTS:         req.UTS,
		UAS:         req.UAS,
		NilaiAkhir:  akhir,
		NilaiHuruf:  huruf,
		Bobot:       bobot,
	}
	if err := s.nilaiRepo.Upsert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListByKelas returns the grades of one section for its dosen.
func (s *NilaiService) ListByKelas(ctx context.Context, dosenUserID, kelasID string) ([]*models.Nilai, error) {
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
	list, err := s.nilaiRepo.ListByKelas(ctx, kelasID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*models.Nilai{}
	}
	return list, nil
}

// khsForTerm assembles one semester report from approved enrollments.
func (s *NilaiService) khsForTerm(ctx context.Context, mahasiswaID, tahunAkademikID string) (*dto.KHSResponse, error) {
	enrollments, err := s.krsRepo.ListByMahasiswa(ctx, mahasiswaID, tahunAkademikID)
	if err != nil {
		return nil, err
	}

	krsIDs := make([]string, 0, len(enrollments))
	kelasIDs := make([]string, 0, len(enrollments))
	for _, k := range enrollments {
		if k.Status != models.KRSDisetujui {
			continue
		}
		krsIDs = append(krsIDs, k.ID)
		kelasIDs = append(kelasIDs, k.KelasID)
	}

	grades, err := s.nilaiRepo.GetByKRSIDs(ctx, krsIDs)
	if err != nil {
		return nil, err
	}
	sections, err := s.kelasRepo.GetByIDs(ctx, kelasIDs)
	if err != nil {
		return nil, err
	}
	mkIDs := make([]string, 0, len(sections))
	seen := make(map[string]bool)
	for _, kelas := range sections {
		if !seen[kelas.MataKuliahID] {
			seen[kelas.MataKuliahID] = true
			mkIDs = append(mkIDs, kelas.MataKuliahID)
		}
	}
	courses, err := s.mkRepo.GetByIDs(ctx, mkIDs)
	if err != nil {
		return nil, err
	}

	resp := &dto.KHSResponse{
		TahunAkademikID: tahunAkademikID,
		Entries:         []dto.KHSEntry{},
	}
	var totalBobotSKS float64
	for _, k := range enrollments {
		if k.Status != models.KRSDisetujui {
			continue
		}
		n, graded := grades[k.ID]
		if !graded {
			continue
		}
		kelas, ok := sections[k.KelasID]
		if !ok {
			continue
		}
		mk, ok := courses[kelas.MataKuliahID]
		if !ok {
			continue
		}
		resp.Entries = append(resp.Entries, dto.KHSEntry{
			MataKuliahKode: mk.Kode,
			MataKuliahNama: mk.Nama,
			SKS:            mk.TotalSKS,
			NilaiAkhir:     n.NilaiAkhir,
			NilaiHuruf:     n.NilaiHuruf,
			Bobot:          n.Bobot,
		})
		resp.TotalSKS += mk.TotalSKS
		totalBobotSKS += n.Bobot * float64(mk.TotalSKS)
	}
	if resp.TotalSKS > 0 {
		resp.IPS = roundIP(totalBobotSKS / float64(resp.TotalSKS))
	}
	return resp, nil
}

// KHS returns the semester grade report for the calling student.
func (s *NilaiService) KHS(ctx context.Context, userID, tahunAkademikID string) (*dto.KHSResponse, error) {
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
	resp, err := s.khsForTerm(ctx, m.ID, tahunAkademikID)
	if err != nil {
		return nil, err
	}
	names, err := s.tahunRepo.NamesByIDs(ctx, []string{tahunAkademikID})
	if err != nil {
		return nil, err
	}
	resp.TahunAkademikNama = names[tahunAkademikID]
	return resp, nil
}

// Transkrip returns the cumulative transcript across every term the
// student has grades in.
func (s *NilaiService) Transkrip(ctx context.Context, userID string) (*dto.TranskripResponse, error) {
	m, err := s.mahasiswaRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.krsRepo.ListByMahasiswa(ctx, m.ID, "")
	if err != nil {
		return nil, err
	}
	termIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, k := range enrollments {
		if !seen[k.TahunAkademikID] {
			seen[k.TahunAkademikID] = true
			termIDs = append(termIDs, k.TahunAkademikID)
		}
	}
	termNames, err := s.tahunRepo.NamesByIDs(ctx, termIDs)
	if err != nil {
		return nil, err
	}
	prodiNames, err := s.prodiRepo.NamesByIDs(ctx, []string{m.ProdiID})
	if err != nil {
		return nil, err
	}

	resp := &dto.TranskripResponse{
		MahasiswaNama: m.Nama,
		MahasiswaNIM:  m.NIM,
		ProdiNama:     prodiNames[m.ProdiID],
		Semesters:     []dto.KHSResponse{},
	}
	var totalBobotSKS float64
	for _, termID := range termIDs {
		khs, err := s.khsForTerm(ctx, m.ID, termID)
		if err != nil {
			return nil, err
		}
		if len(khs.Entries) == 0 {
			continue
		}
		khs.TahunAkademikNama = termNames[termID]
		resp.Semesters = append(resp.Semesters, *khs)
		resp.TotalSKS += khs.TotalSKS
		for _, e := range khs.Entries {
			totalBobotSKS += e.Bobot * float64(e.SKS)
		}
	}
	if resp.TotalSKS > 0 {
		resp.IPK = roundIP(totalBobotSKS / float64(resp.TotalSKS))
	}
	return resp, nil
}
