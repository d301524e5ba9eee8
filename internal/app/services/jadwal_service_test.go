package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/app/repositories"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
	"github.com/nurhakim/siakad/internal/pkg/schedule"
)

type fakeSlotSource struct {
	byRuangan map[string][]*models.Kelas
	byDosen   map[string][]*models.Kelas
}

func (f *fakeSlotSource) ListByRuangan(_ context.Context, _, ruangan string) ([]*models.Kelas, error) {
	return f.byRuangan[ruangan], nil
}

func (f *fakeSlotSource) ListByDosen(_ context.Context, _, dosenID string) ([]*models.Kelas, error) {
	return f.byDosen[dosenID], nil
}

type fakeCourseNamer struct {
	names map[string]string
}

func (f *fakeCourseNamer) GetByIDs(_ context.Context, ids []string) (map[string]*models.MataKuliah, error) {
	out := make(map[string]*models.MataKuliah)
	for _, id := range ids {
		if nama, ok := f.names[id]; ok {
			out[id] = &models.MataKuliah{ID: id, Nama: nama}
		}
	}
	return out, nil
}

func kelasSlot(id, kode, mkID, hari, mulai, selesai string) *models.Kelas {
	return &models.Kelas{
		ID:           id,
		KodeKelas:    kode,
		MataKuliahID: mkID,
		Hari:         hari,
		JamMulai:     mulai,
		JamSelesai:   selesai,
	}
}

func newChecker(slots *fakeSlotSource) *ConflictChecker {
	return NewConflictChecker(slots, &fakeCourseNamer{names: map[string]string{
		"mk-algo": "Algoritma",
		"mk-db":   "Basis Data",
	}})
}

func TestCheckNoConflict(t *testing.T) {
	checker := newChecker(&fakeSlotSource{
		byRuangan: map[string][]*models.Kelas{
			"R101": {kelasSlot("k1", "IF-A", "mk-algo", "Senin", "08:00", "10:00")},
		},
	})

	resp, err := checker.Check(context.Background(), &dto.CheckConflictRequest{
		DosenID:         "d1",
		TahunAkademikID: "ta1",
		Hari:            "Senin",
		JamMulai:        "10:00",
		JamSelesai:      "12:00",
		Ruangan:         strptr("R101"),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
	assert.Empty(t, resp.Conflicts)
}

func TestCheckRoomConflictFirst(t *testing.T) {
	checker := newChecker(&fakeSlotSource{
		byRuangan: map[string][]*models.Kelas{
			"R101": {kelasSlot("k1", "IF-A", "mk-algo", "Senin", "08:00", "10:00")},
		},
		byDosen: map[string][]*models.Kelas{
			"d1": {kelasSlot("k2", "IF-B", "mk-db", "Senin", "09:00", "11:00")},
		},
	})

	resp, err := checker.Check(context.Background(), &dto.CheckConflictRequest{
		DosenID:         "d1",
		TahunAkademikID: "ta1",
		Hari:            "Senin",
		JamMulai:        "09:00",
		JamSelesai:      "10:30",
		Ruangan:         strptr("R101"),
	})
	require.NoError(t, err)
	assert.True(t, resp.HasConflict)
	require.Len(t, resp.Conflicts, 2)
	assert.Equal(t, schedule.ConflictRoom, resp.Conflicts[0].Type)
	assert.Equal(t, schedule.ConflictLecturer, resp.Conflicts[1].Type)
	assert.Contains(t, resp.Conflicts[0].Message, "R101")
	assert.Contains(t, resp.Conflicts[0].Message, "IF-A")
	assert.Contains(t, resp.Conflicts[0].Message, "Algoritma")
	assert.Contains(t, resp.Conflicts[1].Message, "IF-B")
}

func TestCheckExcludesOwnKelasOnUpdate(t *testing.T) {
	checker := newChecker(&fakeSlotSource{
		byRuangan: map[string][]*models.Kelas{
			"R101": {kelasSlot("k1", "IF-A", "mk-algo", "Senin", "08:00", "10:00")},
		},
		byDosen: map[string][]*models.Kelas{
			"d1": {kelasSlot("k1", "IF-A", "mk-algo", "Senin", "08:00", "10:00")},
		},
	})

	self := "k1"
	resp, err := checker.Check(context.Background(), &dto.CheckConflictRequest{
		KelasID:         &self,
		DosenID:         "d1",
		TahunAkademikID: "ta1",
		Hari:            "Senin",
		JamMulai:        "08:00",
		JamSelesai:      "09:00",
		Ruangan:         strptr("R101"),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
}

func TestCheckBackToBackAllowed(t *testing.T) {
	checker := newChecker(&fakeSlotSource{
		byRuangan: map[string][]*models.Kelas{
			"R101": {kelasSlot("k1", "IF-A", "mk-algo", "Senin", "08:00", "10:00")},
		},
	})

	resp, err := checker.Check(context.Background(), &dto.CheckConflictRequest{
		DosenID:         "d2",
		TahunAkademikID: "ta1",
		Hari:            "Senin",
		JamMulai:        "10:00",
		JamSelesai:      "12:00",
		Ruangan:         strptr("R101"),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
}

func TestCheckSkipsRoomScanWithoutRoom(t *testing.T) {
	checker := newChecker(&fakeSlotSource{
		byRuangan: map[string][]*models.Kelas{
			"": {kelasSlot("k1", "IF-A", "mk-algo", "Senin", "08:00", "10:00")},
		},
	})

	for _, ruangan := range []*string{nil, strptr("")} {
		resp, err := checker.Check(context.Background(), &dto.CheckConflictRequest{
			DosenID:         "d1",
			TahunAkademikID: "ta1",
			Hari:            "Senin",
			JamMulai:        "08:00",
			JamSelesai:      "10:00",
			Ruangan:         ruangan,
		})
		require.NoError(t, err)
		assert.False(t, resp.HasConflict)
		assert.Empty(t, resp.Conflicts)
	}
}

type fakeKelasStore struct {
	fakeSlotSource
	items   map[string]*models.Kelas
	created []*models.Kelas
	updated []*models.Kelas
}

func (f *fakeKelasStore) Create(_ context.Context, k *models.Kelas) error {
	f.created = append(f.created, k)
	f.items[k.ID] = k
	return nil
}

func (f *fakeKelasStore) GetByID(_ context.Context, id string) (*models.Kelas, error) {
	k, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrKelasNotFound
	}
	return k, nil
}

func (f *fakeKelasStore) Update(_ context.Context, k *models.Kelas) error {
	f.updated = append(f.updated, k)
	f.items[k.ID] = k
	return nil
}

func (f *fakeKelasStore) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeKelasStore) List(_ context.Context, _ repositories.ListFilter) ([]*models.Kelas, error) {
	return nil, nil
}

func (f *fakeKelasStore) CountPeserta(_ context.Context, _ []string) (map[string]int, error) {
	return map[string]int{}, nil
}

type fakeCourseStore struct {
	fakeCourseNamer
	items map[string]*models.MataKuliah
}

func (f *fakeCourseStore) GetByID(_ context.Context, id string) (*models.MataKuliah, error) {
	mk, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrMataKuliahNotFound
	}
	return mk, nil
}

type fakeDosenDirectory struct{}

func (fakeDosenDirectory) GetByID(_ context.Context, id string) (*models.Dosen, error) {
	return &models.Dosen{ID: id, Nama: "Dosen"}, nil
}

func (fakeDosenDirectory) NamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = "Dosen"
	}
	return out, nil
}

type fakeTermStore struct{}

func (fakeTermStore) GetByID(_ context.Context, id string) (*models.TahunAkademik, error) {
	return &models.TahunAkademik{ID: id, Nama: "2024/2025", Semester: "ganjil"}, nil
}

func (fakeTermStore) GetActive(_ context.Context) (*models.TahunAkademik, error) {
	return &models.TahunAkademik{ID: "ta1", Nama: "2024/2025", Semester: "ganjil", IsActive: true}, nil
}

func (fakeTermStore) NamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = "2024/2025"
	}
	return out, nil
}

type fakeProdiNamer struct{}

func (fakeProdiNamer) NamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = "Informatika"
	}
	return out, nil
}

func newJadwalFixture(kelasStore *fakeKelasStore) *JadwalService {
	courses := &fakeCourseStore{
		fakeCourseNamer: fakeCourseNamer{names: map[string]string{
			"mk-algo": "Algoritma",
			"mk-db":   "Basis Data",
		}},
		items: map[string]*models.MataKuliah{
			"mk-algo": {ID: "mk-algo", Nama: "Algoritma", ProdiID: "p1"},
			"mk-db":   {ID: "mk-db", Nama: "Basis Data", ProdiID: "p1"},
		},
	}
	return NewJadwalService(kelasStore, courses, fakeDosenDirectory{}, fakeTermStore{}, fakeProdiNamer{}, zerolog.Nop())
}

func TestCreateKelasRejectsConflictWithoutWriting(t *testing.T) {
	store := &fakeKelasStore{
		fakeSlotSource: fakeSlotSource{
			byDosen: map[string][]*models.Kelas{
				"d1": {kelasSlot("k1", "IF-A", "mk-algo", "Senin", "08:00", "10:00")},
			},
		},
		items: map[string]*models.Kelas{},
	}
	svc := newJadwalFixture(store)

	_, err := svc.CreateKelas(context.Background(), appauth.AccessScope{Unrestricted: true}, &dto.KelasRequest{
		KodeKelas:       "IF-B",
		MataKuliahID:    "mk-db",
		DosenID:         "d1",
		TahunAkademikID: "ta1",
		Hari:            "Senin",
		JamMulai:        "09:00",
		JamSelesai:      "11:00",
		Kuota:           40,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrJadwalConflict)
	assert.Empty(t, store.created)
}

func TestCreateKelasWritesWhenClear(t *testing.T) {
	store := &fakeKelasStore{items: map[string]*models.Kelas{}}
	svc := newJadwalFixture(store)

	k, err := svc.CreateKelas(context.Background(), appauth.AccessScope{Unrestricted: true}, &dto.KelasRequest{
		KodeKelas:       "IF-B",
		MataKuliahID:    "mk-db",
		DosenID:         "d1",
		TahunAkademikID: "ta1",
		Hari:            "Senin",
		JamMulai:        "09:00",
		JamSelesai:      "11:00",
		Ruangan:         strptr("R101"),
		Kuota:           40,
	})
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, "p1", k.ProdiID)
	assert.Equal(t, "Basis Data", k.MataKuliahNama)
}

func TestUpdateKelasRejectsConflictWithoutWriting(t *testing.T) {
	existing := kelasSlot("k1", "IF-A", "mk-algo", "Selasa", "08:00", "10:00")
	existing.DosenID = "d1"
	existing.TahunAkademikID = "ta1"
	existing.ProdiID = "p1"
	existing.Kuota = 40
	store := &fakeKelasStore{
		fakeSlotSource: fakeSlotSource{
			byDosen: map[string][]*models.Kelas{
				"d1": {
					existing,
					kelasSlot("k2", "IF-B", "mk-db", "Senin", "08:00", "10:00"),
				},
			},
		},
		items: map[string]*models.Kelas{"k1": existing},
	}
	svc := newJadwalFixture(store)

	_, err := svc.UpdateKelas(context.Background(), appauth.AccessScope{Unrestricted: true}, "k1", &dto.KelasRequest{
		KodeKelas:       "IF-A",
		MataKuliahID:    "mk-algo",
		DosenID:         "d1",
		TahunAkademikID: "ta1",
		Hari:            "Senin",
		JamMulai:        "09:00",
		JamSelesai:      "11:00",
		Kuota:           40,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrJadwalConflict)
	assert.Empty(t, store.updated)
}

func TestCheckRejectsInvalidCandidate(t *testing.T) {
	checker := newChecker(&fakeSlotSource{})

	tests := []struct {
		name string
		req  dto.CheckConflictRequest
	}{
		{"bad day", dto.CheckConflictRequest{Hari: "Monday", JamMulai: "08:00", JamSelesai: "10:00"}},
		{"bad clock", dto.CheckConflictRequest{Hari: "Senin", JamMulai: "8:00", JamSelesai: "10:00"}},
		{"inverted range", dto.CheckConflictRequest{Hari: "Senin", JamMulai: "10:00", JamSelesai: "08:00"}},
		{"zero length", dto.CheckConflictRequest{Hari: "Senin", JamMulai: "10:00", JamSelesai: "10:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.DosenID = "d1"
			tt.req.TahunAkademikID = "ta1"
			tt.req.Ruangan = strptr("R101")
			_, err := checker.Check(context.Background(), &tt.req)
			assert.Error(t, err)
		})
	}
}
