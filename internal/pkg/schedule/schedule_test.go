package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "08:00", want: 480},
		{in: "23:59", want: 1439},
		{in: "09:05", want: 545},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "8:00", wantErr: true},  // not zero-padded
		{in: "08:0", wantErr: true},
		{in: "0800", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
		{in: "08.00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRangesOverlap(t *testing.T) {
	mustClock := func(s string) int {
		v, err := ParseClock(s)
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		name                   string
		aStart, aEnd, bStart, bEnd string
		want                   bool
	}{
		{name: "identical", aStart: "08:00", aEnd: "10:00", bStart: "08:00", bEnd: "10:00", want: true},
		{name: "partial overlap", aStart: "08:00", aEnd: "10:30", bStart: "09:00", bEnd: "11:00", want: true},
		{name: "contained", aStart: "08:00", aEnd: "12:00", bStart: "09:00", bEnd: "10:00", want: true},
		{name: "touching boundary is not a conflict", aStart: "08:00", aEnd: "10:00", bStart: "10:00", bEnd: "12:00", want: false},
		{name: "disjoint", aStart: "08:00", aEnd: "09:00", bStart: "10:00", bEnd: "11:00", want: false},
		{name: "one minute overlap", aStart: "08:00", aEnd: "10:01", bStart: "10:00", bEnd: "12:00", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a1, a2 := mustClock(tt.aStart), mustClock(tt.aEnd)
			b1, b2 := mustClock(tt.bStart), mustClock(tt.bEnd)
			assert.Equal(t, tt.want, RangesOverlap(a1, a2, b1, b2))
			// overlap is symmetric
			assert.Equal(t, tt.want, RangesOverlap(b1, b2, a1, a2))
		})
	}
}

func TestCandidateValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Candidate
		wantErr error
	}{
		{name: "ok", c: Candidate{Hari: "Senin", JamMulai: "08:00", JamSelesai: "10:00"}},
		{name: "unknown day", c: Candidate{Hari: "Monday", JamMulai: "08:00", JamSelesai: "10:00"}, wantErr: ErrInvalidHari},
		{name: "bad start", c: Candidate{Hari: "Senin", JamMulai: "8am", JamSelesai: "10:00"}, wantErr: ErrInvalidClock},
		{name: "bad end", c: Candidate{Hari: "Senin", JamMulai: "08:00", JamSelesai: "25:00"}, wantErr: ErrInvalidClock},
		{name: "inverted", c: Candidate{Hari: "Senin", JamMulai: "10:00", JamSelesai: "08:00"}, wantErr: ErrInvalidRange},
		{name: "zero length", c: Candidate{Hari: "Senin", JamMulai: "08:00", JamSelesai: "08:00"}, wantErr: ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.c.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Less(t, start, end)
		})
	}
}

func TestScanSlots(t *testing.T) {
	existing := []Slot{
		{KelasID: "k1", KodeKelas: "IF-101-A", MataKuliah: "Algoritma", Hari: "Senin", JamMulai: "08:00", JamSelesai: "10:00"},
		{KelasID: "k2", KodeKelas: "IF-102-A", MataKuliah: "Basis Data", Hari: "Senin", JamMulai: "10:00", JamSelesai: "12:00"},
		{KelasID: "k3", KodeKelas: "IF-103-A", MataKuliah: "Jaringan", Hari: "Selasa", JamMulai: "08:00", JamSelesai: "10:00"},
	}

	t.Run("overlap on same day", func(t *testing.T) {
		got := ScanSlots(Candidate{Hari: "Senin", JamMulai: "09:00", JamSelesai: "11:00"}, ConflictRoom, "R1", existing)
		require.Len(t, got, 2)
		assert.Equal(t, ConflictRoom, got[0].Type)
		assert.Contains(t, got[0].Message, "IF-101-A")
		assert.Contains(t, got[1].Message, "IF-102-A")
		assert.Contains(t, got[0].Message, "R1")
	})

	t.Run("back to back is allowed", func(t *testing.T) {
		got := ScanSlots(Candidate{Hari: "Senin", JamMulai: "12:00", JamSelesai: "14:00"}, ConflictRoom, "R1", existing)
		assert.Empty(t, got)
	})

	t.Run("different day never conflicts", func(t *testing.T) {
		got := ScanSlots(Candidate{Hari: "Rabu", JamMulai: "08:00", JamSelesai: "10:00"}, ConflictLecturer, "", existing)
		assert.Empty(t, got)
	})

	t.Run("exclusion skips own kelas on update", func(t *testing.T) {
		// unchanged slot resubmitted for k1
		cand := Candidate{Hari: "Senin", JamMulai: "08:00", JamSelesai: "10:00", ExcludeKelasID: "k1"}
		got := ScanSlots(cand, ConflictRoom, "R1", existing)
		assert.Empty(t, got)

		// without the exclusion the same payload reports a self-conflict
		cand.ExcludeKelasID = ""
		got = ScanSlots(cand, ConflictRoom, "R1", existing)
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Message, "IF-101-A")
	})

	t.Run("lecturer message names the kelas", func(t *testing.T) {
		got := ScanSlots(Candidate{Hari: "Selasa", JamMulai: "09:00", JamSelesai: "10:00"}, ConflictLecturer, "", existing)
		require.Len(t, got, 1)
		assert.Equal(t, ConflictLecturer, got[0].Type)
		assert.Contains(t, got[0].Message, "Dosen sudah mengajar")
		assert.Contains(t, got[0].Message, "IF-103-A")
	})
}
