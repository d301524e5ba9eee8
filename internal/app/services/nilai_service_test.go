package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitungNilaiAkhir(t *testing.T) {
	tests := []struct {
		name             string
		tugas, uts, uas  float64
		want             float64
	}{
		{"all hundred", 100, 100, 100, 100},
		{"all zero", 0, 0, 0, 0},
		{"weights applied", 80, 70, 90, 0.3*80 + 0.3*70 + 0.4*90},
		{"uas weighs most", 0, 0, 100, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HitungNilaiAkhir(tt.tugas, tt.uts, tt.uas), 1e-9)
		})
	}
}

func TestNilaiHuruf(t *testing.T) {
	tests := []struct {
		nilai     float64
		wantHuruf string
		wantBobot float64
	}{
		{100, "A", 4.0},
		{85, "A", 4.0},
		{84.99, "A-", 3.7},
		{80, "A-", 3.7},
		{79.5, "B+", 3.3},
		{75, "B+", 3.3},
		{70, "B", 3.0},
		{65, "B-", 2.7},
		{60, "C+", 2.3},
		{55, "C", 2.0},
		{50, "D", 1.0},
		{49.99, "E", 0.0},
		{0, "E", 0.0},
	}
	for _, tt := range tests {
		huruf, bobot := NilaiHuruf(tt.nilai)
		assert.Equal(t, tt.wantHuruf, huruf, "nilai %.2f", tt.nilai)
		assert.Equal(t, tt.wantBobot, bobot, "nilai %.2f", tt.nilai)
	}
}

func TestRoundIP(t *testing.T) {
	assert.Equal(t, 3.67, roundIP(11.0/3.0))
	assert.Equal(t, 4.0, roundIP(4.0))
	assert.Equal(t, 3.33, roundIP(3.3333333))
}
