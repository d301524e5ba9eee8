package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nurhakim/siakad/internal/app/models"
)

func TestTahunAkademikLabel(t *testing.T) {
	assert.Equal(t, "2024/2025 - Ganjil", TahunAkademikLabel(&models.TahunAkademik{
		Nama:     "2024/2025",
		Semester: "ganjil",
	}))
	assert.Equal(t, "2025/2026 - Genap", TahunAkademikLabel(&models.TahunAkademik{
		Nama:     "2025/2026",
		Semester: "genap",
	}))
}
