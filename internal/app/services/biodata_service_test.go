package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nurhakim/siakad/internal/app/models"
)

func strptr(s string) *string { return &s }

func TestBiodataFilled(t *testing.T) {
	assert.False(t, biodataFilled(&models.Mahasiswa{}))
	assert.False(t, biodataFilled(&models.Mahasiswa{Alamat: strptr("")}))
	assert.True(t, biodataFilled(&models.Mahasiswa{Alamat: strptr("Jl. Merdeka 1")}))
	assert.True(t, biodataFilled(&models.Mahasiswa{
		JenisKelamin: strptr("L"),
		TempatLahir:  strptr("Bandung"),
	}))
	assert.True(t, biodataFilled(&models.Mahasiswa{NoHP: strptr("081234567890")}))
}
