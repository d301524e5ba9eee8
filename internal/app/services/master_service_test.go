package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
)

func TestResolvePrasyarat(t *testing.T) {
	svc := &MasterService{}
	ctx := context.Background()

	t.Run("rejects zero combined sks", func(t *testing.T) {
		_, err := svc.resolvePrasyarat(ctx, &dto.MataKuliahRequest{SKSTeori: 0, SKSPraktik: 0})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("praktik-only course passes", func(t *testing.T) {
		ids, err := svc.resolvePrasyarat(ctx, &dto.MataKuliahRequest{SKSTeori: 0, SKSPraktik: 1})
		require.NoError(t, err)
		assert.NotNil(t, ids)
		assert.Empty(t, ids)
	})
}
