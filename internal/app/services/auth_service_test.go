package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/pkg/apperrors"
	"github.com/nurhakim/siakad/internal/pkg/auth"
)

func TestScopeRefs(t *testing.T) {
	svc := &AuthService{}
	ctx := context.Background()

	names := func(_ context.Context, ids []string) (map[string]string, error) {
		return map[string]string{"p1": "Teknik Informatika", "p2": "Sistem Informasi"}, nil
	}

	t.Run("pairs ids with names in order", func(t *testing.T) {
		refs, err := svc.scopeRefs(ctx, []string{"p2", "p1"}, names)
		require.NoError(t, err)
		assert.Equal(t, []dto.ScopeRef{
			{ID: "p2", Nama: "Sistem Informasi"},
			{ID: "p1", Nama: "Teknik Informatika"},
		}, refs)
	})

	t.Run("empty ids yields empty slice", func(t *testing.T) {
		refs, err := svc.scopeRefs(ctx, nil, names)
		require.NoError(t, err)
		assert.NotNil(t, refs)
		assert.Empty(t, refs)
	})

	t.Run("lookup error propagates", func(t *testing.T) {
		_, err := svc.scopeRefs(ctx, []string{"p1"}, func(context.Context, []string) (map[string]string, error) {
			return nil, assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestResetPasswordHash(t *testing.T) {
	t.Run("admin override wins over stored hash", func(t *testing.T) {
		stored, err := auth.HashPassword("lama123")
		require.NoError(t, err)

		hashed, err := resetPasswordHash(strptr("baru456"), &stored)
		require.NoError(t, err)
		assert.True(t, auth.CheckPassword(hashed, "baru456"))
		assert.False(t, auth.CheckPassword(hashed, "lama123"))
	})

	t.Run("stored hash passes through unchanged", func(t *testing.T) {
		stored, err := auth.HashPassword("rahasia789")
		require.NoError(t, err)

		hashed, err := resetPasswordHash(nil, &stored)
		require.NoError(t, err)
		assert.Equal(t, stored, hashed)
	})

	t.Run("neither is a bad request", func(t *testing.T) {
		_, err := resetPasswordHash(nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)

		_, err = resetPasswordHash(strptr(""), strptr(""))
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestCheckPasswordReportsMismatch(t *testing.T) {
	hashed, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hashed, "s3cret"))
	assert.False(t, auth.CheckPassword(hashed, "salah"))
	assert.False(t, auth.CheckPassword("not-a-hash", "s3cret"))
}
