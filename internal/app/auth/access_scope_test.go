package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurhakim/siakad/internal/app/models"
)

type fakeDirectory struct {
	prodiByFakultas map[string][]string
	fakultasByProdi map[string]string
	err             error
}

func (f *fakeDirectory) ProdiIDsByFakultas(_ context.Context, fakultasID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prodiByFakultas[fakultasID], nil
}

func (f *fakeDirectory) FakultasIDByProdi(_ context.Context, prodiID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.fakultasByProdi[prodiID], nil
}

func strPtr(s string) *string { return &s }

func newDirectory() *fakeDirectory {
	return &fakeDirectory{
		prodiByFakultas: map[string][]string{
			"fak-teknik": {"prodi-ti", "prodi-si"},
			"fak-ekonomi": {"prodi-akt"},
		},
		fakultasByProdi: map[string]string{
			"prodi-ti":  "fak-teknik",
			"prodi-si":  "fak-teknik",
			"prodi-akt": "fak-ekonomi",
		},
	}
}

func TestResolveUnrestrictedRoles(t *testing.T) {
	resolver := NewScopeResolver(newDirectory())

	for _, role := range []models.RoleType{models.RoleAdmin, models.RoleRektor} {
		t.Run(string(role), func(t *testing.T) {
			scope, err := resolver.Resolve(context.Background(), &models.User{Role: role})
			require.NoError(t, err)
			assert.True(t, scope.Unrestricted)
			assert.True(t, scope.AllowsProdi("prodi-apapun"))
			assert.True(t, scope.AllowsFakultas("fak-apapun"))
		})
	}
}

func TestResolveDekan(t *testing.T) {
	resolver := NewScopeResolver(newDirectory())

	scope, err := resolver.Resolve(context.Background(), &models.User{
		Role:       models.RoleDekan,
		FakultasID: strPtr("fak-teknik"),
	})
	require.NoError(t, err)
	assert.False(t, scope.Unrestricted)
	assert.ElementsMatch(t, []string{"prodi-ti", "prodi-si"}, scope.ProdiIDs)
	assert.Equal(t, []string{"fak-teknik"}, scope.FakultasIDs)
	assert.True(t, scope.AllowsProdi("prodi-ti"))
	assert.False(t, scope.AllowsProdi("prodi-akt"))
	assert.False(t, scope.AllowsFakultas("fak-ekonomi"))
}

func TestResolveKaprodi(t *testing.T) {
	resolver := NewScopeResolver(newDirectory())

	scope, err := resolver.Resolve(context.Background(), &models.User{
		Role:    models.RoleKaprodi,
		ProdiID: strPtr("prodi-si"),
	})
	require.NoError(t, err)
	assert.False(t, scope.Unrestricted)
	assert.Equal(t, []string{"prodi-si"}, scope.ProdiIDs)
	assert.Equal(t, []string{"fak-teknik"}, scope.FakultasIDs)
	assert.False(t, scope.AllowsProdi("prodi-ti"))
}

func TestResolveMissingAssignmentFailsClosed(t *testing.T) {
	resolver := NewScopeResolver(newDirectory())

	tests := []struct {
		name string
		user *models.User
	}{
		{"dekan without fakultas", &models.User{Role: models.RoleDekan}},
		{"dekan with empty fakultas", &models.User{Role: models.RoleDekan, FakultasID: strPtr("")}},
		{"kaprodi without prodi", &models.User{Role: models.RoleKaprodi}},
		{"kaprodi with empty prodi", &models.User{Role: models.RoleKaprodi, ProdiID: strPtr("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := resolver.Resolve(context.Background(), tt.user)
			require.NoError(t, err)
			assert.False(t, scope.Unrestricted)
			assert.Empty(t, scope.ProdiIDs)
			assert.Empty(t, scope.FakultasIDs)
			assert.False(t, scope.AllowsProdi("prodi-ti"))
		})
	}
}

func TestResolveNonManagementRoles(t *testing.T) {
	resolver := NewScopeResolver(newDirectory())

	for _, role := range []models.RoleType{models.RoleDosen, models.RoleMahasiswa} {
		scope, err := resolver.Resolve(context.Background(), &models.User{
			Role:    role,
			ProdiID: strPtr("prodi-ti"),
		})
		require.NoError(t, err)
		assert.False(t, scope.Unrestricted)
		assert.Empty(t, scope.ProdiIDs)
	}
}

func TestResolveDirectoryError(t *testing.T) {
	dir := newDirectory()
	dir.err = errors.New("db down")
	resolver := NewScopeResolver(dir)

	_, err := resolver.Resolve(context.Background(), &models.User{
		Role:       models.RoleDekan,
		FakultasID: strPtr("fak-teknik"),
	})
	assert.Error(t, err)
}

func TestApplyProdiFilter(t *testing.T) {
	restricted := AccessScope{
		Role:        models.RoleDekan,
		ProdiIDs:    []string{"prodi-ti", "prodi-si"},
		FakultasIDs: []string{"fak-teknik"},
	}

	t.Run("empty filter keeps scope", func(t *testing.T) {
		assert.Equal(t, restricted, restricted.ApplyProdiFilter(""))
	})

	t.Run("filter inside scope narrows to it", func(t *testing.T) {
		got := restricted.ApplyProdiFilter("prodi-si")
		assert.False(t, got.Unrestricted)
		assert.Equal(t, []string{"prodi-si"}, got.ProdiIDs)
		assert.True(t, got.AllowsProdi("prodi-si"))
		assert.False(t, got.AllowsProdi("prodi-ti"))
	})

	t.Run("filter outside scope yields zero rows", func(t *testing.T) {
		got := restricted.ApplyProdiFilter("prodi-akt")
		assert.False(t, got.Unrestricted)
		require.NotNil(t, got.ProdiIDs)
		assert.Empty(t, got.ProdiIDs)
		assert.False(t, got.AllowsProdi("prodi-akt"))
	})

	t.Run("unrestricted narrows to the filter", func(t *testing.T) {
		got := AccessScope{Role: models.RoleAdmin, Unrestricted: true}.ApplyProdiFilter("prodi-ti")
		assert.False(t, got.Unrestricted)
		assert.Equal(t, []string{"prodi-ti"}, got.ProdiIDs)
	})
}

func TestHasCapability(t *testing.T) {
	assert.True(t, HasCapability(models.RoleAdmin, CapManageMasterData))
	assert.True(t, HasCapability(models.RoleAdmin, CapManageKeuangan))
	assert.True(t, HasCapability(models.RoleAdmin, CapApproveKRS))
	assert.True(t, HasCapability(models.RoleAdmin, CapInputNilai))
	assert.True(t, HasCapability(models.RoleRektor, CapViewAll))
	assert.False(t, HasCapability(models.RoleRektor, CapManageMasterData))
	assert.True(t, HasCapability(models.RoleDekan, CapManagement))
	assert.True(t, HasCapability(models.RoleDosen, CapInputNilai))
	assert.False(t, HasCapability(models.RoleDosen, CapManagement))
	assert.False(t, HasCapability(models.RoleMahasiswa, CapApproveKRS))
	assert.False(t, HasCapability(models.RoleType("tamu"), CapViewAll))
}
