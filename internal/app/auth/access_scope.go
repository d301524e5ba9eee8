package auth

import (
	"context"

	"github.com/nurhakim/siakad/internal/app/models"
)

// ProdiDirectory answers the structural questions the scope resolver
// needs about programs and faculties.
type ProdiDirectory interface {
	// ProdiIDsByFakultas returns the IDs of every prodi under the faculty.
	ProdiIDsByFakultas(ctx context.Context, fakultasID string) ([]string, error)
	// FakultasIDByProdi returns the owning faculty of the prodi.
	FakultasIDByProdi(ctx context.Context, prodiID string) (string, error)
}

// AccessScope is the resolved visibility of one user. A nil Prodi set
// with Unrestricted=false means the user can see nothing scoped.
type AccessScope struct {
	Role         models.RoleType
	Unrestricted bool
	ProdiIDs     []string
	FakultasIDs  []string
}

// AllowsProdi reports whether the scope covers the prodi.
func (s AccessScope) AllowsProdi(prodiID string) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.ProdiIDs {
		if id == prodiID {
			return true
		}
	}
	return false
}

// AllowsFakultas reports whether the scope covers the faculty.
func (s AccessScope) AllowsFakultas(fakultasID string) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.FakultasIDs {
		if id == fakultasID {
			return true
		}
	}
	return false
}

// ApplyProdiFilter narrows the scope to one caller-requested prodi.
// An empty filter leaves the scope unchanged; a prodi outside the
// scope yields an empty scope, never a wider one.
func (s AccessScope) ApplyProdiFilter(prodiID string) AccessScope {
	if prodiID == "" {
		return s
	}
	if !s.AllowsProdi(prodiID) {
		return AccessScope{Role: s.Role, ProdiIDs: []string{}}
	}
	return AccessScope{
		Role:        s.Role,
		ProdiIDs:    []string{prodiID},
		FakultasIDs: s.FakultasIDs,
	}
}

// ScopeResolver computes AccessScope from a user's role and assignment.
type ScopeResolver struct {
	directory ProdiDirectory
}

// NewScopeResolver creates a ScopeResolver backed by the directory.
func NewScopeResolver(directory ProdiDirectory) *ScopeResolver {
	return &ScopeResolver{directory: directory}
}

// Resolve derives the visibility scope for a user. Admin and rektor see
// everything. Dekan sees the prodi of their assigned faculty, kaprodi
// sees their assigned prodi. A dekan without fakultas_id or a kaprodi
// without prodi_id resolves to an empty scope rather than an error:
// missing assignment closes access, it does not widen it.
func (r *ScopeResolver) Resolve(ctx context.Context, user *models.User) (AccessScope, error) {
	scope := AccessScope{Role: user.Role}

	switch user.Role {
	case models.RoleAdmin, models.RoleRektor:
		scope.Unrestricted = true

	case models.RoleDekan:
		if user.FakultasID == nil || *user.FakultasID == "" {
			return scope, nil
		}
		prodiIDs, err := r.directory.ProdiIDsByFakultas(ctx, *user.FakultasID)
		if err != nil {
			return AccessScope{Role: user.Role}, err
		}
		scope.FakultasIDs = []string{*user.FakultasID}
		scope.ProdiIDs = prodiIDs

	case models.RoleKaprodi:
		if user.ProdiID == nil || *user.ProdiID == "" {
			return scope, nil
		}
		scope.ProdiIDs = []string{*user.ProdiID}
		fakultasID, err := r.directory.FakultasIDByProdi(ctx, *user.ProdiID)
		if err == nil && fakultasID != "" {
			scope.FakultasIDs = []string{fakultasID}
		}
	}

	// dosen and mahasiswa carry no management scope
	return scope, nil
}
