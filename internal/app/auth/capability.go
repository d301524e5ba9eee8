package auth

import "github.com/nurhakim/siakad/internal/app/models"

// Capability names one class of privileged action.
type Capability string

const (
	CapManageMasterData Capability = "manage_master_data"
	CapViewAll          Capability = "view_all"
	CapManagement       Capability = "management"
	CapApproveKRS       Capability = "approve_krs"
	CapInputNilai       Capability = "input_nilai"
	CapManageKeuangan   Capability = "manage_keuangan"
	CapReviewRequests   Capability = "review_requests"
	CapManageUsers      Capability = "manage_users"
)

// roleCapabilities maps each role to the actions it may perform.
// Endpoint guards check this table instead of comparing role strings.
var roleCapabilities = map[models.RoleType]map[Capability]bool{
	models.RoleAdmin: {
		CapManageMasterData: true,
		CapViewAll:          true,
		CapManagement:       true,
		CapApproveKRS:       true,
		CapInputNilai:       true,
		CapManageKeuangan:   true,
		CapReviewRequests:   true,
		CapManageUsers:      true,
	},
	models.RoleRektor: {
		CapViewAll:    true,
		CapManagement: true,
	},
	models.RoleDekan: {
		CapManagement: true,
	},
	models.RoleKaprodi: {
		CapManagement: true,
	},
	models.RoleDosen: {
		CapApproveKRS: true,
		CapInputNilai: true,
	},
	models.RoleMahasiswa: {},
}

// HasCapability reports whether the role may perform the action.
func HasCapability(role models.RoleType, cap Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[cap]
}
