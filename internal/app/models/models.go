package models

// RoleType defines the user role
type RoleType string

const (
	RoleAdmin     RoleType = "admin"
	RoleRektor    RoleType = "rektor"
	RoleDekan     RoleType = "dekan"
	RoleKaprodi   RoleType = "kaprodi"
	RoleDosen     RoleType = "dosen"
	RoleMahasiswa RoleType = "mahasiswa"
)

// ManagementRoles are the roles that use the program/faculty scoped
// management listings.
var ManagementRoles = []RoleType{RoleAdmin, RoleRektor, RoleDekan, RoleKaprodi}

// IsManagement reports whether the role is one of the management roles.
func (r RoleType) IsManagement() bool {
	for _, m := range ManagementRoles {
		if r == m {
			return true
		}
	}
	return false
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch RoleType(s) {
	case RoleAdmin, RoleRektor, RoleDekan, RoleKaprodi, RoleDosen, RoleMahasiswa:
		return true
	}
	return false
}

// KRS status lifecycle
const (
	KRSDiajukan  = "diajukan"
	KRSDisetujui = "disetujui"
	KRSDitolak   = "ditolak"
)

// Mahasiswa status values
const (
	MahasiswaAktif   = "aktif"
	MahasiswaCuti    = "cuti"
	MahasiswaLulus   = "lulus"
	MahasiswaDropOut = "drop_out"
)

// Review/request status values shared by the approval queues
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Pembayaran status values
const (
	PembayaranPending  = "pending"
	PembayaranVerified = "verified"
	PembayaranRejected = "rejected"
)

// Kehadiran status values
const (
	KehadiranHadir = "hadir"
	KehadiranIzin  = "izin"
	KehadiranSakit = "sakit"
	KehadiranAlpa  = "alpa"
)

// ValidKehadiranStatus reports whether s is a known attendance status.
func ValidKehadiranStatus(s string) bool {
	switch s {
	case KehadiranHadir, KehadiranIzin, KehadiranSakit, KehadiranAlpa:
		return true
	}
	return false
}
