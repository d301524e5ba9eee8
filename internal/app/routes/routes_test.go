package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nurhakim/siakad/internal/app/controllers"
	"github.com/nurhakim/siakad/internal/middleware"
)

// registeredRoutes builds the router with empty controllers and returns
// the method+path pairs gin registered. Handlers are never invoked.
func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:      &controllers.AuthController{},
		User:      &controllers.UserController{},
		Master:    &controllers.MasterController{},
		Mahasiswa: &controllers.MahasiswaController{},
		Dosen:     &controllers.DosenController{},
		Kelas:     &controllers.KelasController{},
		KRS:       &controllers.KRSController{},
		Nilai:     &controllers.NilaiController{},
		Presensi:  &controllers.PresensiController{},
		Keuangan:  &controllers.KeuanganController{},
		Biodata:   &controllers.BiodataController{},
		Dashboard: &controllers.DashboardController{},
	}, &middleware.AuthMiddleware{})

	routes := make(map[string]bool, len(router.Routes()))
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestRouteSurface(t *testing.T) {
	routes := registeredRoutes(t)

	expected := []string{
		"POST /api/auth/login",
		"POST /api/auth/forgot-password-request",
		"POST /api/auth/register",
		"PUT /api/auth/change-password",
		"PUT /api/auth/forgot-password-requests/:id/review",
		"PUT /api/auth/foto-profil-requests/:id/review",
		"PUT /api/users/:id/toggle-active",
		"GET /api/master/prodi",
		"POST /api/master/mata-kuliah",
		"PUT /api/master/tahun-akademik/:id/activate",
		"GET /api/master/mahasiswa",
		"GET /api/master/dosen",
		"POST /api/akademik/kelas",
		"POST /api/akademik/kelas/check-conflict",
		"GET /api/akademik/krs/approvals",
		"PUT /api/akademik/krs/:id/approve",
		"PUT /api/akademik/krs/:id/reject",
		"POST /api/mahasiswa/krs",
		"POST /api/mahasiswa/biodata/change-request",
		"GET /api/mahasiswa/transkrip",
		"POST /api/dosen/nilai",
		"GET /api/dosen/kelas/:id/mahasiswa",
		"POST /api/keuangan/pembayaran",
		"PUT /api/keuangan/pembayaran/:id/verify",
		"PUT /api/biodata/change-requests/:id/review",
		"GET /api/dashboard/stats",
	}
	for _, route := range expected {
		assert.True(t, routes[route], "missing route %s", route)
	}

	// Renamed and re-verbed endpoints must not survive under old shapes.
	stale := []string{
		"POST /api/auth/forgot-password",
		"POST /api/auth/change-password",
		"GET /api/prodi",
		"GET /api/kelas",
		"POST /api/biodata/change-requests/:id/review",
	}
	for _, route := range stale {
		assert.False(t, routes[route], "stale route %s", route)
	}
}
