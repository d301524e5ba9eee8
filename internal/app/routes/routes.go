// Package routes wires the HTTP endpoints to their controllers and
// access guards.
package routes

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/controllers"
	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/middleware"
)

// Controllers bundles every controller needed by the router.
type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Master    *controllers.MasterController
	Mahasiswa *controllers.MahasiswaController
	Dosen     *controllers.DosenController
	Kelas     *controllers.KelasController
	KRS       *controllers.KRSController
	Nilai     *controllers.NilaiController
	Presensi  *controllers.PresensiController
	Keuangan  *controllers.KeuanganController
	Biodata   *controllers.BiodataController
	Dashboard *controllers.DashboardController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctl Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", ctl.Auth.Login)
		auth.POST("/forgot-password-request", ctl.Auth.ForgotPassword)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Self-service account routes
	authSelf := authenticated.Group("/auth")
	{
		authSelf.GET("/me", ctl.Auth.Me)
		authSelf.GET("/my-access", ctl.Auth.MyAccess)
		authSelf.PUT("/change-password", ctl.Auth.ChangePassword)
		authSelf.POST("/upload-foto-profil", ctl.Auth.SubmitFotoProfil)
		authSelf.GET("/my-foto-profil-requests", ctl.Auth.MyFotoRequests)

		authSelf.POST("/register", authMiddleware.RequireCapability(appauth.CapManageUsers), ctl.User.Register)

		// Admin review queues
		authAdmin := authSelf.Group("")
		authAdmin.Use(authMiddleware.RequireCapability(appauth.CapReviewRequests))
		{
			authAdmin.GET("/forgot-password-requests", ctl.Auth.ListResetRequests)
			authAdmin.PUT("/forgot-password-requests/:id/review", ctl.Auth.ProcessResetRequest)
			authAdmin.GET("/foto-profil-requests", ctl.Auth.ListFotoRequests)
			authAdmin.PUT("/foto-profil-requests/:id/review", ctl.Auth.ProcessFotoRequest)
		}
	}

	// Account administration
	users := authenticated.Group("/users")
	users.Use(authMiddleware.RequireCapability(appauth.CapManageUsers))
	{
		users.GET("", ctl.User.ListUsers)
		users.PUT("/:id/toggle-active", ctl.User.ToggleActive)
	}

	// Master data: reads for every authenticated user, writes for admin
	master := authenticated.Group("/master")

	fakultas := master.Group("/fakultas")
	{
		fakultas.GET("", ctl.Master.ListFakultas)
		fakultas.GET("/:id", ctl.Master.GetFakultas)

		fakultasAdmin := fakultas.Group("")
		fakultasAdmin.Use(authMiddleware.RequireCapability(appauth.CapManageMasterData))
		{
			fakultasAdmin.POST("", ctl.Master.CreateFakultas)
			fakultasAdmin.PUT("/:id", ctl.Master.UpdateFakultas)
			fakultasAdmin.DELETE("/:id", ctl.Master.DeleteFakultas)
		}
	}

	prodi := master.Group("/prodi")
	{
		prodi.GET("", ctl.Master.ListProdi)
		prodi.GET("/:id", ctl.Master.GetProdi)

		prodiAdmin := prodi.Group("")
		prodiAdmin.Use(authMiddleware.RequireCapability(appauth.CapManageMasterData))
		{
			prodiAdmin.POST("", ctl.Master.CreateProdi)
			prodiAdmin.PUT("/:id", ctl.Master.UpdateProdi)
			prodiAdmin.DELETE("/:id", ctl.Master.DeleteProdi)
		}
	}

	kurikulum := master.Group("/kurikulum")
	{
		kurikulum.GET("", ctl.Master.ListKurikulum)

		kurikulumAdmin := kurikulum.Group("")
		kurikulumAdmin.Use(authMiddleware.RequireCapability(appauth.CapManageMasterData))
		{
			kurikulumAdmin.POST("", ctl.Master.CreateKurikulum)
			kurikulumAdmin.PUT("/:id", ctl.Master.UpdateKurikulum)
			kurikulumAdmin.DELETE("/:id", ctl.Master.DeleteKurikulum)
		}
	}

	mataKuliah := master.Group("/mata-kuliah")
	{
		mataKuliah.GET("", ctl.Master.ListMataKuliah)

		mataKuliahAdmin := mataKuliah.Group("")
		mataKuliahAdmin.Use(authMiddleware.RequireCapability(appauth.CapManageMasterData))
		{
			mataKuliahAdmin.POST("", ctl.Master.CreateMataKuliah)
			mataKuliahAdmin.PUT("/:id", ctl.Master.UpdateMataKuliah)
			mataKuliahAdmin.DELETE("/:id", ctl.Master.DeleteMataKuliah)
		}
	}

	tahunAkademik := master.Group("/tahun-akademik")
	{
		tahunAkademik.GET("", ctl.Master.ListTahunAkademik)
		tahunAkademik.GET("/active", ctl.Master.GetActiveTahunAkademik)

		tahunAkademikAdmin := tahunAkademik.Group("")
		tahunAkademikAdmin.Use(authMiddleware.RequireCapability(appauth.CapManageMasterData))
		{
			tahunAkademikAdmin.POST("", ctl.Master.CreateTahunAkademik)
			tahunAkademikAdmin.PUT("/:id", ctl.Master.UpdateTahunAkademik)
			tahunAkademikAdmin.PUT("/:id/activate", ctl.Master.ActivateTahunAkademik)
			tahunAkademikAdmin.DELETE("/:id", ctl.Master.DeleteTahunAkademik)
		}
	}

	// Student records: management roles, filtered by resolved scope
	masterMahasiswa := master.Group("/mahasiswa")
	masterMahasiswa.Use(authMiddleware.RequireCapability(appauth.CapManagement))
	{
		masterMahasiswa.POST("", ctl.Mahasiswa.CreateMahasiswa)
		masterMahasiswa.GET("", ctl.Mahasiswa.ListMahasiswa)
		masterMahasiswa.GET("/:id", ctl.Mahasiswa.GetMahasiswa)
		masterMahasiswa.PUT("/:id", ctl.Mahasiswa.UpdateMahasiswa)
		masterMahasiswa.DELETE("/:id", ctl.Mahasiswa.DeleteMahasiswa)
	}

	// Lecturer records
	masterDosen := master.Group("/dosen")
	masterDosen.Use(authMiddleware.RequireCapability(appauth.CapManagement))
	{
		masterDosen.POST("", ctl.Dosen.CreateDosen)
		masterDosen.GET("", ctl.Dosen.ListDosen)
		masterDosen.GET("/:id", ctl.Dosen.GetDosen)
		masterDosen.PUT("/:id", ctl.Dosen.UpdateDosen)
		masterDosen.DELETE("/:id", ctl.Dosen.DeleteDosen)
	}

	// Class sections and the conflict probe
	akademik := authenticated.Group("/akademik")

	kelas := akademik.Group("/kelas")
	{
		kelas.GET("", ctl.Kelas.ListKelas)
		kelas.GET("/:id", ctl.Kelas.GetKelas)

		kelasAdmin := kelas.Group("")
		kelasAdmin.Use(authMiddleware.RequireCapability(appauth.CapManagement))
		{
			kelasAdmin.POST("", ctl.Kelas.CreateKelas)
			kelasAdmin.POST("/check-conflict", ctl.Kelas.CheckConflict)
			kelasAdmin.PUT("/:id", ctl.Kelas.UpdateKelas)
			kelasAdmin.DELETE("/:id", ctl.Kelas.DeleteKelas)
		}
	}

	// Study plan administration and the advisor verdict
	krs := akademik.Group("/krs")
	{
		krs.GET("", authMiddleware.RequireRoles(models.RoleAdmin), ctl.KRS.ListAll)
		krs.GET("/approvals", authMiddleware.RequireRoles(models.RoleDosen), ctl.KRS.PendingApprovals)

		krsReview := krs.Group("")
		krsReview.Use(authMiddleware.RequireCapability(appauth.CapApproveKRS))
		{
			krsReview.PUT("/:id/approve", ctl.KRS.Approve)
			krsReview.PUT("/:id/reject", ctl.KRS.Reject)
		}
	}

	// Student portal
	mahasiswaPortal := authenticated.Group("/mahasiswa")
	mahasiswaPortal.Use(authMiddleware.RequireRoles(models.RoleMahasiswa))
	{
		mahasiswaPortal.GET("/profile", ctl.Mahasiswa.MyProfile)
		mahasiswaPortal.GET("/kelas-tersedia", ctl.Kelas.KelasTersedia)
		mahasiswaPortal.POST("/krs", ctl.KRS.Enroll)
		mahasiswaPortal.GET("/krs", ctl.KRS.MyKRS)
		mahasiswaPortal.DELETE("/krs/:id", ctl.KRS.Drop)
		mahasiswaPortal.GET("/khs", ctl.Nilai.KHS)
		mahasiswaPortal.GET("/transkrip", ctl.Nilai.Transkrip)
		mahasiswaPortal.GET("/presensi", ctl.Presensi.MyPresensi)
		mahasiswaPortal.GET("/biodata", ctl.Biodata.MyBiodata)
		mahasiswaPortal.POST("/biodata", ctl.Biodata.FillBiodata)
		mahasiswaPortal.POST("/biodata/change-request", ctl.Biodata.SubmitChangeRequest)
		mahasiswaPortal.GET("/biodata/change-requests", ctl.Biodata.MyChangeRequests)
		mahasiswaPortal.GET("/tagihan", ctl.Keuangan.MyTagihan)
		mahasiswaPortal.GET("/pembayaran", ctl.Keuangan.MyPembayaran)
	}

	// Lecturer portal
	dosenPortal := authenticated.Group("/dosen")
	dosenPortal.Use(authMiddleware.RequireRoles(models.RoleDosen))
	{
		dosenPortal.GET("/kelas", ctl.Kelas.MyKelas)
		dosenPortal.GET("/kelas/:id/mahasiswa", ctl.KRS.Roster)
		dosenPortal.POST("/nilai", ctl.Nilai.UpsertNilai)
		dosenPortal.GET("/kelas/:id/nilai", ctl.Nilai.ListNilai)
		dosenPortal.POST("/kelas/:id/pertemuan", ctl.Presensi.OpenPertemuan)
		dosenPortal.GET("/kelas/:id/pertemuan", ctl.Presensi.ListPertemuan)
		dosenPortal.GET("/kelas/:id/presensi/rekap", ctl.Presensi.RekapKehadiran)
		dosenPortal.POST("/pertemuan/:id/kehadiran", ctl.Presensi.RecordKehadiran)
		dosenPortal.GET("/pertemuan/:id/kehadiran", ctl.Presensi.ListKehadiran)
	}

	// Finance
	keuangan := authenticated.Group("/keuangan")
	{
		keuangan.POST("/pembayaran", authMiddleware.RequireRoles(models.RoleMahasiswa), ctl.Keuangan.SubmitPembayaran)

		keuanganAdmin := keuangan.Group("")
		keuanganAdmin.Use(authMiddleware.RequireCapability(appauth.CapManageKeuangan))
		{
			keuanganAdmin.POST("/kategori-ukt", ctl.Keuangan.CreateKategori)
			keuanganAdmin.GET("/kategori-ukt", ctl.Keuangan.ListKategori)
			keuanganAdmin.PUT("/kategori-ukt/:id", ctl.Keuangan.UpdateKategori)
			keuanganAdmin.DELETE("/kategori-ukt/:id", ctl.Keuangan.DeleteKategori)
			keuanganAdmin.POST("/tagihan", ctl.Keuangan.CreateTagihan)
			keuanganAdmin.POST("/tagihan/massal", ctl.Keuangan.CreateTagihanMassal)
			keuanganAdmin.GET("/tagihan", ctl.Keuangan.ListTagihan)
			keuanganAdmin.DELETE("/tagihan/:id", ctl.Keuangan.DeleteTagihan)
			keuanganAdmin.GET("/pembayaran", ctl.Keuangan.ListPembayaran)
			keuanganAdmin.PUT("/pembayaran/:id/verify", ctl.Keuangan.VerifyPembayaran)
			keuanganAdmin.GET("/rekap", ctl.Keuangan.Rekap)
		}
	}

	// Biodata review queue
	biodata := authenticated.Group("/biodata")
	{
		biodataAdmin := biodata.Group("")
		biodataAdmin.Use(authMiddleware.RequireCapability(appauth.CapReviewRequests))
		{
			biodataAdmin.GET("/change-requests", ctl.Biodata.ListChangeRequests)
			biodataAdmin.GET("/change-requests/:id", ctl.Biodata.GetChangeRequest)
			biodataAdmin.PUT("/change-requests/:id/review", ctl.Biodata.ReviewChangeRequest)
		}

		biodataScoped := biodata.Group("")
		biodataScoped.Use(authMiddleware.RequireCapability(appauth.CapManagement))
		{
			biodataScoped.GET("/list", ctl.Biodata.ListBiodata)
			biodataScoped.GET("/mahasiswa-belum-isi", ctl.Biodata.BelumIsi)
		}
	}

	// Management dashboard
	dashboard := authenticated.Group("/dashboard")
	dashboard.Use(authMiddleware.RequireCapability(appauth.CapManagement))
	{
		dashboard.GET("/stats", ctl.Dashboard.Summary)
	}
}
