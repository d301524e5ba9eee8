package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/nurhakim/siakad/internal/app/auth"
	appControllers "github.com/nurhakim/siakad/internal/app/controllers"
	appMigrations "github.com/nurhakim/siakad/internal/app/migrations"
	appRepos "github.com/nurhakim/siakad/internal/app/repositories"
	appRoutes "github.com/nurhakim/siakad/internal/app/routes"
	appServices "github.com/nurhakim/siakad/internal/app/services"
	"github.com/nurhakim/siakad/internal/config"
	"github.com/nurhakim/siakad/internal/db"
	appMiddleware "github.com/nurhakim/siakad/internal/middleware"
	pkgAuth "github.com/nurhakim/siakad/internal/pkg/auth"
	"github.com/nurhakim/siakad/internal/pkg/filestorage"
	"github.com/nurhakim/siakad/internal/pkg/helpers"
	"github.com/nurhakim/siakad/internal/pkg/logger"
	"github.com/nurhakim/siakad/internal/seed"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	ScopeResolver  *appAuth.ScopeResolver
	FileStorage    *filestorage.LocalStorage
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations,
// and seeds initial data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	seeder := seed.NewSeeder(appRepos.NewRepositories(dbPool))
	if err := seeder.Run(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers,
// and middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = fileStorage

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.ScopeResolver = appAuth.NewScopeResolver(deps.Repos.ProdiRepository)

	authService := appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.MahasiswaRepository,
		deps.Repos.DosenRepository,
		deps.Repos.AuthRequestRepository,
		deps.Repos.ProdiRepository,
		deps.Repos.FakultasRepository,
		deps.ScopeResolver,
		deps.JWTService,
		lgr,
	)
	masterService := appServices.NewMasterService(
		deps.Repos.FakultasRepository,
		deps.Repos.ProdiRepository,
		deps.Repos.KurikulumRepository,
		deps.Repos.MataKuliahRepository,
		deps.Repos.TahunAkademikRepository,
		lgr,
	)
	mahasiswaService := appServices.NewMahasiswaService(
		deps.Repos.MahasiswaRepository,
		deps.Repos.UserRepository,
		deps.Repos.ProdiRepository,
		deps.Repos.DosenRepository,
		lgr,
	)
	dosenService := appServices.NewDosenService(
		deps.Repos.DosenRepository,
		deps.Repos.UserRepository,
		deps.Repos.ProdiRepository,
		lgr,
	)
	jadwalService := appServices.NewJadwalService(
		deps.Repos.KelasRepository,
		deps.Repos.MataKuliahRepository,
		deps.Repos.DosenRepository,
		deps.Repos.TahunAkademikRepository,
		deps.Repos.ProdiRepository,
		lgr,
	)
	krsService := appServices.NewKRSService(
		deps.Repos.KRSRepository,
		deps.Repos.KelasRepository,
		deps.Repos.MahasiswaRepository,
		deps.Repos.DosenRepository,
		deps.Repos.TahunAkademikRepository,
		jadwalService,
		lgr,
	)
	nilaiService := appServices.NewNilaiService(
		deps.Repos.NilaiRepository,
		deps.Repos.KRSRepository,
		deps.Repos.KelasRepository,
		deps.Repos.MahasiswaRepository,
		deps.Repos.DosenRepository,
		deps.Repos.TahunAkademikRepository,
		deps.Repos.MataKuliahRepository,
		deps.Repos.ProdiRepository,
		lgr,
	)
	presensiService := appServices.NewPresensiService(
		deps.Repos.PresensiRepository,
		deps.Repos.KelasRepository,
		deps.Repos.KRSRepository,
		deps.Repos.MahasiswaRepository,
		deps.Repos.DosenRepository,
		lgr,
	)
	keuanganService := appServices.NewKeuanganService(
		deps.Repos.KeuanganRepository,
		deps.Repos.MahasiswaRepository,
		deps.Repos.ProdiRepository,
		deps.Repos.TahunAkademikRepository,
		lgr,
	)
	biodataService := appServices.NewBiodataService(
		deps.Repos.BiodataRepository,
		deps.Repos.MahasiswaRepository,
		lgr,
	)
	dashboardService := appServices.NewDashboardService(
		deps.Repos.MahasiswaRepository,
		deps.Repos.DosenRepository,
		deps.Repos.ProdiRepository,
		deps.Repos.MataKuliahRepository,
		deps.Repos.KelasRepository,
		deps.Repos.TahunAkademikRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.Controllers = appRoutes.Controllers{
		Auth:      appControllers.NewAuthController(authService, deps.FileStorage),
		User:      appControllers.NewUserController(authService),
		Master:    appControllers.NewMasterController(masterService, deps.ScopeResolver),
		Mahasiswa: appControllers.NewMahasiswaController(mahasiswaService, deps.ScopeResolver),
		Dosen:     appControllers.NewDosenController(dosenService, deps.ScopeResolver),
		Kelas:     appControllers.NewKelasController(jadwalService, dosenService, deps.ScopeResolver),
		KRS:       appControllers.NewKRSController(krsService),
		Nilai:     appControllers.NewNilaiController(nilaiService),
		Presensi:  appControllers.NewPresensiController(presensiService),
		Keuangan:  appControllers.NewKeuanganController(keuanganService),
		Biodata:   appControllers.NewBiodataController(biodataService, deps.ScopeResolver),
		Dashboard: appControllers.NewDashboardController(dashboardService, deps.ScopeResolver),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
