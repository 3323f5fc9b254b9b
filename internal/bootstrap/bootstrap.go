package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/gradtracker/internal/app/controllers"
	appMigrations "github.com/yigit/gradtracker/internal/app/migrations"
	appRepos "github.com/yigit/gradtracker/internal/app/repositories"
	appRoutes "github.com/yigit/gradtracker/internal/app/routes"
	appServices "github.com/yigit/gradtracker/internal/app/services"
	"github.com/yigit/gradtracker/internal/config"
	"github.com/yigit/gradtracker/internal/db"
	appMiddleware "github.com/yigit/gradtracker/internal/middleware"
	"github.com/yigit/gradtracker/internal/pkg/cache"
	"github.com/yigit/gradtracker/internal/pkg/fieldcrypt"
	"github.com/yigit/gradtracker/internal/pkg/helpers"
	"github.com/yigit/gradtracker/internal/pkg/logger"
	"github.com/yigit/gradtracker/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	Services           *appServices.Services
	GraduateController *appControllers.GraduateController
	HealthController   *appControllers.HealthController
	Cache              cache.Cache
	CacheCleanup       func()
	Logger             zerolog.Logger
}

// ConfigPath returns the config file location, overridable with CONFIG_PATH
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return filepath.Join("configs", "config.yaml")
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg, lgr.With().Str("component", "db").Logger())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr.With().Str("component", "migrations").Logger())
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// CacheOptions translates the cache section into cache options
func CacheOptions(cfg *config.Config) cache.Options {
	return cache.Options{
		Driver: cfg.Cache.Driver,
		TTL:    helpers.ParseDuration(cfg.Cache.TTL, cache.DefaultTTL),
		Size:   cfg.Cache.Size,
		Redis: cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		},
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	cipher, err := fieldcrypt.New(cfg.Crypto.Key)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize field encryption")
		return nil, fmt.Errorf("failed to initialize field encryption: %w", err)
	}

	deps.Cache, deps.CacheCleanup, err = cache.New(ctx, CacheOptions(cfg), lgr.With().Str("component", "cache").Logger())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize response cache")
		return nil, fmt.Errorf("failed to initialize response cache: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(database.Pool, lgr)

	deps.Services = &appServices.Services{
		GraduateService: appServices.NewGraduateService(
			deps.Repos.GraduateRepository,
			cipher,
			deps.Cache,
			appServices.GraduateServiceConfig{UniqueNames: cfg.Registration.UniqueNames},
			lgr.With().Str("component", "graduate_service").Logger(),
		),
	}

	if cfg.Seed.Demo {
		if _, err := seed.CreateDemoData(ctx, deps.Repos.GraduateRepository, deps.Services.GraduateService, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	deps.GraduateController = appControllers.NewGraduateController(deps.Services.GraduateService)
	deps.HealthController = appControllers.NewHealthController(map[string]appControllers.ReadinessChecker{
		"database": database,
	})

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(appMiddleware.MethodNotAllowed())
	router.NoRoute(appMiddleware.NoRoute())

	// ClientIP keys the verify limiter, so forwarded headers count only from known proxies
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		lgr.Error().Err(err).Msg("Invalid trusted proxies, ignoring forwarded headers")
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr.With().Str("component", "http").Logger()),
		appMiddleware.Metrics(),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
		appMiddleware.BodyLimit(cfg.Server.MaxBodyBytes),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.GraduateController,
		deps.HealthController,
		appMiddleware.RateLimit(cfg.Verify.RateLimitPerMinute),
	)

	return router
}
