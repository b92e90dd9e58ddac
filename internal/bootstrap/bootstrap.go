// Package bootstrap assembles the application from its parts.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/skillbridge/skillbridge/internal/app/controllers"
	appMigrations "github.com/skillbridge/skillbridge/internal/app/migrations"
	appRepos "github.com/skillbridge/skillbridge/internal/app/repositories"
	appRoutes "github.com/skillbridge/skillbridge/internal/app/routes"
	appServices "github.com/skillbridge/skillbridge/internal/app/services"
	"github.com/skillbridge/skillbridge/internal/config"
	"github.com/skillbridge/skillbridge/internal/db"
	appMiddleware "github.com/skillbridge/skillbridge/internal/middleware"
	pkgAuth "github.com/skillbridge/skillbridge/internal/pkg/auth"
	"github.com/skillbridge/skillbridge/internal/pkg/cache"
	"github.com/skillbridge/skillbridge/internal/pkg/filestorage"
	"github.com/skillbridge/skillbridge/internal/pkg/logger"
	"github.com/skillbridge/skillbridge/internal/retention"
	"github.com/skillbridge/skillbridge/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                  *appRepos.Repositories
	Services               *appServices.Services
	AuthController         *appControllers.AuthController
	ProfileController      *appControllers.ProfileController
	RequestController      *appControllers.RequestController
	NotificationController *appControllers.NotificationController
	MessageController      *appControllers.MessageController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	JWTService             *pkgAuth.JWTService
	FileStorage            *filestorage.LocalStorage
	RedisClient            *redis.Client
	Reaper                 *retention.Reaper
	Logger                 zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
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
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if strings.ToLower(cfg.Server.Mode) != "production" {
		if err := seed.CreateDemoData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to seed demo data, proceeding anyway...")
		}
	}

	lgr.Info().Msg("Database ready")
	return dbPool, nil
}

// SetupRedis connects to Redis. A failed connection is not fatal: the
// location cache degrades to database lookups.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, location cache disabled")
		_ = client.Close()
		return nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, RedisClient: redisClient}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The base URL must match the static file serving endpoint
	baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExpiration(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	locationCache := cache.NewLocationCache(redisClient, cfg.LocationCacheTTL(), lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, storage, locationCache, cfg, lgr)

	deps.Reaper = retention.NewReaper(
		deps.Repos.MessageRepository,
		storage,
		cfg.ReapInterval(),
		lgr.With().Str("component", "reaper").Logger(),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.Services.ProfileService, lgr)
	deps.RequestController = appControllers.NewRequestController(deps.Services.RequestService, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.NotificationService, lgr)
	deps.MessageController = appControllers.NewMessageController(deps.Services.MessageService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.RequestController,
		deps.NotificationController,
		deps.MessageController,
		deps.AuthMiddleware,
	)

	return router
}
