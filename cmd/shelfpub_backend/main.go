package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shelfpub/shelfpub_backend/internal/adapters/database/pgsql"
	googleadapter "github.com/shelfpub/shelfpub_backend/internal/adapters/google"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
	"github.com/shelfpub/shelfpub_backend/internal/core/services"
	"github.com/shelfpub/shelfpub_backend/internal/handlers"
	"github.com/shelfpub/shelfpub_backend/internal/middleware"
	"github.com/shelfpub/shelfpub_backend/internal/platform/config"
	"github.com/shelfpub/shelfpub_backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Shelfpub Backend API
// @version 1.0
// @description Publishes the public rows of a user's book sheet as a JSON feed.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Column mapping and row range, immutable after startup.
	sheetSpec, err := domain.LoadSheetSpec(cfg.SheetSpecPath)
	if err != nil {
		logger.Error("Failed to load sheet spec", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Outside production the SPA dev server runs on its own origin.
	if !cfg.IsProduction {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Requested-With")
		r.Use(cors.New(corsConfig))
	}

	// Wire repositories, adapters and services.
	userRepo := pgsql.NewUserRepository(dbPool)
	sessionRepo := pgsql.NewSessionRepository(dbPool)
	feedRepo := pgsql.NewFeedRepository(dbPool)

	googleAuth := googleadapter.NewAuthService(cfg)
	sheetsSvc := googleadapter.NewSheetsService(cfg, sheetSpec)

	serviceContainer := &portssvc.ServiceContainer{
		GoogleAuth:  googleAuth,
		Session:     services.NewSessionService(sessionRepo, cfg),
		Token:       services.NewTokenService(userRepo, googleAuth),
		Spreadsheet: sheetsSvc,
		Publish:     services.NewPublishService(userRepo, feedRepo, sheetsSvc, sheetSpec, logger),
		Feed:        services.NewFeedService(feedRepo),
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
