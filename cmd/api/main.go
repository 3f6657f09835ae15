package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/vtcwoerden/materiaal-api/internal/application/auth"
	"github.com/vtcwoerden/materiaal-api/internal/application/export"
	"github.com/vtcwoerden/materiaal-api/internal/application/migration"
	"github.com/vtcwoerden/materiaal-api/internal/application/ports"
	"github.com/vtcwoerden/materiaal-api/internal/application/usecase"
	"github.com/vtcwoerden/materiaal-api/internal/infrastructure/htmlsheet"
	"github.com/vtcwoerden/materiaal-api/internal/infrastructure/media"
	infrapdf "github.com/vtcwoerden/materiaal-api/internal/infrastructure/pdf"
	"github.com/vtcwoerden/materiaal-api/internal/infrastructure/postgres"
	httpRouter "github.com/vtcwoerden/materiaal-api/internal/interfaces/http"
	"github.com/vtcwoerden/materiaal-api/pkg/config"
	"github.com/vtcwoerden/materiaal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply database schema")
	}

	itemRepo := postgres.NewItemRepository(pool)
	taxonomyRepo := postgres.NewTaxonomyRepository(pool)
	photoRepo := postgres.NewPhotoRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	mediaStore, err := newMediaStore(ctx, cfg.Media)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Media.Driver).Msg("media store")
	}

	settingsUC := usecase.NewSettingsUseCase(settingsRepo, usecase.SettingsDefaults{
		QRBaseURL:      cfg.Inventory.QRBaseURL,
		AutoGenerateQR: cfg.Inventory.AutoGenerateQR,
		PublicAccess:   cfg.Inventory.PublicAccess,
	})
	itemUC := usecase.NewItemUseCase(itemRepo, taxonomyRepo, photoRepo, mediaStore, settingsUC)
	dashboardUC := usecase.NewDashboardUseCase(statsRepo)
	exportUC := export.NewExportUseCase(itemRepo, settingsUC,
		infrapdf.NewMarotoSheetGenerator(), htmlsheet.New())
	migrationEngine := migration.NewEngine(
		itemRepo, taxonomyRepo, photoRepo, mediaStore,
		settingsUC, settingsRepo,
		postgres.NewMigrationLock(pool),
		migration.Config{
			DataFile:   cfg.Inventory.LegacyDataFile,
			UploadsDir: cfg.Inventory.LegacyUploads,
		},
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    32 * 1024 * 1024, // room for multi-photo uploads
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "VTC Woerden Materiaal API",
	}))

	if cfg.Media.Driver == "local" {
		app.Static(cfg.Media.LocalURL, cfg.Media.LocalDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		SettingsUC:  settingsUC,
		DashboardUC: dashboardUC,
		ExportUC:    exportUC,
		Migration:   migrationEngine,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

func newMediaStore(ctx context.Context, cfg config.MediaConfig) (ports.MediaStore, error) {
	if cfg.Driver == "s3" {
		return media.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3BaseURL)
	}
	return media.NewLocalStore(cfg.LocalDir, cfg.LocalURL), nil
}
