// Command importlegacy runs the legacy JSON import from the command line,
// without going through the HTTP API. Useful for the initial data load on a
// fresh deployment.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/vtcwoerden/materiaal-api/internal/application/migration"
	"github.com/vtcwoerden/materiaal-api/internal/application/ports"
	"github.com/vtcwoerden/materiaal-api/internal/application/usecase"
	"github.com/vtcwoerden/materiaal-api/internal/infrastructure/media"
	"github.com/vtcwoerden/materiaal-api/internal/infrastructure/postgres"
	"github.com/vtcwoerden/materiaal-api/pkg/config"
	"github.com/vtcwoerden/materiaal-api/pkg/logger"
)

func main() {
	action := flag.String("action", "import", "one of: status, import, rollback, sweep")
	dataFile := flag.String("data", "", "override the legacy export file path")
	uploadsDir := flag.String("uploads", "", "override the legacy uploads directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	if *dataFile != "" {
		cfg.Inventory.LegacyDataFile = *dataFile
	}
	if *uploadsDir != "" {
		cfg.Inventory.LegacyUploads = *uploadsDir
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

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
	settingsRepo := postgres.NewSettingsRepository(pool)

	var mediaStore ports.MediaStore
	if cfg.Media.Driver == "s3" {
		mediaStore, err = media.NewS3Store(ctx, cfg.Media.S3Bucket, cfg.Media.S3Region, cfg.Media.S3BaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("media store")
		}
	} else {
		mediaStore = media.NewLocalStore(cfg.Media.LocalDir, cfg.Media.LocalURL)
	}

	settingsUC := usecase.NewSettingsUseCase(settingsRepo, usecase.SettingsDefaults{
		QRBaseURL:      cfg.Inventory.QRBaseURL,
		AutoGenerateQR: cfg.Inventory.AutoGenerateQR,
		PublicAccess:   cfg.Inventory.PublicAccess,
	})
	engine := migration.NewEngine(
		itemRepo, taxonomyRepo, photoRepo, mediaStore,
		settingsUC, settingsRepo,
		postgres.NewMigrationLock(pool),
		migration.Config{
			DataFile:   cfg.Inventory.LegacyDataFile,
			UploadsDir: cfg.Inventory.LegacyUploads,
		},
	)

	switch *action {
	case "status":
		status, err := engine.Status()
		if err != nil {
			log.Fatal().Err(err).Msg("migration status")
		}
		fmt.Printf("status: %s\nmigrated: %d\nfile present: %t\nrecords in file: %d\n",
			status.Status, status.MigratedCount, status.FileExists, status.TotalItems)
	case "import":
		result, err := engine.Import()
		if err != nil {
			log.Fatal().Err(err).Msg("import failed")
		}
		log.Info().
			Int("migrated", result.MigratedCount).
			Int("errors", result.ErrorCount).
			Msg("import finished")
		for _, msg := range result.ErrorMessages {
			log.Warn().Msg(msg)
		}
	case "rollback":
		result, err := engine.Rollback()
		if err != nil {
			log.Fatal().Err(err).Msg("rollback failed")
		}
		log.Info().Int("deleted", result.DeletedCount).Msg("rollback finished")
	case "sweep":
		result, err := engine.Sweep()
		if err != nil {
			log.Fatal().Err(err).Msg("sweep failed")
		}
		log.Info().Int("deleted", result.DeletedCount).Msg("sweep finished")
	default:
		log.Fatal().Str("action", *action).Msg("unknown action")
	}
}
