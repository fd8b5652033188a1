// Command import runs the batch flat-file import: it applies any
// pending schema migrations, then upserts vendors, listings, prices
// and suggestions from the configured CSV files. Exit code 0 on
// success, 1 on any failure.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/comparekart/catalog-engine/pkg/config"
	"github.com/comparekart/catalog-engine/pkg/database"
	"github.com/comparekart/catalog-engine/pkg/flatfile"
	"github.com/comparekart/catalog-engine/pkg/logging"
	"github.com/comparekart/catalog-engine/pkg/repositories"
	"github.com/comparekart/catalog-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("Import failed", zap.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL successfully")

	if err := database.RunMigrations(cfg.Database.URL(), cfg.Import.MigrationsPath, logger); err != nil {
		return err
	}

	reader := &flatfile.Reader{Encoding: cfg.Import.Encoding}
	importer := services.NewImportService(
		reader,
		services.FileSet{
			Listings:    cfg.Import.ListingsFile,
			Prices:      cfg.Import.PricesFile,
			Suggestions: cfg.Import.SuggestionsFile,
		},
		repositories.NewVendorRepository(db),
		repositories.NewListingRepository(db),
		repositories.NewPriceRepository(db),
		repositories.NewSuggestionRepository(db),
		logger,
	)

	stats, err := importer.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("All data imported successfully",
		zap.Int("vendors", stats.Vendors.Imported),
		zap.Int("listings", stats.Listings.Imported),
		zap.Int("prices", stats.Prices.Imported),
		zap.Int("prices_skipped", stats.Prices.Skipped),
		zap.Int("suggestions", stats.Suggestions.Imported))
	return nil
}
