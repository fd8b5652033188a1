package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/comparekart/catalog-engine/pkg/config"
	"github.com/comparekart/catalog-engine/pkg/database"
	"github.com/comparekart/catalog-engine/pkg/handlers"
	"github.com/comparekart/catalog-engine/pkg/logging"
	"github.com/comparekart/catalog-engine/pkg/middleware"
	"github.com/comparekart/catalog-engine/pkg/repositories"
	"github.com/comparekart/catalog-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// A missing .env is fine; configuration falls back to the
	// environment and config.yaml.
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

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("port", cfg.Port),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())))

	ctx := context.Background()
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL successfully")

	vendorRepo := repositories.NewVendorRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	priceRepo := repositories.NewPriceRepository(db)
	suggestionRepo := repositories.NewSuggestionRepository(db)
	viewRepo := repositories.NewProductViewRepository(db)

	catalog := services.NewCatalogService(viewRepo, listingRepo, priceRepo, suggestionRepo, vendorRepo, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewProductHandler(catalog, logger).RegisterRoutes(mux)
	handlers.NewVendorHandler(catalog, logger).RegisterRoutes(mux)
	handlers.NewImportInfoHandler(logger).RegisterRoutes(mux)

	handler := middleware.CORS()(middleware.RequestLogger(logger)(mux))

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting catalog-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
