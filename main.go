package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"terradash/internal/application/analytics"
	"terradash/internal/application/ingest"
	"terradash/internal/delivery/http/handler"
	"terradash/internal/delivery/http/router"
	"terradash/internal/domain/dataset"
	"terradash/internal/infrastructure/config"
	"terradash/internal/infrastructure/database"
	"terradash/internal/infrastructure/logger"
	"terradash/internal/infrastructure/repository"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// Select the storage backend once, up front
	repo, err := newRepository(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}

	if err := os.MkdirAll(cfg.UploadPath, 0755); err != nil {
		log.Fatal("Failed to create upload directory: ", err)
	}

	// Initialize services
	ingestSvc := ingest.NewService(repo, log)
	analyticsSvc := analytics.NewService(repo, cfg.CacheTTL, log)

	// Initialize handlers
	uploadHandler := handler.NewUploadHandler(ingestSvc, analyticsSvc, cfg.MaxFileSize, cfg.UploadPath, log)
	datasetHandler := handler.NewDatasetHandler(repo, log)
	dashboardHandler := handler.NewDashboardHandler(analyticsSvc, log)

	seed(cfg, repo, ingestSvc, log)

	// Setup routes
	mux := router.Setup(router.Handlers{
		Upload:    uploadHandler,
		Dataset:   datasetHandler,
		Dashboard: dashboardHandler,
	}, log)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Println("=================================")
	fmt.Println("      Terradash Server")
	fmt.Println("=================================")
	fmt.Printf("Server:    http://localhost%s\n", addr)
	fmt.Printf("Backend:   %s\n", cfg.StorageBackend)
	if cfg.StorageBackend == config.BackendFile {
		fmt.Printf("Data:      %s\n", cfg.DataPath)
	}
	if cfg.StorageBackend == config.BackendSQLite {
		fmt.Printf("Database:  %s\n", cfg.DatabasePath)
	}
	fmt.Println("=================================")
	log.Fatal(http.ListenAndServe(addr, mux))
}

func newRepository(cfg *config.Config) (dataset.Repository, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory, "":
		return repository.NewMemoryRepository(), nil
	case config.BackendFile:
		return repository.NewFileRepository(cfg.DataPath)
	case config.BackendSQLite:
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return repository.NewSQLiteRepository(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// seed ingests the sample CSVs once when the corresponding collection is
// empty. Seed problems only warn; the dashboard simply starts empty.
func seed(cfg *config.Config, repo dataset.Repository, svc ingest.Service, log *logrus.Logger) {
	seedFile := func(kind dataset.Kind, name string) {
		path := filepath.Join(cfg.SeedPath, name)
		f, err := os.Open(path)
		if err != nil {
			// No seed file for this dataset
			return
		}
		defer f.Close()

		rows, err := svc.Ingest(f, kind)
		if err != nil {
			log.WithError(err).WithField("file", path).Warn("failed to load seed data")
			return
		}
		log.WithFields(logrus.Fields{"file": path, "rows": rows}).Info("loaded seed data")
	}

	if orders, err := repo.Orders(); err == nil && len(orders) == 0 {
		seedFile(dataset.KindOrders, "pedidos.csv")
	}
	if campaigns, err := repo.Campaigns(); err == nil && len(campaigns) == 0 {
		seedFile(dataset.KindAds, "ads.csv")
	}
}
