package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"VinylFM/cache"
	"VinylFM/config"
	"VinylFM/core/cover"
	"VinylFM/core/discogs"
	"VinylFM/db"
	"VinylFM/logger"
	"VinylFM/model"
	"VinylFM/repository"
	"VinylFM/storage"

	"github.com/gorilla/mux"
	"github.com/minio/minio-go/v7"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     14,
	})

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Backing store: one variant is selected at startup; missing store
	// credentials are fatal since nothing works without persistence.
	recordRepo, sessionRepo := connectStore(cfg)
	if cfg.StoreBackend == config.StoreMySQL {
		defer db.DB.Close()
		defer db.CloseGormDB()
	}

	// Redis backs the time-boxed read cache.
	if err := cache.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.CloseRedis()
	log.Println("Successfully connected to Redis")

	// Cover archive is optional; without MinIO covers stay remote.
	var archiver *cover.Archiver
	if cfg.MinioEndpoint != "" {
		if err := storage.InitMinio(cfg); err != nil {
			log.Fatalf("Failed to initialize MinIO: %v", err)
		}
		archiver = cover.NewArchiver(cfg.MinioBucket)
	}

	catalogClient := discogs.NewClient(cfg.DiscogsAPIURL, cfg.DiscogsToken)
	if cfg.DiscogsToken == "" {
		log.Println("No DISCOGS_TOKEN configured; catalog search will return empty results.")
	}

	hub := NewHub()
	apiHandler := NewAPIHandler(recordRepo, sessionRepo, catalogClient, archiver, hub, cfg)

	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Inventory endpoints
	router.HandleFunc("/api/records", apiHandler.GetRecordsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/records", apiHandler.AddRecordHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/records/from-catalog", apiHandler.AddRecordFromCatalogHandler).Methods(http.MethodPost)

	// Catalog endpoints
	router.HandleFunc("/api/catalog/search", apiHandler.SearchCatalogHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/releases/{id}", apiHandler.GetReleaseHandler).Methods(http.MethodGet)

	// Listening history endpoints
	router.HandleFunc("/api/sessions", apiHandler.GetSessionsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/sessions", apiHandler.LogSessionHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/stats", apiHandler.GetStatsHandler).Methods(http.MethodGet)

	// Activity feed
	router.HandleFunc("/ws/activity", hub.ServeWS)

	// Archived covers served out of MinIO
	router.PathPrefix("/static/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		objectPath := strings.TrimPrefix(r.URL.Path, "/static/")
		client := storage.GetMinioClient()
		if client == nil {
			http.Error(w, "Cover archive not available", http.StatusNotFound)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		object, err := client.GetObject(ctx, cfg.MinioBucket, objectPath, minio.GetObjectOptions{})
		if err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		defer object.Close()

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "public, max-age=31536000")

		if _, err := io.Copy(w, object); err != nil {
			logger.Error("error serving cover", logger.ErrorField(err))
		}
	})

	// Frontend UI serving
	uiFileServer := http.FileServer(http.Dir(cfg.WebAppDir))
	router.PathPrefix("/").Handler(uiFileServer)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s...", cfg.ServerAddr)
		log.Println("Browse the collection via GET /api/records")
		log.Println("Search the catalog via GET /api/catalog/search?query=")
		log.Println("Log sessions via POST /api/sessions")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// connectStore wires up the configured backing-store variant and returns
// the two repositories. Any failure here is fatal.
func connectStore(cfg *config.Config) (repository.RecordRepository, repository.SessionRepository) {
	switch cfg.StoreBackend {
	case config.StoreSheet:
		client, err := repository.NewSheetClient(cfg.SheetAPIURL, cfg.SheetAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize sheet store: %v", err)
		}
		log.Printf("Using sheet-bridge store (%s / %s)", cfg.SheetInventoryName, cfg.SheetHistoryName)
		return repository.NewSheetRecordRepository(client, cfg.SheetInventoryName),
			repository.NewSheetSessionRepository(client, cfg.SheetHistoryName)

	default:
		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.InitDB(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := db.ConnectGormDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database with GORM: %v", err)
		}
		if err := db.AutoMigrateModels(&model.ListeningSession{}); err != nil {
			log.Fatalf("Failed to migrate models: %v", err)
		}
		return repository.NewMySQLRecordRepository(db.DB),
			repository.NewGormSessionRepository(db.GormDB)
	}
}
