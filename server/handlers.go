package server

import (
	"encoding/json"
	"net/http"
	"time"

	"VinylFM/config"
	"VinylFM/core/cover"
	"VinylFM/core/discogs"
	"VinylFM/logger"
	"VinylFM/repository"
)

// APIHandler carries every collaborator the HTTP layer needs: the two
// repositories, the catalog client and the optional cover archiver.
type APIHandler struct {
	recordRepo  repository.RecordRepository
	sessionRepo repository.SessionRepository
	catalog     *discogs.Client
	archiver    *cover.Archiver // nil when MinIO is not configured
	hub         *Hub
	cacheTTL    time.Duration
	cfg         *config.Config
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(
	recordRepo repository.RecordRepository,
	sessionRepo repository.SessionRepository,
	catalog *discogs.Client,
	archiver *cover.Archiver,
	hub *Hub,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		recordRepo:  recordRepo,
		sessionRepo: sessionRepo,
		catalog:     catalog,
		archiver:    archiver,
		hub:         hub,
		cacheTTL:    time.Duration(cfg.CacheTTLSecs) * time.Second,
		cfg:         cfg,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
