package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"VinylFM/cache"
	"VinylFM/core/record"
	"VinylFM/logger"
	"VinylFM/model"
)

// defaultSessionMinutes is logged when the UI's quick "I listened to this"
// action doesn't carry an explicit duration.
const defaultSessionMinutes = 45

func (h *APIHandler) fetchSessions(ctx context.Context) ([]*model.ListeningSession, error) {
	if sessions, ok := cache.GetCachedSessions(ctx); ok {
		return sessions, nil
	}
	sessions, err := h.sessionRepo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*model.ListeningSession{}
	}
	if err := cache.CacheSessions(ctx, sessions, h.cacheTTL); err != nil {
		logger.Debug("failed to cache history", logger.ErrorField(err))
	}
	return sessions, nil
}

// GetSessionsHandler lists the listening history.
func (h *APIHandler) GetSessionsHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.fetchSessions(r.Context())
	if err != nil {
		logger.Error("failed to fetch history", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to fetch sessions")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
	})
}

type logSessionPayload struct {
	AlbumName       string `json:"albumName"`
	DurationMinutes int    `json:"durationMinutes"`
}

// LogSessionHandler appends one listening session, stamped with the current
// time.
func (h *APIHandler) LogSessionHandler(w http.ResponseWriter, r *http.Request) {
	var payload logSessionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(payload.AlbumName) == "" {
		respondError(w, http.StatusBadRequest, "albumName is required")
		return
	}
	if payload.DurationMinutes < 0 {
		respondError(w, http.StatusBadRequest, "durationMinutes must not be negative")
		return
	}
	if payload.DurationMinutes == 0 {
		payload.DurationMinutes = defaultSessionMinutes
	}

	session := &model.ListeningSession{
		Date:            time.Now().Format(model.SessionDateLayout),
		AlbumName:       payload.AlbumName,
		DurationMinutes: payload.DurationMinutes,
	}

	if err := h.sessionRepo.Insert(r.Context(), session); err != nil {
		logger.Error("failed to insert session",
			logger.String("album", session.AlbumName), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to log session")
		return
	}

	logger.Info("listening session logged",
		logger.String("album", session.AlbumName),
		logger.Int("minutes", session.DurationMinutes))
	h.hub.BroadcastSessionLogged(session)
	respondJSON(w, http.StatusCreated, session)
}

// GetStatsHandler computes the metric panel values from the current
// inventory and history (both reads go through the time-boxed cache).
func (h *APIHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.fetchRecords(r.Context())
	if err != nil {
		logger.Error("failed to fetch inventory for stats", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	sessions, err := h.fetchSessions(r.Context())
	if err != nil {
		logger.Error("failed to fetch history for stats", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	respondJSON(w, http.StatusOK, record.ComputeStats(records, sessions))
}
