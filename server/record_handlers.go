package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"VinylFM/cache"
	"VinylFM/core/record"
	"VinylFM/logger"
	"VinylFM/model"
)

// fetchRecords is the time-boxed read path for the inventory: cache hit if
// fresh, otherwise the backing store, then re-memoize.
func (h *APIHandler) fetchRecords(ctx context.Context) ([]*model.Record, error) {
	if records, ok := cache.GetCachedRecords(ctx); ok {
		return records, nil
	}
	records, err := h.recordRepo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*model.Record{}
	}
	if err := cache.CacheRecords(ctx, records, h.cacheTTL); err != nil {
		logger.Debug("failed to cache inventory", logger.ErrorField(err))
	}
	return records, nil
}

// GetRecordsHandler lists the inventory, optionally narrowed by
// ?genre=a,b (membership) and ?q= (substring over album/artist).
func (h *APIHandler) GetRecordsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.fetchRecords(r.Context())
	if err != nil {
		logger.Error("failed to fetch inventory", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to fetch records")
		return
	}

	var genres []string
	if raw := r.URL.Query().Get("genre"); raw != "" {
		genres = strings.Split(raw, ",")
	}
	query := r.URL.Query().Get("q")

	filtered := record.Filter(records, genres, query)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records": filtered,
		"total":   len(records),
	})
}

type overridesPayload struct {
	Artist          string          `json:"artist"`
	AlbumName       string          `json:"albumName"`
	Genre           string          `json:"genre"`
	Year            string          `json:"year"`
	CoverURL        string          `json:"coverUrl"`
	Condition       model.Condition `json:"condition"`
	DurationMinutes *int            `json:"durationMinutes"`
	Tracklist       *string         `json:"tracklist"`
}

func (p overridesPayload) toOverrides() record.Overrides {
	return record.Overrides{
		Artist:          p.Artist,
		AlbumName:       p.AlbumName,
		Genre:           p.Genre,
		Year:            p.Year,
		CoverURL:        p.CoverURL,
		Condition:       p.Condition,
		DurationMinutes: p.DurationMinutes,
		Tracklist:       p.Tracklist,
	}
}

// AddRecordHandler adds a record with manually entered fields. Internally it
// runs the same entry builder as the catalog flow, with no candidate and no
// tracklist.
func (h *APIHandler) AddRecordHandler(w http.ResponseWriter, r *http.Request) {
	var payload overridesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := record.BuildEntry(model.CatalogSearchResult{}, nil, payload.toOverrides())
	if err != nil {
		if record.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to build record")
		return
	}

	if err := h.recordRepo.Insert(r.Context(), entry); err != nil {
		logger.Error("failed to insert record",
			logger.Int64("id", entry.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	logger.Info("record added",
		logger.Int64("id", entry.ID),
		logger.String("artist", entry.Artist),
		logger.String("album", entry.AlbumName))
	h.hub.BroadcastRecordAdded(entry)
	respondJSON(w, http.StatusCreated, entry)
}

type fromCatalogPayload struct {
	Candidate model.CatalogSearchResult `json:"candidate"`
	Overrides overridesPayload          `json:"overrides"`
}

// AddRecordFromCatalogHandler completes the add-via-catalog flow: fetch the
// release detail for the selected candidate, build the entry, archive the
// cover when possible, insert. A catalog failure here degrades to an empty
// tracklist; the save itself still goes through.
func (h *APIHandler) AddRecordFromCatalogHandler(w http.ResponseWriter, r *http.Request) {
	var payload fromCatalogPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Candidate.ExternalID == 0 {
		respondError(w, http.StatusBadRequest, "candidate.externalId is required")
		return
	}

	detail, err := h.catalog.GetRelease(r.Context(), payload.Candidate.ExternalID)
	if err != nil {
		// Soft fallback per the catalog contract: build from an empty
		// tracklist rather than failing the save.
		logger.Warn("release detail unavailable, saving without tracklist",
			logger.Int64("release_id", payload.Candidate.ExternalID), logger.ErrorField(err))
		detail = &model.ReleaseDetail{}
	}

	entry, err := record.BuildEntry(payload.Candidate, detail, payload.Overrides.toOverrides())
	if err != nil {
		if record.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to build record")
		return
	}

	if h.archiver != nil && entry.CoverURL != "" {
		if archived, err := h.archiver.Archive(r.Context(), entry.ID, entry.CoverURL); err == nil {
			entry.CoverURL = archived
		} else {
			logger.Debug("cover archive skipped", logger.ErrorField(err))
		}
	}

	if err := h.recordRepo.Insert(r.Context(), entry); err != nil {
		logger.Error("failed to insert record",
			logger.Int64("id", entry.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	logger.Info("record added from catalog",
		logger.Int64("id", entry.ID),
		logger.Int64("release_id", payload.Candidate.ExternalID),
		logger.String("album", entry.AlbumName))
	h.hub.BroadcastRecordAdded(entry)
	respondJSON(w, http.StatusCreated, entry)
}
