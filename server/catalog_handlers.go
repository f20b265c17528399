package server

import (
	"net/http"
	"strconv"
	"strings"

	"VinylFM/core/discogs"
	"VinylFM/core/record"
	"VinylFM/logger"
	"VinylFM/model"

	"github.com/gorilla/mux"
)

// catalogNotice turns a catalog failure into the diagnostic the UI shows
// next to an empty result list.
func catalogNotice(err error) string {
	switch {
	case discogs.IsAuth(err):
		return "Catalog lookup unavailable: no valid catalog token configured."
	case discogs.IsTransport(err):
		return "Catalog lookup failed: the catalog service could not be reached."
	default:
		return "Catalog lookup failed."
	}
}

// SearchCatalogHandler runs a free-text catalog search. Catalog failures
// are downgraded to 200 with empty results plus a notice; the add flow is
// always recoverable by searching again.
func (h *APIHandler) SearchCatalogHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	results, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		logger.Warn("catalog search degraded",
			logger.String("query", query), logger.ErrorField(err))
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"results": []model.CatalogSearchResult{},
			"notice":  catalogNotice(err),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}

// releasePreview is the editable preview derived from a release detail and
// the candidate's raw title.
type releasePreview struct {
	Artist          string `json:"artist"`
	Album           string `json:"album"`
	DurationMinutes int    `json:"durationMinutes"`
	Tracklist       string `json:"tracklist"`
	TrackCount      int    `json:"trackCount"`
}

// GetReleaseHandler fetches one release and derives the preview fields the
// add form is seeded with. The candidate's raw title comes in as ?title= and
// is split into artist/album locally, so those fields survive even when the
// catalog fetch itself degrades to an empty preview.
func (h *APIHandler) GetReleaseHandler(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	releaseID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || releaseID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid release id")
		return
	}

	preview := releasePreview{}
	if title := strings.TrimSpace(r.URL.Query().Get("title")); title != "" {
		preview.Artist, preview.Album = record.ParseArtistAlbum(title)
	}

	detail, err := h.catalog.GetRelease(r.Context(), releaseID)
	if err != nil {
		logger.Warn("release fetch degraded",
			logger.Int64("release_id", releaseID), logger.ErrorField(err))
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"preview": preview,
			"notice":  catalogNotice(err),
		})
		return
	}

	preview.DurationMinutes = record.DeriveDuration(detail.Tracks)
	preview.Tracklist = record.DeriveTracklist(detail.Tracks)
	preview.TrackCount = len(detail.Tracks)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"preview": preview,
	})
}
