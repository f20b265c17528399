package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"VinylFM/config"
	"VinylFM/core/discogs"
	"VinylFM/model"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordRepo struct {
	records   []*model.Record
	insertErr error
}

func (f *fakeRecordRepo) FetchAll(ctx context.Context) ([]*model.Record, error) {
	return f.records, nil
}

func (f *fakeRecordRepo) Insert(ctx context.Context, record *model.Record) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records = append(f.records, record)
	return nil
}

type fakeSessionRepo struct {
	sessions []*model.ListeningSession
}

func (f *fakeSessionRepo) FetchAll(ctx context.Context) ([]*model.ListeningSession, error) {
	return f.sessions, nil
}

func (f *fakeSessionRepo) Insert(ctx context.Context, session *model.ListeningSession) error {
	f.sessions = append(f.sessions, session)
	return nil
}

func testHandler(records *fakeRecordRepo, sessions *fakeSessionRepo, catalog *discogs.Client) *APIHandler {
	if catalog == nil {
		catalog = discogs.NewClient("http://catalog.invalid", "")
	}
	return NewAPIHandler(records, sessions, catalog, nil, NewHub(), &config.Config{CacheTTLSecs: 60})
}

func seedRecords() *fakeRecordRepo {
	return &fakeRecordRepo{records: []*model.Record{
		{ID: 1, Artist: "Pink Floyd", AlbumName: "The Wall", Genre: "Rock"},
		{ID: 2, Artist: "Miles Davis", AlbumName: "Kind of Blue", Genre: "Jazz"},
	}}
}

func TestGetRecordsHandler(t *testing.T) {
	h := testHandler(seedRecords(), &fakeSessionRepo{}, nil)

	t.Run("lists everything", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/records", nil)
		rr := httptest.NewRecorder()
		h.GetRecordsHandler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Records []*model.Record `json:"records"`
			Total   int             `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Records, 2)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("empty store encodes an empty array", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil)
		req := httptest.NewRequest("GET", "/api/records", nil)
		rr := httptest.NewRecorder()
		h.GetRecordsHandler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"records":[]`)
	})

	t.Run("applies genre and query filters", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/records?genre=Jazz&q=blue", nil)
		rr := httptest.NewRecorder()
		h.GetRecordsHandler(rr, req)

		var resp struct {
			Records []*model.Record `json:"records"`
			Total   int             `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Records, 1)
		assert.Equal(t, "Kind of Blue", resp.Records[0].AlbumName)
		assert.Equal(t, 2, resp.Total) // total is pre-filter
	})
}

func TestAddRecordHandler(t *testing.T) {
	t.Run("manual add with defaults", func(t *testing.T) {
		repo := &fakeRecordRepo{}
		h := testHandler(repo, &fakeSessionRepo{}, nil)

		body := `{"artist": "Daft Punk", "albumName": "Discovery", "year": "2001"}`
		req := httptest.NewRequest("POST", "/api/records", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		h.AddRecordHandler(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, repo.records, 1)
		saved := repo.records[0]
		assert.Equal(t, "Daft Punk", saved.Artist)
		assert.Equal(t, "Discovery", saved.AlbumName)
		assert.Equal(t, "Unknown Genre", saved.Genre)
		assert.Equal(t, model.ConditionUsed, saved.Condition)
		assert.Greater(t, saved.ID, int64(0))
	})

	t.Run("missing artist is rejected", func(t *testing.T) {
		repo := &fakeRecordRepo{}
		h := testHandler(repo, &fakeSessionRepo{}, nil)

		body := `{"albumName": "Discovery"}`
		req := httptest.NewRequest("POST", "/api/records", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		h.AddRecordHandler(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "artist")
		assert.Empty(t, repo.records)
	})

	t.Run("missing album is rejected", func(t *testing.T) {
		repo := &fakeRecordRepo{}
		h := testHandler(repo, &fakeSessionRepo{}, nil)

		body := `{"artist": "Daft Punk"}`
		req := httptest.NewRequest("POST", "/api/records", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		h.AddRecordHandler(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, repo.records)
	})

	t.Run("garbage body is rejected", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil)
		req := httptest.NewRequest("POST", "/api/records", bytes.NewBufferString("not json"))
		rr := httptest.NewRecorder()
		h.AddRecordHandler(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

const releaseBody = `{
	"tracklist": [
		{"title": "One More Time", "duration": "5:20"},
		{"title": "Aerodynamic", "duration": "3:27"}
	]
}`

func TestAddRecordFromCatalogHandler(t *testing.T) {
	candidate := `{"externalId": 7, "title": "Daft Punk - Discovery", "year": "2001", "genre": "Electronic"}`

	t.Run("builds from release detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, releaseBody)
		}))
		defer srv.Close()

		repo := &fakeRecordRepo{}
		h := testHandler(repo, &fakeSessionRepo{}, discogs.NewClient(srv.URL, "tok"))

		body := `{"candidate": ` + candidate + `, "overrides": {"condition": "New"}}`
		req := httptest.NewRequest("POST", "/api/records/from-catalog", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		h.AddRecordFromCatalogHandler(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, repo.records, 1)
		saved := repo.records[0]
		assert.Equal(t, "Daft Punk", saved.Artist)
		assert.Equal(t, "Discovery", saved.AlbumName)
		assert.Equal(t, model.ConditionNew, saved.Condition)
		assert.Equal(t, 8, saved.DurationMinutes) // 320+207 = 527s
		assert.Equal(t, "One More Time | Aerodynamic", saved.Tracklist)
	})

	t.Run("catalog failure still saves without tracklist", func(t *testing.T) {
		repo := &fakeRecordRepo{}
		h := testHandler(repo, &fakeSessionRepo{}, nil) // tokenless catalog client

		body := `{"candidate": ` + candidate + `, "overrides": {}}`
		req := httptest.NewRequest("POST", "/api/records/from-catalog", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		h.AddRecordFromCatalogHandler(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, repo.records, 1)
		assert.Equal(t, 0, repo.records[0].DurationMinutes)
		assert.Equal(t, "", repo.records[0].Tracklist)
	})

	t.Run("missing candidate id is rejected", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil)
		body := `{"candidate": {"title": "X - Y"}, "overrides": {}}`
		req := httptest.NewRequest("POST", "/api/records/from-catalog", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		h.AddRecordFromCatalogHandler(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSearchCatalogHandler(t *testing.T) {
	t.Run("missing query", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil)
		req := httptest.NewRequest("GET", "/api/catalog/search", nil)
		rr := httptest.NewRecorder()
		h.SearchCatalogHandler(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no token degrades to empty results with notice", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil)
		req := httptest.NewRequest("GET", "/api/catalog/search?query=wall", nil)
		rr := httptest.NewRecorder()
		h.SearchCatalogHandler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Results []model.CatalogSearchResult `json:"results"`
			Notice  string                      `json:"notice"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Empty(t, resp.Results)
		assert.Contains(t, resp.Notice, "token")
	})

	t.Run("passes results through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"results": [{"id": 1, "title": "A - B", "year": "1990", "genre": ["Rock"]}]}`)
		}))
		defer srv.Close()

		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, discogs.NewClient(srv.URL, "tok"))
		req := httptest.NewRequest("GET", "/api/catalog/search?query=a", nil)
		rr := httptest.NewRecorder()
		h.SearchCatalogHandler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Results []model.CatalogSearchResult `json:"results"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "A - B", resp.Results[0].Title)
	})
}

func TestGetReleaseHandler(t *testing.T) {
	t.Run("derives the preview", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, releaseBody)
		}))
		defer srv.Close()

		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, discogs.NewClient(srv.URL, "tok"))
		req := httptest.NewRequest("GET", "/api/catalog/releases/7?title=Daft+Punk+-+Discovery", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "7"})
		rr := httptest.NewRecorder()
		h.GetReleaseHandler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Preview releasePreview `json:"preview"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Daft Punk", resp.Preview.Artist)
		assert.Equal(t, "Discovery", resp.Preview.Album)
		assert.Equal(t, 8, resp.Preview.DurationMinutes)
		assert.Equal(t, "One More Time | Aerodynamic", resp.Preview.Tracklist)
		assert.Equal(t, 2, resp.Preview.TrackCount)
	})

	t.Run("degraded fetch still seeds artist and album", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil) // tokenless catalog client
		req := httptest.NewRequest("GET", "/api/catalog/releases/7?title=Daft+Punk+-+Discovery", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "7"})
		rr := httptest.NewRecorder()
		h.GetReleaseHandler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Preview releasePreview `json:"preview"`
			Notice  string         `json:"notice"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Daft Punk", resp.Preview.Artist)
		assert.Equal(t, "Discovery", resp.Preview.Album)
		assert.Equal(t, "", resp.Preview.Tracklist)
		assert.NotEmpty(t, resp.Notice)
	})

	t.Run("invalid id", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil)
		req := httptest.NewRequest("GET", "/api/catalog/releases/zero", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "zero"})
		rr := httptest.NewRecorder()
		h.GetReleaseHandler(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetSessionsHandler(t *testing.T) {
	t.Run("empty history encodes an empty array", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil)
		req := httptest.NewRequest("GET", "/api/sessions", nil)
		rr := httptest.NewRecorder()
		h.GetSessionsHandler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"sessions":[]`)
	})
}

func TestLogSessionHandler(t *testing.T) {
	t.Run("defaults the duration", func(t *testing.T) {
		repo := &fakeSessionRepo{}
		h := testHandler(&fakeRecordRepo{}, repo, nil)

		body := `{"albumName": "The Wall"}`
		req := httptest.NewRequest("POST", "/api/sessions", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		h.LogSessionHandler(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, repo.sessions, 1)
		assert.Equal(t, defaultSessionMinutes, repo.sessions[0].DurationMinutes)
		assert.NotEmpty(t, repo.sessions[0].Date)
	})

	t.Run("missing album", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil)
		req := httptest.NewRequest("POST", "/api/sessions", bytes.NewBufferString(`{"durationMinutes": 30}`))
		rr := httptest.NewRecorder()
		h.LogSessionHandler(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("negative duration", func(t *testing.T) {
		h := testHandler(&fakeRecordRepo{}, &fakeSessionRepo{}, nil)
		req := httptest.NewRequest("POST", "/api/sessions", bytes.NewBufferString(`{"albumName": "X", "durationMinutes": -5}`))
		rr := httptest.NewRecorder()
		h.LogSessionHandler(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetStatsHandler(t *testing.T) {
	records := seedRecords()
	sessions := &fakeSessionRepo{sessions: []*model.ListeningSession{
		{AlbumName: "The Wall", DurationMinutes: 80},
		{AlbumName: "Kind of Blue", DurationMinutes: 45},
	}}
	h := testHandler(records, sessions, nil)

	req := httptest.NewRequest("GET", "/api/stats", nil)
	rr := httptest.NewRecorder()
	h.GetStatsHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var stats model.CollectionStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalRecords)
	assert.Equal(t, 125, stats.TotalListeningMinutes)
	assert.Equal(t, 2, stats.TotalListeningHours)
}
