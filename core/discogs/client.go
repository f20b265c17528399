package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"VinylFM/logger"
	"VinylFM/model"
)

const (
	// maxSearchResults caps how many candidates a search hands back to the
	// add flow, keeping the catalog's relevance ordering.
	maxSearchResults = 10

	userAgent = "VinylFM/1.0 +https://github.com/vinylfm"
)

// Client talks to the Discogs catalog. One client is created at startup and
// shared for the process lifetime. An empty token turns both operations into
// no-ops that report KindAuth without touching the network.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a catalog client for the given API base URL and token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) createRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	// Discogs rejects requests without an identifying User-Agent.
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

// Search looks the query up in the catalog, restricted to releases, and
// returns at most 10 candidates in the catalog's own ordering. Without a
// token it returns immediately with a KindAuth error and performs no I/O.
func (c *Client) Search(ctx context.Context, query string) ([]model.CatalogSearchResult, error) {
	if c.Token == "" {
		logger.Debug("[Search] no catalog token configured, skipping lookup",
			logger.String("query", query))
		return nil, &Error{Kind: KindAuth, Op: "search", Msg: "no catalog token configured"}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "release")
	params.Set("per_page", strconv.Itoa(maxSearchResults))
	params.Set("token", c.Token)

	reqURL := fmt.Sprintf("%s/database/search?%s", c.BaseURL, params.Encode())
	logger.Debug("[Search] querying catalog", logger.String("query", query))

	req, err := c.createRequest(ctx, reqURL)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "search", Msg: "building request", Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Warn("[Search] catalog request failed",
			logger.String("query", query), logger.ErrorField(err))
		return nil, &Error{Kind: KindTransport, Op: "search", Msg: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		logger.Warn("[Search] catalog rejected token", logger.Int("status", resp.StatusCode))
		return nil, &Error{Kind: KindAuth, Op: "search",
			Msg: fmt.Sprintf("catalog rejected credentials (status %d)", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindTransport, Op: "search",
			Msg: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var result struct {
		Results []struct {
			ID         int64    `json:"id"`
			Title      string   `json:"title"`
			Year       string   `json:"year"`
			CoverImage string   `json:"cover_image"`
			Genre      []string `json:"genre"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Warn("[Search] decoding catalog response failed", logger.ErrorField(err))
		return nil, &Error{Kind: KindTransport, Op: "search", Msg: "decoding response", Err: err}
	}

	out := make([]model.CatalogSearchResult, 0, len(result.Results))
	for _, r := range result.Results {
		if len(out) == maxSearchResults {
			break
		}
		genre := ""
		if len(r.Genre) > 0 {
			genre = r.Genre[0]
		}
		out = append(out, model.CatalogSearchResult{
			ExternalID:    r.ID,
			Title:         r.Title,
			Year:          r.Year,
			CoverImageURL: r.CoverImage,
			Genre:         genre,
		})
	}

	logger.Info("[Search] catalog search done",
		logger.String("query", query), logger.Int("count", len(out)))
	return out, nil
}

// GetRelease fetches the full detail for one release id. The same soft-fail
// contract as Search applies; callers treat any error as an empty tracklist.
func (c *Client) GetRelease(ctx context.Context, releaseID int64) (*model.ReleaseDetail, error) {
	if c.Token == "" {
		logger.Debug("[GetRelease] no catalog token configured, skipping lookup",
			logger.Int64("release_id", releaseID))
		return nil, &Error{Kind: KindAuth, Op: "release", Msg: "no catalog token configured"}
	}

	reqURL := fmt.Sprintf("%s/releases/%d?token=%s", c.BaseURL, releaseID, url.QueryEscape(c.Token))
	logger.Debug("[GetRelease] fetching release", logger.Int64("release_id", releaseID))

	req, err := c.createRequest(ctx, reqURL)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "release", Msg: "building request", Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Warn("[GetRelease] catalog request failed",
			logger.Int64("release_id", releaseID), logger.ErrorField(err))
		return nil, &Error{Kind: KindTransport, Op: "release", Msg: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &Error{Kind: KindAuth, Op: "release",
			Msg: fmt.Sprintf("catalog rejected credentials (status %d)", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindTransport, Op: "release",
			Msg: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var result struct {
		Tracklist []struct {
			Title    string `json:"title"`
			Duration string `json:"duration"`
		} `json:"tracklist"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Warn("[GetRelease] decoding catalog response failed",
			logger.Int64("release_id", releaseID), logger.ErrorField(err))
		return nil, &Error{Kind: KindTransport, Op: "release", Msg: "decoding response", Err: err}
	}

	detail := &model.ReleaseDetail{
		Tracks: make([]model.CatalogTrack, 0, len(result.Tracklist)),
	}
	for _, t := range result.Tracklist {
		detail.Tracks = append(detail.Tracks, model.CatalogTrack{
			Title:        t.Title,
			DurationText: t.Duration,
		})
	}

	logger.Info("[GetRelease] release fetched",
		logger.Int64("release_id", releaseID), logger.Int("tracks", len(detail.Tracks)))
	return detail, nil
}
