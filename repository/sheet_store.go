package repository

import (
	"bytes"
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

// SheetClient talks to the sheet-bridge API, a thin HTTP front for a
// spreadsheet: worksheets addressed by name, rows as JSON maps. One
// authenticated client is created at startup and shared.
type SheetClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewSheetClient creates a sheet-bridge client. Missing credentials are an
// error here; the caller treats that as fatal since the session cannot run
// without persistence.
func NewSheetClient(baseURL, apiKey string) (*SheetClient, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("sheet store credentials missing (SHEET_API_URL / SHEET_API_KEY)")
	}
	return &SheetClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

func (c *SheetClient) rowsURL(worksheet string) string {
	return fmt.Sprintf("%s/worksheets/%s/rows", c.BaseURL, url.PathEscape(worksheet))
}

// FetchRows returns every row of the worksheet as a key/value map.
func (c *SheetClient) FetchRows(ctx context.Context, worksheet string) ([]map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rowsURL(worksheet), nil)
	if err != nil {
		return nil, fmt.Errorf("building sheet request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("sheet store rejected credentials (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet store returned status %d", resp.StatusCode)
	}

	var result struct {
		Rows []map[string]interface{} `json:"rows"`
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding sheet response: %w", err)
	}
	return result.Rows, nil
}

// AppendRow appends one row to the worksheet.
func (c *SheetClient) AppendRow(ctx context.Context, worksheet string, row map[string]interface{}) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshaling sheet row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rowsURL(worksheet), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building sheet request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("sheet store returned status %d", resp.StatusCode)
	}
	return nil
}

// Sheet cells come back as strings or numbers depending on the column
// formatting, so row values are coerced rather than type-asserted.

func rowString(row map[string]interface{}, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func rowInt64(row map[string]interface{}, key string) int64 {
	switch v := row[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// SheetRecordRepository stores the inventory in a worksheet.
type SheetRecordRepository struct {
	client    *SheetClient
	worksheet string
}

// NewSheetRecordRepository creates an inventory repository bound to the
// given worksheet name.
func NewSheetRecordRepository(client *SheetClient, worksheet string) *SheetRecordRepository {
	return &SheetRecordRepository{client: client, worksheet: worksheet}
}

// FetchAll returns the whole inventory worksheet.
func (r *SheetRecordRepository) FetchAll(ctx context.Context) ([]*model.Record, error) {
	rows, err := r.client.FetchRows(ctx, r.worksheet)
	if err != nil {
		return nil, err
	}

	records := make([]*model.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, &model.Record{
			ID:              rowInt64(row, "ID"),
			Artist:          rowString(row, "Artist"),
			AlbumName:       rowString(row, "AlbumName"),
			Genre:           rowString(row, "Genre"),
			Year:            rowString(row, "Year"),
			CoverURL:        rowString(row, "CoverURL"),
			Condition:       model.Condition(rowString(row, "Condition")),
			DurationMinutes: int(rowInt64(row, "DurationMins")),
			Tracklist:       rowString(row, "Tracklist"),
		})
	}

	logger.Debug("[SheetRecordRepository] fetched inventory",
		logger.String("worksheet", r.worksheet), logger.Int("rows", len(records)))
	return records, nil
}

// Insert appends one record row to the worksheet.
func (r *SheetRecordRepository) Insert(ctx context.Context, record *model.Record) error {
	row := map[string]interface{}{
		"ID":           record.ID,
		"Artist":       record.Artist,
		"AlbumName":    record.AlbumName,
		"Genre":        record.Genre,
		"Year":         record.Year,
		"CoverURL":     record.CoverURL,
		"Condition":    string(record.Condition),
		"DurationMins": record.DurationMinutes,
		"Tracklist":    record.Tracklist,
	}
	return r.client.AppendRow(ctx, r.worksheet, row)
}

// SheetSessionRepository stores the listening history in a worksheet.
type SheetSessionRepository struct {
	client    *SheetClient
	worksheet string
}

// NewSheetSessionRepository creates a listening-history repository bound to
// the given worksheet name.
func NewSheetSessionRepository(client *SheetClient, worksheet string) *SheetSessionRepository {
	return &SheetSessionRepository{client: client, worksheet: worksheet}
}

// FetchAll returns the whole history worksheet.
func (r *SheetSessionRepository) FetchAll(ctx context.Context) ([]*model.ListeningSession, error) {
	rows, err := r.client.FetchRows(ctx, r.worksheet)
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.ListeningSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, &model.ListeningSession{
			Date:            rowString(row, "Date"),
			AlbumName:       rowString(row, "AlbumName"),
			DurationMinutes: int(rowInt64(row, "DurationMins")),
		})
	}
	return sessions, nil
}

// Insert appends one session row to the worksheet.
func (r *SheetSessionRepository) Insert(ctx context.Context, session *model.ListeningSession) error {
	row := map[string]interface{}{
		"Date":         session.Date,
		"AlbumName":    session.AlbumName,
		"DurationMins": session.DurationMinutes,
	}
	return r.client.AppendRow(ctx, r.worksheet, row)
}
