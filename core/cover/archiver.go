package cover

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"VinylFM/logger"
	"VinylFM/storage"
)

// maxCoverBytes bounds how much image data a single archive pulls in.
const maxCoverBytes = 10 << 20

// Archiver mirrors remote cover images into the MinIO bucket so the gallery
// doesn't depend on catalog CDN URLs staying alive.
type Archiver struct {
	Bucket     string
	HTTPClient *http.Client
}

// NewArchiver creates a cover archiver writing into the given bucket.
func NewArchiver(bucket string) *Archiver {
	return &Archiver{
		Bucket: bucket,
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Archive downloads the cover at coverURL and stores it as
// covers/<recordID>.jpg, returning the locally served path. Archiving is
// best effort: on any failure the caller keeps the original remote URL.
func (a *Archiver) Archive(ctx context.Context, recordID int64, coverURL string) (string, error) {
	if storage.GetMinioClient() == nil {
		return "", fmt.Errorf("cover archive not configured")
	}
	if !strings.HasPrefix(coverURL, "http") {
		return "", fmt.Errorf("cover URL is not remote: %q", coverURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return "", fmt.Errorf("building cover request: %w", err)
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cover download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverBytes))
	if err != nil {
		return "", fmt.Errorf("reading cover body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectName := fmt.Sprintf("covers/%d.jpg", recordID)
	if err := storage.PutObject(ctx, a.Bucket, objectName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("storing cover: %w", err)
	}

	logger.Info("[Archive] cover stored",
		logger.Int64("record_id", recordID), logger.Int("bytes", len(data)))
	return "/static/" + objectName, nil
}
