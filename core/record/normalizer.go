package record

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"VinylFM/logger"
	"VinylFM/model"
)

const (
	// UnknownArtist is used when a catalog title carries no artist part.
	UnknownArtist = "Unknown Artist"
	// UnknownGenre is used when the catalog result carries no genre.
	UnknownGenre = "Unknown Genre"

	tracklistDelimiter = " | "
	artistSeparator    = " - "
)

// durationPattern accepts "M:SS" and "MM:SS" (and longer minute runs);
// seconds are exactly two digits.
var durationPattern = regexp.MustCompile(`^(\d+):(\d{2})$`)

// ValidationError reports a required field missing on an entry about to be
// persisted. It blocks the single save action and nothing else.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record validation: %s must not be empty", e.Field)
}

// IsValidation reports whether err is a record validation failure.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// DeriveDuration sums the playable time of the tracklist and returns whole
// minutes, fractional seconds discarded. Tracks with missing or malformed
// duration text contribute zero; a bad entry never aborts the aggregation.
func DeriveDuration(tracks []model.CatalogTrack) int {
	totalSeconds := 0
	for _, t := range tracks {
		m := durationPattern.FindStringSubmatch(t.DurationText)
		if m == nil {
			if t.DurationText != "" {
				logger.Debug("[DeriveDuration] skipping malformed duration",
					logger.String("title", t.Title), logger.String("duration", t.DurationText))
			}
			continue
		}
		minutes, minErr := strconv.Atoi(m[1])
		seconds, secErr := strconv.Atoi(m[2])
		if minErr != nil || secErr != nil {
			logger.Debug("[DeriveDuration] skipping malformed duration",
				logger.String("title", t.Title), logger.String("duration", t.DurationText))
			continue
		}
		totalSeconds += minutes*60 + seconds
	}
	return totalSeconds / 60
}

// DeriveTracklist flattens the track titles into one delimited string in
// original order. Empty titles stay in as empty entries so the tracklist
// keeps positional correspondence with the duration data.
func DeriveTracklist(tracks []model.CatalogTrack) string {
	if len(tracks) == 0 {
		return ""
	}
	titles := make([]string, len(tracks))
	for i, t := range tracks {
		titles[i] = t.Title
	}
	return strings.Join(titles, tracklistDelimiter)
}

// ParseArtistAlbum splits a raw catalog title of the form "Artist - Album"
// on the first separator. Without a separator the whole title is the album.
func ParseArtistAlbum(rawTitle string) (artist, album string) {
	idx := strings.Index(rawTitle, artistSeparator)
	if idx < 0 {
		return UnknownArtist, rawTitle
	}
	return rawTitle[:idx], rawTitle[idx+len(artistSeparator):]
}

// Overrides carries the user's edits from the preview form. A non-zero
// field always wins over the derived value.
type Overrides struct {
	Artist          string
	AlbumName       string
	Genre           string
	Year            string
	CoverURL        string
	Condition       model.Condition
	DurationMinutes *int
	Tracklist       *string
}

// BuildEntry merges a selected search candidate, its release detail and the
// user's edits into a persistable Record. The generated id is the current
// Unix time in whole seconds; rapid successive calls within one second
// collide, which callers must tolerate or detect.
//
// The Unknown Artist fallback applies only to real catalog titles lacking a
// separator. A blank candidate title contributes no artist or album at all,
// so a manual add must supply both through the overrides.
func BuildEntry(candidate model.CatalogSearchResult, detail *model.ReleaseDetail, overrides Overrides) (*model.Record, error) {
	var tracks []model.CatalogTrack
	if detail != nil {
		tracks = detail.Tracks
	}

	var artist, album string
	if candidate.Title != "" {
		artist, album = ParseArtistAlbum(candidate.Title)
	}
	genre := candidate.Genre
	if genre == "" {
		genre = UnknownGenre
	}

	entry := &model.Record{
		ID:              time.Now().Unix(),
		Artist:          artist,
		AlbumName:       album,
		Genre:           genre,
		Year:            candidate.Year,
		CoverURL:        candidate.CoverImageURL,
		Condition:       model.ConditionUsed,
		DurationMinutes: DeriveDuration(tracks),
		Tracklist:       DeriveTracklist(tracks),
	}

	if overrides.Artist != "" {
		entry.Artist = overrides.Artist
	}
	if overrides.AlbumName != "" {
		entry.AlbumName = overrides.AlbumName
	}
	if overrides.Genre != "" {
		entry.Genre = overrides.Genre
	}
	if overrides.Year != "" {
		entry.Year = overrides.Year
	}
	if overrides.CoverURL != "" {
		entry.CoverURL = overrides.CoverURL
	}
	if overrides.Condition != "" {
		entry.Condition = overrides.Condition
	}
	if overrides.DurationMinutes != nil {
		entry.DurationMinutes = *overrides.DurationMinutes
	}
	if overrides.Tracklist != nil {
		entry.Tracklist = *overrides.Tracklist
	}

	if strings.TrimSpace(entry.Artist) == "" {
		return nil, &ValidationError{Field: "artist"}
	}
	if strings.TrimSpace(entry.AlbumName) == "" {
		return nil, &ValidationError{Field: "albumName"}
	}
	if !model.ValidCondition(entry.Condition) {
		return nil, &ValidationError{Field: "condition"}
	}
	if entry.DurationMinutes < 0 {
		entry.DurationMinutes = 0
	}

	return entry, nil
}
