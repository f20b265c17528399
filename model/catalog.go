package model

// CatalogSearchResult is one candidate release from a catalog search. It
// only lives for the duration of the add flow; once the user picks a
// candidate and the entry is built, the result is discarded.
type CatalogSearchResult struct {
	ExternalID    int64  `json:"externalId"`
	Title         string `json:"title"` // usually "Artist - Album"
	Year          string `json:"year,omitempty"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
	Genre         string `json:"genre,omitempty"`
}

// CatalogTrack is a single track from a release detail payload.
type CatalogTrack struct {
	Title        string `json:"title"`
	DurationText string `json:"duration,omitempty"` // "M:SS" or "MM:SS", may be empty or junk
}

// ReleaseDetail is the full tracklist for one catalog release.
type ReleaseDetail struct {
	Tracks []CatalogTrack `json:"tracks"`
}
