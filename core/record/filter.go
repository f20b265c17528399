package record

import (
	"strings"

	"VinylFM/model"
)

// Filter narrows the inventory for the gallery view. genres is a set of
// accepted genre names (empty means all); query is matched case-insensitively
// as a substring of the album name or the artist (empty means all).
func Filter(records []*model.Record, genres []string, query string) []*model.Record {
	genreSet := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g != "" {
			genreSet[g] = struct{}{}
		}
	}
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]*model.Record, 0, len(records))
	for _, r := range records {
		if len(genreSet) > 0 {
			if _, ok := genreSet[r.Genre]; !ok {
				continue
			}
		}
		if query != "" {
			if !strings.Contains(strings.ToLower(r.AlbumName), query) &&
				!strings.Contains(strings.ToLower(r.Artist), query) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
