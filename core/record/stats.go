package record

import "VinylFM/model"

// ComputeStats derives the metric panel values from the full inventory and
// listening history.
func ComputeStats(records []*model.Record, sessions []*model.ListeningSession) model.CollectionStats {
	stats := model.CollectionStats{
		TotalRecords:  len(records),
		FavoriteGenre: "-",
	}

	// Favorite genre is the mode; ties break on first appearance order.
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if r.Genre == "" {
			continue
		}
		if _, seen := counts[r.Genre]; !seen {
			order = append(order, r.Genre)
		}
		counts[r.Genre]++
	}
	best := 0
	for _, g := range order {
		if counts[g] > best {
			best = counts[g]
			stats.FavoriteGenre = g
		}
	}

	for _, s := range sessions {
		stats.TotalListeningMinutes += s.DurationMinutes
	}
	stats.TotalListeningHours = stats.TotalListeningMinutes / 60

	return stats
}
