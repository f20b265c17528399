package model

// CollectionStats backs the top metric panel of the UI.
type CollectionStats struct {
	TotalRecords          int    `json:"totalRecords"`
	FavoriteGenre         string `json:"favoriteGenre"`
	TotalListeningMinutes int    `json:"totalListeningMinutes"`
	TotalListeningHours   int    `json:"totalListeningHours"`
}
