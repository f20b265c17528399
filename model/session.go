package model

// SessionDateLayout is the timestamp format stored with a listening session.
const SessionDateLayout = "2006-01-02 15:04"

// ListeningSession is one logged listening event. Sessions are append-only
// and never edited after the fact.
type ListeningSession struct {
	ID              int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	Date            string `json:"date" gorm:"size:20"`
	AlbumName       string `json:"albumName" gorm:"size:255"`
	DurationMinutes int    `json:"durationMinutes"`
}

// TableName maps ListeningSession onto the listening history table.
func (ListeningSession) TableName() string {
	return "listening_history"
}
