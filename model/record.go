package model

// Condition describes the physical state of a record.
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
	ConditionMint Condition = "Mint"
	ConditionFair Condition = "Fair"
)

// ValidCondition reports whether c is one of the known condition values.
func ValidCondition(c Condition) bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionMint, ConditionFair:
		return true
	}
	return false
}

// Record is one vinyl record in the collection inventory.
//
// ID is the Unix timestamp (whole seconds) of the moment the record was
// built. Two inserts inside the same second collide; that is an accepted
// limitation of the scheme, not coordinated away.
type Record struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Artist          string    `json:"artist" gorm:"size:255"`
	AlbumName       string    `json:"albumName" gorm:"size:255"`
	Genre           string    `json:"genre" gorm:"size:100"`
	Year            string    `json:"year" gorm:"size:10"`
	CoverURL        string    `json:"coverUrl" gorm:"size:512"`
	Condition       Condition `json:"condition" gorm:"column:record_condition;size:10"`
	DurationMinutes int       `json:"durationMinutes"`
	Tracklist       string    `json:"tracklist" gorm:"type:text"`
}

// TableName maps Record onto the inventory table.
func (Record) TableName() string {
	return "inventory"
}
