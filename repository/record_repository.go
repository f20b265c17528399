package repository

import (
	"context"
	"database/sql"

	"VinylFM/model"
)

// MySQLRecordRepository is the MySQL implementation of the inventory store.
type MySQLRecordRepository struct {
	db *sql.DB
}

// NewMySQLRecordRepository creates a new MySQL inventory repository.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}

// FetchAll returns the whole inventory ordered by id, which is insertion
// order since ids are creation timestamps.
func (r *MySQLRecordRepository) FetchAll(ctx context.Context) ([]*model.Record, error) {
	query := `
		SELECT id, artist, album_name, genre, year, cover_url, record_condition, duration_minutes, tracklist
		FROM inventory
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*model.Record, 0)
	for rows.Next() {
		record := &model.Record{}
		err := rows.Scan(
			&record.ID,
			&record.Artist,
			&record.AlbumName,
			&record.Genre,
			&record.Year,
			&record.CoverURL,
			&record.Condition,
			&record.DurationMinutes,
			&record.Tracklist,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Insert appends one record to the inventory.
func (r *MySQLRecordRepository) Insert(ctx context.Context, record *model.Record) error {
	query := `
		INSERT INTO inventory (id, artist, album_name, genre, year, cover_url, record_condition, duration_minutes, tracklist)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Artist,
		record.AlbumName,
		record.Genre,
		record.Year,
		record.CoverURL,
		record.Condition,
		record.DurationMinutes,
		record.Tracklist,
	)
	return err
}
