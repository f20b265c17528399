package repository

import (
	"context"

	"VinylFM/model"
)

// RecordRepository is the storage capability for the inventory. Two
// implementations exist (MySQL and the sheet bridge); one is selected at
// startup and used for the process lifetime.
type RecordRepository interface {
	// FetchAll returns the whole inventory in insertion order.
	FetchAll(ctx context.Context) ([]*model.Record, error)

	// Insert appends one record. Records are never updated in place.
	Insert(ctx context.Context, record *model.Record) error
}

// SessionRepository is the storage capability for the listening history.
type SessionRepository interface {
	// FetchAll returns all logged sessions.
	FetchAll(ctx context.Context) ([]*model.ListeningSession, error)

	// Insert appends one session.
	Insert(ctx context.Context, session *model.ListeningSession) error
}
