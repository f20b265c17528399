package repository

import (
	"context"

	"VinylFM/model"

	"gorm.io/gorm"
)

// GormSessionRepository is the MySQL implementation of the listening
// history, written against GORM. The inventory side stays on plain
// database/sql; both handles point at the same database.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM listening-history repository.
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FetchAll returns all logged sessions in insertion order.
func (r *GormSessionRepository) FetchAll(ctx context.Context) ([]*model.ListeningSession, error) {
	sessions := make([]*model.ListeningSession, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Insert appends one session to the history.
func (r *GormSessionRepository) Insert(ctx context.Context, session *model.ListeningSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}
