package repository

import (
	"context"

	"github.com/aegiscare/hms/internal/domain"
	"gorm.io/gorm"
)

type EntryLogRepository struct {
	db *gorm.DB
}

func NewEntryLogRepository(db *gorm.DB) *EntryLogRepository {
	return &EntryLogRepository{db: db}
}

func (r *EntryLogRepository) Create(ctx context.Context, e *domain.EntryLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EntryLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.EntryLog, error) {
	var entries []*domain.EntryLog
	err := r.db.WithContext(ctx).Order("occurred_at DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
