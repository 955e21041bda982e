package repository

import (
	"context"
	"errors"

	"github.com/aegiscare/hms/internal/domain/rulebook"
	"gorm.io/gorm"
)

type RulebookRepository struct {
	db *gorm.DB
}

func NewRulebookRepository(db *gorm.DB) *RulebookRepository {
	return &RulebookRepository{db: db}
}

var _ rulebook.Repository = (*RulebookRepository)(nil)

func (r *RulebookRepository) Get(ctx context.Context) (*rulebook.Rulebook, error) {
	var rb rulebook.Rulebook
	err := r.db.WithContext(ctx).First(&rb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &rulebook.Rulebook{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &rb, nil
}

// Upsert keeps the rulebook a singleton: the first write creates the row,
// every later write updates it in place.
func (r *RulebookRepository) Upsert(ctx context.Context, content string) (*rulebook.Rulebook, error) {
	var rb rulebook.Rulebook
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&rb).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rb = rulebook.Rulebook{Content: content}
			return tx.Create(&rb).Error
		}
		if err != nil {
			return err
		}
		rb.Content = content
		return tx.Model(&rb).Update("content", content).Error
	})
	if err != nil {
		return nil, err
	}
	return &rb, nil
}
