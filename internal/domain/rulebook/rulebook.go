package rulebook

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Rulebook is a singleton document: at most one row ever exists, created on
// first write (upsert semantics).
type Rulebook struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content   string    `gorm:"column:content;type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Rulebook) TableName() string {
	return "rules"
}

type Repository interface {
	// Get returns the rulebook, or an empty one if none has been written yet.
	Get(ctx context.Context) (*Rulebook, error)

	// Upsert replaces the singleton's content, creating it on first write.
	Upsert(ctx context.Context, content string) (*Rulebook, error)
}
