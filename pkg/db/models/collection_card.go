package models

import (
	"time"

	"github.com/google/uuid"
)

// CollectionCard holds the quantity of one card within a collection.
type CollectionCard struct {
	CollectionID uuid.UUID `gorm:"column:collection_id;type:uuid;primaryKey"`
	CardID       uuid.UUID `gorm:"column:card_id;type:uuid;primaryKey"`
	Quantity     int       `gorm:"column:quantity;not null;default:1"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
