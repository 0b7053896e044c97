package models

import (
	"time"

	"github.com/google/uuid"
)

// Card is the catalog entry shared by collections, shops, and orders.
type Card struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name              string    `gorm:"column:name;not null"`
	Expansion         string    `gorm:"column:expansion;not null"`
	Rarity            string    `gorm:"column:rarity;not null"`
	CurrentPriceCents int       `gorm:"column:current_price_cents;not null;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
