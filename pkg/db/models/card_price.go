package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardPrice is one tracked market-value point for a card.
type CardPrice struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CardID     uuid.UUID       `gorm:"column:card_id;type:uuid;not null;index"`
	Value      decimal.Decimal `gorm:"column:value;type:numeric(12,2);not null"`
	RecordedOn time.Time       `gorm:"column:recorded_on;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
