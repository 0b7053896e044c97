package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryEntry tracks the sellable quantity per (shop, card).
// AvailableQty never goes negative; the checkout coordinator is the only
// writer during purchases.
type InventoryEntry struct {
	ShopID       uuid.UUID `gorm:"column:shop_id;type:uuid;primaryKey"`
	CardID       uuid.UUID `gorm:"column:card_id;type:uuid;primaryKey"`
	AvailableQty int       `gorm:"column:available_qty;not null;default:0"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
