package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRecord is one purchased unit. A cart line with quantity N produces
// N records tied to the same delivery; rows are immutable after checkout.
type PurchaseRecord struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"column:delivery_id;type:uuid;not null;index"`
	BuyerID    uuid.UUID `gorm:"column:buyer_id;type:uuid;not null;index"`
	CardID     uuid.UUID `gorm:"column:card_id;type:uuid;not null"`
	ShopID     uuid.UUID `gorm:"column:shop_id;type:uuid;not null"`
	ShopName   string    `gorm:"column:shop_name;not null"`
	PriceCents int       `gorm:"column:price_cents;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
