package models

import (
	"time"

	"github.com/google/uuid"
)

// Delivery is created exactly once per successful checkout. Status is derived
// from the dates at read time, never stored.
type Delivery struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	BuyerID      uuid.UUID        `gorm:"column:buyer_id;type:uuid;not null;index"`
	ShippingDate time.Time        `gorm:"column:shipping_date;not null"`
	ArrivalDate  time.Time        `gorm:"column:arrival_date;not null"`
	Purchases    []PurchaseRecord `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}
