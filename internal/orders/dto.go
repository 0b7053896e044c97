package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	"github.com/tcghub/tcghub-backend/pkg/enums"
)

// deliveryLeadDays is the gap between shipping and arrival.
const deliveryLeadDays = 5

// PurchaseInput is one cart line the checkout coordinator hands over for
// recording. Quantity N expands into N purchase records.
type PurchaseInput struct {
	CardID     uuid.UUID
	ShopID     uuid.UUID
	ShopName   string
	Quantity   int
	PriceCents int
}

// OrderItem is one purchased unit inside an order summary.
type OrderItem struct {
	CardID     uuid.UUID `json:"card_id"`
	CardName   string    `json:"card_name"`
	ShopID     uuid.UUID `json:"shop_id"`
	ShopName   string    `json:"shop_name"`
	PriceCents int       `json:"price_cents"`
}

// Order is one delivery with its purchased units, as returned by the order
// history reader. TotalCents is priced from the current card catalog, not
// from the amounts paid at checkout.
type Order struct {
	DeliveryID   uuid.UUID         `json:"delivery_id"`
	ShippingDate string            `json:"shipping_date"`
	ArrivalDate  string            `json:"arrival_date"`
	Status       enums.OrderStatus `json:"status"`
	TotalCents   int               `json:"total_cents"`
	Items        []OrderItem       `json:"items"`
}

// BuildDelivery allocates a delivery for a checkout happening at now.
// Shipping is the checkout date and arrival follows after the lead time.
func BuildDelivery(buyerID uuid.UUID, now time.Time) *models.Delivery {
	shipping := truncateToDate(now)
	return &models.Delivery{
		ID:           uuid.New(),
		BuyerID:      buyerID,
		ShippingDate: shipping,
		ArrivalDate:  shipping.AddDate(0, 0, deliveryLeadDays),
	}
}

// BuildPurchaseRecords expands one cart line into per-unit records tied to
// the delivery.
func BuildPurchaseRecords(deliveryID, buyerID uuid.UUID, input PurchaseInput) []models.PurchaseRecord {
	records := make([]models.PurchaseRecord, 0, input.Quantity)
	for i := 0; i < input.Quantity; i++ {
		records = append(records, models.PurchaseRecord{
			ID:         uuid.New(),
			DeliveryID: deliveryID,
			BuyerID:    buyerID,
			CardID:     input.CardID,
			ShopID:     input.ShopID,
			ShopName:   input.ShopName,
			PriceCents: input.PriceCents,
		})
	}
	return records
}

// DeriveStatus maps delivery dates to a lifecycle phase relative to today.
// Comparison is by calendar date: the order ships the day after checkout and
// is delivered the day after arrival.
func DeriveStatus(shippingDate, arrivalDate, today time.Time) enums.OrderStatus {
	day := truncateToDate(today)
	if day.After(truncateToDate(arrivalDate)) {
		return enums.OrderStatusDelivered
	}
	if day.After(truncateToDate(shippingDate)) {
		return enums.OrderStatusInTransit
	}
	return enums.OrderStatusProcessing
}

func truncateToDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
