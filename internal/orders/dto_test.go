package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/enums"
)

func TestBuildDelivery(t *testing.T) {
	buyerID := uuid.New()
	now := time.Date(2026, 3, 10, 15, 42, 7, 0, time.UTC)

	delivery := BuildDelivery(buyerID, now)

	if delivery.ID == uuid.Nil {
		t.Fatal("expected generated delivery id")
	}
	if delivery.BuyerID != buyerID {
		t.Fatalf("expected buyer %s, got %s", buyerID, delivery.BuyerID)
	}
	if got := delivery.ShippingDate.Format(dateLayout); got != "2026-03-10" {
		t.Fatalf("expected shipping date 2026-03-10, got %s", got)
	}
	if got := delivery.ArrivalDate.Format(dateLayout); got != "2026-03-15" {
		t.Fatalf("expected arrival date 2026-03-15, got %s", got)
	}
}

func TestBuildDeliveryUniqueIDs(t *testing.T) {
	buyerID := uuid.New()
	now := time.Now()

	first := BuildDelivery(buyerID, now)
	second := BuildDelivery(buyerID, now)
	if first.ID == second.ID {
		t.Fatal("deliveries created at the same instant must not share ids")
	}
}

func TestBuildPurchaseRecordsExpandsQuantity(t *testing.T) {
	deliveryID := uuid.New()
	buyerID := uuid.New()
	input := PurchaseInput{
		CardID:     uuid.New(),
		ShopID:     uuid.New(),
		ShopName:   "Mint Condition",
		Quantity:   3,
		PriceCents: 499,
	}

	records := BuildPurchaseRecords(deliveryID, buyerID, input)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	seen := make(map[uuid.UUID]bool)
	for _, record := range records {
		if seen[record.ID] {
			t.Fatal("purchase records must have distinct ids")
		}
		seen[record.ID] = true
		if record.DeliveryID != deliveryID || record.BuyerID != buyerID {
			t.Fatal("record must reference the delivery and buyer")
		}
		if record.ShopName != input.ShopName || record.PriceCents != input.PriceCents {
			t.Fatalf("unexpected record %+v", record)
		}
	}
}

func TestDeriveStatus(t *testing.T) {
	shipping := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	arrival := shipping.AddDate(0, 0, 5)

	cases := []struct {
		name  string
		today time.Time
		want  enums.OrderStatus
	}{
		{"checkout day", shipping, enums.OrderStatusProcessing},
		{"later on checkout day", shipping.Add(23 * time.Hour), enums.OrderStatusProcessing},
		{"day after shipping", shipping.AddDate(0, 0, 1), enums.OrderStatusInTransit},
		{"arrival day", arrival, enums.OrderStatusInTransit},
		{"day after arrival", arrival.AddDate(0, 0, 1), enums.OrderStatusDelivered},
		{"long after arrival", arrival.AddDate(0, 1, 0), enums.OrderStatusDelivered},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveStatus(shipping, arrival, tc.today); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
