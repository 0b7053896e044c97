package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// Service reads order history back out of deliveries and purchase records.
type Service interface {
	ListOrders(ctx context.Context, buyerID uuid.UUID) ([]Order, error)
	GetDelivery(ctx context.Context, buyerID, deliveryID uuid.UUID) (*models.Delivery, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the order history service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository is required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// ListOrders groups the buyer's purchase records by delivery, newest first.
// Each order's total is the sum of the current catalog price of every unit,
// and its status is derived from the delivery dates at read time.
func (s *service) ListOrders(ctx context.Context, buyerID uuid.UUID) ([]Order, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer is required")
	}

	rows, err := s.repo.ListPurchaseRowsByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	orders := make([]Order, 0)
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		pos, seen := index[row.DeliveryID]
		if !seen {
			pos = len(orders)
			index[row.DeliveryID] = pos
			orders = append(orders, Order{
				DeliveryID:   row.DeliveryID,
				ShippingDate: row.ShippingDate.Format(dateLayout),
				ArrivalDate:  row.ArrivalDate.Format(dateLayout),
				Status:       DeriveStatus(row.ShippingDate, row.ArrivalDate, today),
				Items:        make([]OrderItem, 0, 1),
			})
		}
		orders[pos].TotalCents += row.PriceCents
		orders[pos].Items = append(orders[pos].Items, OrderItem{
			CardID:     row.CardID,
			CardName:   row.CardName,
			ShopID:     row.ShopID,
			ShopName:   row.ShopName,
			PriceCents: row.PriceCents,
		})
	}
	return orders, nil
}

func (s *service) GetDelivery(ctx context.Context, buyerID, deliveryID uuid.UUID) (*models.Delivery, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer is required")
	}
	return s.repo.FindDeliveryForBuyer(ctx, buyerID, deliveryID)
}
