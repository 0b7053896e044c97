package checkout

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/internal/inventory"
	"github.com/tcghub/tcghub-backend/internal/orders"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"github.com/tcghub/tcghub-backend/pkg/logger"
	"github.com/tcghub/tcghub-backend/pkg/metrics"
	"gorm.io/gorm"
)

// txRunner opens a database transaction scope for a checkout attempt.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CartLine is one (card, shop) entry of the submitted cart.
type CartLine struct {
	CardID     uuid.UUID `json:"card_id" validate:"required"`
	ShopID     uuid.UUID `json:"shop_id" validate:"required"`
	ShopName   string    `json:"shop_name"`
	Quantity   int       `json:"quantity" validate:"required,min=1"`
	PriceCents int       `json:"price_cents" validate:"min=0"`
}

// Result reports a committed checkout.
type Result struct {
	DeliveryID  uuid.UUID `json:"delivery_id"`
	ArrivalDate string    `json:"arrival_date"`
	UnitCount   int       `json:"unit_count"`
}

// Service executes the checkout transaction: verify stock for every line,
// allocate a delivery, record per-unit purchases, and decrement inventory,
// all inside a single transaction that commits or rolls back as a whole.
type Service interface {
	Execute(ctx context.Context, buyerID uuid.UUID, lines []CartLine) (*Result, error)
}

type service struct {
	tx        txRunner
	inventory inventory.Repository
	orders    orders.Repository
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds the checkout coordinator.
func NewService(tx txRunner, inventoryRepo inventory.Repository, ordersRepo orders.Repository, checkoutMetrics *metrics.CheckoutMetrics, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner is required")
	}
	if inventoryRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inventory repository is required")
	}
	if ordersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository is required")
	}
	return &service{
		tx:        tx,
		inventory: inventoryRepo,
		orders:    ordersRepo,
		metrics:   checkoutMetrics,
		logg:      logg,
		now:       time.Now,
	}, nil
}

func (s *service) Execute(ctx context.Context, buyerID uuid.UUID, lines []CartLine) (*Result, error) {
	started := s.now()
	result, err := s.execute(ctx, buyerID, lines)
	s.record(ctx, started, err)
	return result, err
}

func (s *service) execute(ctx context.Context, buyerID uuid.UUID, lines []CartLine) (*Result, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer is required")
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
				WithDetails(map[string]any{"card_id": line.CardID})
		}
	}

	// Stable (shop, card) order keeps row locks deadlock-free when carts
	// overlap across concurrent checkouts.
	sorted := make([]CartLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ShopID != sorted[j].ShopID {
			return sorted[i].ShopID.String() < sorted[j].ShopID.String()
		}
		return sorted[i].CardID.String() < sorted[j].CardID.String()
	})

	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		inventoryRepo := s.inventory.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		for _, line := range sorted {
			ok, available, err := inventoryRepo.CheckAvailability(ctx, line.ShopID, line.CardID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
					WithDetails(map[string]any{
						"card_id":   line.CardID,
						"shop_id":   line.ShopID,
						"requested": line.Quantity,
						"available": available,
					})
			}
		}

		delivery := orders.BuildDelivery(buyerID, s.now())
		if err := ordersRepo.CreateDelivery(ctx, delivery); err != nil {
			return err
		}

		units := 0
		for _, line := range sorted {
			records := orders.BuildPurchaseRecords(delivery.ID, buyerID, orders.PurchaseInput{
				CardID:     line.CardID,
				ShopID:     line.ShopID,
				ShopName:   line.ShopName,
				Quantity:   line.Quantity,
				PriceCents: line.PriceCents,
			})
			if err := ordersRepo.CreatePurchaseRecords(ctx, records); err != nil {
				return err
			}
			if err := inventoryRepo.Decrement(ctx, line.ShopID, line.CardID, line.Quantity); err != nil {
				return err
			}
			units += line.Quantity
		}

		result = &Result{
			DeliveryID:  delivery.ID,
			ArrivalDate: delivery.ArrivalDate.Format("2006-01-02"),
			UnitCount:   units,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) record(ctx context.Context, started time.Time, err error) {
	elapsed := s.now().Sub(started)
	if err == nil {
		s.metrics.ObserveDuration("success", elapsed)
		s.metrics.IncSuccess()
		return
	}
	code := string(pkgerrors.CodeOf(err))
	s.metrics.ObserveDuration("failure", elapsed)
	s.metrics.IncFailure(code)
	if s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "code", code), "checkout failed")
	}
}
