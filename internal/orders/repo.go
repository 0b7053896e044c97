package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"gorm.io/gorm"
)

// PurchaseRow is the flattened join of a purchase record with its delivery
// and the current card catalog entry.
type PurchaseRow struct {
	DeliveryID   uuid.UUID
	ShippingDate time.Time
	ArrivalDate  time.Time
	CardID       uuid.UUID
	CardName     string
	ShopID       uuid.UUID
	ShopName     string
	PriceCents   int
}

// Repository persists deliveries and purchase records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateDelivery(ctx context.Context, delivery *models.Delivery) error
	CreatePurchaseRecords(ctx context.Context, records []models.PurchaseRecord) error
	ListPurchaseRowsByBuyer(ctx context.Context, buyerID uuid.UUID) ([]PurchaseRow, error)
	FindDeliveryForBuyer(ctx context.Context, buyerID, deliveryID uuid.UUID) (*models.Delivery, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateDelivery(ctx context.Context, delivery *models.Delivery) error {
	if delivery == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery required")
	}
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *repository) CreatePurchaseRecords(ctx context.Context, records []models.PurchaseRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

// ListPurchaseRowsByBuyer returns every purchased unit for the buyer joined
// with delivery dates and the card's current price, newest delivery first.
func (r *repository) ListPurchaseRowsByBuyer(ctx context.Context, buyerID uuid.UUID) ([]PurchaseRow, error) {
	var rows []PurchaseRow
	err := r.db.WithContext(ctx).
		Table("purchase_records AS pr").
		Select(`pr.delivery_id,
			d.shipping_date,
			d.arrival_date,
			pr.card_id,
			c.name AS card_name,
			pr.shop_id,
			pr.shop_name,
			c.current_price_cents AS price_cents`).
		Joins("JOIN deliveries d ON d.id = pr.delivery_id").
		Joins("JOIN cards c ON c.id = pr.card_id").
		Where("pr.buyer_id = ?", buyerID).
		Order("d.shipping_date DESC, d.created_at DESC, pr.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindDeliveryForBuyer(ctx context.Context, buyerID, deliveryID uuid.UUID) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.WithContext(ctx).
		Preload("Purchases").
		Where("id = ? AND buyer_id = ?", deliveryID, buyerID).
		First(&delivery).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
		}
		return nil, err
	}
	return &delivery, nil
}
