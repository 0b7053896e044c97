package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the stock ledger for (shop, card) inventory entries. It is
// the source of truth consulted and mutated during checkout.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CheckAvailability(ctx context.Context, shopID, cardID uuid.UUID, qty int) (bool, int, error)
	Decrement(ctx context.Context, shopID, cardID uuid.UUID, qty int) error
	Upsert(ctx context.Context, entry *models.InventoryEntry) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// CheckAvailability reads the entry under the enclosing transaction. On
// Postgres the row is locked (SELECT ... FOR UPDATE) so a concurrent checkout
// cannot pass the same check for the last units of stock.
func (r *repository) CheckAvailability(ctx context.Context, shopID, cardID uuid.UUID, qty int) (bool, int, error) {
	if qty < 1 {
		return false, 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	query := r.db.WithContext(ctx)
	if query.Dialector.Name() == "postgres" {
		// sqlite (tests) has no FOR UPDATE; its writer lock serializes anyway
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var entry models.InventoryEntry
	err := query.
		Where("shop_id = ? AND card_id = ?", shopID, cardID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, pkgerrors.New(pkgerrors.CodeNotFound, "inventory entry not found")
		}
		return false, 0, err
	}
	return entry.AvailableQty >= qty, entry.AvailableQty, nil
}

// Decrement reduces the available quantity by qty in a single conditional
// update. The available_qty >= qty guard runs atomically with the write, so
// the quantity can never go negative.
func (r *repository) Decrement(ctx context.Context, shopID, cardID uuid.UUID, qty int) error {
	if qty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	result := r.db.WithContext(ctx).
		Model(&models.InventoryEntry{}).
		Where("shop_id = ? AND card_id = ? AND available_qty >= ?", shopID, cardID, qty).
		UpdateColumn("available_qty", gorm.Expr("available_qty - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var entry models.InventoryEntry
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND card_id = ?", shopID, cardID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory entry not found")
	}
	if err != nil {
		return err
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
		WithDetails(map[string]any{"card_id": cardID, "available": entry.AvailableQty})
}

// Upsert creates or replaces the quantity for a (shop, card) entry. Used by
// shop management, never by checkout.
func (r *repository) Upsert(ctx context.Context, entry *models.InventoryEntry) error {
	if entry == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "inventory entry required")
	}
	if entry.AvailableQty < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "available quantity cannot be negative")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop_id"}, {Name: "card_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"available_qty"}),
		}).
		Create(entry).Error
}
