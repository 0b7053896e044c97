package shops

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"gorm.io/gorm"
)

// ListingRow is one card a shop currently sells, joined with the catalog.
type ListingRow struct {
	ShopID       uuid.UUID
	ShopName     string
	CardID       uuid.UUID
	CardName     string
	Expansion    string
	Rarity       string
	PriceCents   int
	AvailableQty int
}

// Repository reads shops and their sellable inventory.
type Repository interface {
	List(ctx context.Context) ([]models.Shop, error)
	FindByID(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	ListListings(ctx context.Context, shopID uuid.UUID) ([]ListingRow, error)
	ListListingsForCard(ctx context.Context, cardID uuid.UUID) ([]ListingRow, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shops repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).Order("name ASC").Find(&shops).Error
	if err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *repository) FindByID(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).Where("id = ?", shopID).First(&shop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, err
	}
	return &shop, nil
}

func (r *repository) ListListings(ctx context.Context, shopID uuid.UUID) ([]ListingRow, error) {
	return r.listingQuery(ctx).
		Where("ie.shop_id = ?", shopID).
		scan()
}

// ListListingsForCard returns every shop selling the card, cheapest first.
func (r *repository) ListListingsForCard(ctx context.Context, cardID uuid.UUID) ([]ListingRow, error) {
	return r.listingQuery(ctx).
		Where("ie.card_id = ?", cardID).
		scanByPrice()
}

type listingQuery struct {
	query *gorm.DB
}

func (r *repository) listingQuery(ctx context.Context) *listingQuery {
	return &listingQuery{
		query: r.db.WithContext(ctx).
			Table("inventory_entries AS ie").
			Select(`ie.shop_id,
				s.name AS shop_name,
				ie.card_id,
				c.name AS card_name,
				c.expansion,
				c.rarity,
				c.current_price_cents AS price_cents,
				ie.available_qty`).
			Joins("JOIN shops s ON s.id = ie.shop_id").
			Joins("JOIN cards c ON c.id = ie.card_id"),
	}
}

func (q *listingQuery) Where(condition string, args ...any) *listingQuery {
	q.query = q.query.Where(condition, args...)
	return q
}

func (q *listingQuery) scan() ([]ListingRow, error) {
	var rows []ListingRow
	err := q.query.Order("c.name ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (q *listingQuery) scanByPrice() ([]ListingRow, error) {
	var rows []ListingRow
	err := q.query.Order("c.current_price_cents ASC, s.name ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
