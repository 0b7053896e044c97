package shops

import (
	"context"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
)

// Stock bands shown to buyers instead of raw quantities.
const (
	StockBandInStock  = "in_stock"
	StockBandLowStock = "low_stock"
	StockBandSoldOut  = "sold_out"

	lowStockThreshold = 10
)

// Listing is a sellable card with its buyer-facing stock band.
type Listing struct {
	ShopID       uuid.UUID `json:"shop_id"`
	ShopName     string    `json:"shop_name"`
	CardID       uuid.UUID `json:"card_id"`
	CardName     string    `json:"card_name"`
	Expansion    string    `json:"expansion"`
	Rarity       string    `json:"rarity"`
	PriceCents   int       `json:"price_cents"`
	AvailableQty int       `json:"available_qty"`
	StockBand    string    `json:"stock_band"`
}

// ShopDetail is a shop with everything it sells.
type ShopDetail struct {
	Shop     models.Shop `json:"shop"`
	Listings []Listing   `json:"listings"`
}

// Service exposes shop browsing.
type Service interface {
	List(ctx context.Context) ([]models.Shop, error)
	Get(ctx context.Context, shopID uuid.UUID) (*ShopDetail, error)
	ListingsForCard(ctx context.Context, cardID uuid.UUID) ([]Listing, error)
}

type service struct {
	repo Repository
}

// NewService builds the shop browsing service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "shops repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Shop, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, shopID uuid.UUID) (*ShopDetail, error) {
	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListListings(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return &ShopDetail{Shop: *shop, Listings: toListings(rows)}, nil
}

func (s *service) ListingsForCard(ctx context.Context, cardID uuid.UUID) ([]Listing, error) {
	rows, err := s.repo.ListListingsForCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return toListings(rows), nil
}

func toListings(rows []ListingRow) []Listing {
	listings := make([]Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, Listing{
			ShopID:       row.ShopID,
			ShopName:     row.ShopName,
			CardID:       row.CardID,
			CardName:     row.CardName,
			Expansion:    row.Expansion,
			Rarity:       row.Rarity,
			PriceCents:   row.PriceCents,
			AvailableQty: row.AvailableQty,
			StockBand:    bandFor(row.AvailableQty),
		})
	}
	return listings
}

func bandFor(qty int) string {
	switch {
	case qty > lowStockThreshold:
		return StockBandInStock
	case qty > 0:
		return StockBandLowStock
	default:
		return StockBandSoldOut
	}
}
