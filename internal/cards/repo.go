package cards

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"gorm.io/gorm"
)

// SearchFilter narrows the card catalog query. Zero values mean "no filter".
type SearchFilter struct {
	Query     string
	Expansion string
	Rarity    string
	Sort      string
	Limit     int
	Offset    int
}

// Repository reads the card catalog and market price history.
type Repository interface {
	Search(ctx context.Context, filter SearchFilter) ([]models.Card, error)
	FindByID(ctx context.Context, cardID uuid.UUID) (*models.Card, error)
	ListExpansions(ctx context.Context) ([]string, error)
	ListRarities(ctx context.Context) ([]string, error)
	PriceHistory(ctx context.Context, cardID uuid.UUID) ([]models.CardPrice, error)
	AppendPrice(ctx context.Context, price *models.CardPrice) error
	SetCurrentPrice(ctx context.Context, cardID uuid.UUID, priceCents int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cards repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const defaultSearchLimit = 50

func (r *repository) Search(ctx context.Context, filter SearchFilter) ([]models.Card, error) {
	query := r.db.WithContext(ctx).Model(&models.Card{})
	if trimmed := strings.TrimSpace(filter.Query); trimmed != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	}
	if filter.Expansion != "" {
		query = query.Where("expansion = ?", filter.Expansion)
	}
	if filter.Rarity != "" {
		query = query.Where("rarity = ?", filter.Rarity)
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("current_price_cents ASC")
	case "price_desc":
		query = query.Order("current_price_cents DESC")
	case "", "name":
		query = query.Order("name ASC")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort option").
			WithDetails(map[string]any{"sort": filter.Sort})
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultSearchLimit
	}
	query = query.Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var cards []models.Card
	if err := query.Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *repository) FindByID(ctx context.Context, cardID uuid.UUID) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Where("id = ?", cardID).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
		}
		return nil, err
	}
	return &card, nil
}

func (r *repository) ListExpansions(ctx context.Context) ([]string, error) {
	var expansions []string
	err := r.db.WithContext(ctx).Model(&models.Card{}).
		Distinct("expansion").
		Order("expansion ASC").
		Pluck("expansion", &expansions).Error
	if err != nil {
		return nil, err
	}
	return expansions, nil
}

func (r *repository) ListRarities(ctx context.Context) ([]string, error) {
	var rarities []string
	err := r.db.WithContext(ctx).Model(&models.Card{}).
		Distinct("rarity").
		Order("rarity ASC").
		Pluck("rarity", &rarities).Error
	if err != nil {
		return nil, err
	}
	return rarities, nil
}

// PriceHistory returns the tracked market values oldest first, ready for
// charting.
func (r *repository) PriceHistory(ctx context.Context, cardID uuid.UUID) ([]models.CardPrice, error) {
	var prices []models.CardPrice
	err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("recorded_on ASC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repository) AppendPrice(ctx context.Context, price *models.CardPrice) error {
	if price == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "price point required")
	}
	return r.db.WithContext(ctx).Create(price).Error
}

func (r *repository) SetCurrentPrice(ctx context.Context, cardID uuid.UUID, priceCents int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ?", cardID).
		Update("current_price_cents", priceCents)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
	}
	return nil
}
