package cards

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
)

// PricePoint is one market-value sample in a card's history.
type PricePoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// CardDetail is a catalog card with its market history.
type CardDetail struct {
	Card    models.Card  `json:"card"`
	History []PricePoint `json:"history"`
}

// Service exposes catalog browsing and market price tracking.
type Service interface {
	Search(ctx context.Context, filter SearchFilter) ([]models.Card, error)
	Get(ctx context.Context, cardID uuid.UUID) (*CardDetail, error)
	Facets(ctx context.Context) (expansions, rarities []string, err error)
	RecordPrice(ctx context.Context, cardID uuid.UUID, value decimal.Decimal, recordedOn time.Time) error
}

type service struct {
	repo Repository
}

// NewService builds the card catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cards repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Search(ctx context.Context, filter SearchFilter) ([]models.Card, error) {
	return s.repo.Search(ctx, filter)
}

func (s *service) Get(ctx context.Context, cardID uuid.UUID) (*CardDetail, error) {
	card, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	prices, err := s.repo.PriceHistory(ctx, cardID)
	if err != nil {
		return nil, err
	}
	history := make([]PricePoint, 0, len(prices))
	for _, price := range prices {
		history = append(history, PricePoint{
			Date:  price.RecordedOn.Format("2006-01-02"),
			Value: price.Value,
		})
	}
	return &CardDetail{Card: *card, History: history}, nil
}

// RecordPrice appends a market-value sample and keeps the card's current
// price in sync with the latest point.
func (s *service) RecordPrice(ctx context.Context, cardID uuid.UUID, value decimal.Decimal, recordedOn time.Time) error {
	if value.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if _, err := s.repo.FindByID(ctx, cardID); err != nil {
		return err
	}
	err := s.repo.AppendPrice(ctx, &models.CardPrice{
		ID:         uuid.New(),
		CardID:     cardID,
		Value:      value,
		RecordedOn: recordedOn,
	})
	if err != nil {
		return err
	}
	cents := int(value.Mul(decimal.NewFromInt(100)).IntPart())
	return s.repo.SetCurrentPrice(ctx, cardID, cents)
}

func (s *service) Facets(ctx context.Context) ([]string, []string, error) {
	expansions, err := s.repo.ListExpansions(ctx)
	if err != nil {
		return nil, nil, err
	}
	rarities, err := s.repo.ListRarities(ctx)
	if err != nil {
		return nil, nil, err
	}
	return expansions, rarities, nil
}
