package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tcghub/tcghub-backend/api/responses"
	"github.com/tcghub/tcghub-backend/api/validators"
	"github.com/tcghub/tcghub-backend/internal/cards"
	"github.com/tcghub/tcghub-backend/internal/shops"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
)

// CardsController exposes catalog browsing.
type CardsController struct {
	cards cards.Service
	shops shops.Service
}

// NewCardsController builds the cards controller.
func NewCardsController(cardsService cards.Service, shopsService shops.Service) *CardsController {
	return &CardsController{cards: cardsService, shops: shopsService}
}

func (c *CardsController) Search(w http.ResponseWriter, r *http.Request) {
	limit, err := validators.QueryInt(r, "limit", 0)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	offset, err := validators.QueryInt(r, "offset", 0)
	if err != nil {
		responses.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	results, err := c.cards.Search(r.Context(), cards.SearchFilter{
		Query:     query.Get("q"),
		Expansion: query.Get("expansion"),
		Rarity:    query.Get("rarity"),
		Sort:      query.Get("sort"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, results)
}

// Get returns the card, its market history, and which shops sell it.
func (c *CardsController) Get(w http.ResponseWriter, r *http.Request) {
	cardID, err := validators.URLParamUUID(r, "cardID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	detail, err := c.cards.Get(r.Context(), cardID)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	listings, err := c.shops.ListingsForCard(r.Context(), cardID)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]any{
		"card":     detail.Card,
		"history":  detail.History,
		"listings": listings,
	})
}

type recordPriceRequest struct {
	Value      decimal.Decimal `json:"value" validate:"required"`
	RecordedOn string          `json:"recorded_on" validate:"required,datetime=2006-01-02"`
}

// RecordPrice appends a market-value sample for the card.
func (c *CardsController) RecordPrice(w http.ResponseWriter, r *http.Request) {
	cardID, err := validators.URLParamUUID(r, "cardID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	var input recordPriceRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(w, err)
		return
	}
	recordedOn, err := time.Parse("2006-01-02", input.RecordedOn)
	if err != nil {
		responses.WriteError(w, pkgerrors.New(pkgerrors.CodeValidation, "recorded_on must be YYYY-MM-DD"))
		return
	}
	if err := c.cards.RecordPrice(r.Context(), cardID, input.Value, recordedOn); err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (c *CardsController) Facets(w http.ResponseWriter, r *http.Request) {
	expansions, rarities, err := c.cards.Facets(r.Context())
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]any{
		"expansions": expansions,
		"rarities":   rarities,
	})
}
