package controllers

import (
	"net/http"

	"github.com/tcghub/tcghub-backend/api/responses"
	"github.com/tcghub/tcghub-backend/api/validators"
	"github.com/tcghub/tcghub-backend/internal/shops"
)

// ShopsController exposes shop browsing.
type ShopsController struct {
	service shops.Service
}

// NewShopsController builds the shops controller.
func NewShopsController(service shops.Service) *ShopsController {
	return &ShopsController{service: service}
}

func (c *ShopsController) List(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.List(r.Context())
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, result)
}

func (c *ShopsController) Get(w http.ResponseWriter, r *http.Request) {
	shopID, err := validators.URLParamUUID(r, "shopID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	detail, err := c.service.Get(r.Context(), shopID)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, detail)
}
