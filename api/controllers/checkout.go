package controllers

import (
	"net/http"

	"github.com/tcghub/tcghub-backend/api/responses"
	"github.com/tcghub/tcghub-backend/api/validators"
	"github.com/tcghub/tcghub-backend/internal/checkout"
)

// CheckoutController executes the checkout transaction for the signed-in
// buyer.
type CheckoutController struct {
	service checkout.Service
}

// NewCheckoutController builds the checkout controller.
func NewCheckoutController(service checkout.Service) *CheckoutController {
	return &CheckoutController{service: service}
}

type checkoutRequest struct {
	Lines []checkout.CartLine `json:"lines" validate:"required,min=1,dive"`
}

func (c *CheckoutController) Execute(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input checkoutRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(w, err)
		return
	}
	result, err := c.service.Execute(r.Context(), buyerID, input.Lines)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, result)
}
