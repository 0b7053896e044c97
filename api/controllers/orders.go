package controllers

import (
	"net/http"

	"github.com/tcghub/tcghub-backend/api/responses"
	"github.com/tcghub/tcghub-backend/api/validators"
	"github.com/tcghub/tcghub-backend/internal/orders"
)

// OrdersController reads the buyer's order history.
type OrdersController struct {
	service orders.Service
}

// NewOrdersController builds the orders controller.
func NewOrdersController(service orders.Service) *OrdersController {
	return &OrdersController{service: service}
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	result, err := c.service.ListOrders(r.Context(), buyerID)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, result)
}

func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	deliveryID, err := validators.URLParamUUID(r, "deliveryID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	delivery, err := c.service.GetDelivery(r.Context(), buyerID, deliveryID)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, delivery)
}
