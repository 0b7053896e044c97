package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/api/middleware"
	"github.com/tcghub/tcghub-backend/api/responses"
	"github.com/tcghub/tcghub-backend/api/validators"
	"github.com/tcghub/tcghub-backend/internal/collections"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
)

// CollectionsController manages a user's binders and wishlist.
type CollectionsController struct {
	service collections.Service
}

// NewCollectionsController builds the collections controller.
func NewCollectionsController(service collections.Service) *CollectionsController {
	return &CollectionsController{service: service}
}

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return uuid.Nil, false
	}
	return userID, true
}

type createCollectionRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

func (c *CollectionsController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var input createCollectionRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(w, err)
		return
	}
	collection, err := c.service.Create(r.Context(), userID, input.Name)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, collection)
}

func (c *CollectionsController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	result, err := c.service.List(r.Context(), userID)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, result)
}

func (c *CollectionsController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	collectionID, err := validators.URLParamUUID(r, "collectionID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	collection, err := c.service.Get(r.Context(), userID, collectionID)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, collection)
}

func (c *CollectionsController) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	collectionID, err := validators.URLParamUUID(r, "collectionID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	var input createCollectionRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(w, err)
		return
	}
	if err := c.service.Rename(r.Context(), userID, collectionID, input.Name); err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "renamed"})
}

func (c *CollectionsController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	collectionID, err := validators.URLParamUUID(r, "collectionID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	if err := c.service.Delete(r.Context(), userID, collectionID); err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type setCardRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

func (c *CollectionsController) SetCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	collectionID, err := validators.URLParamUUID(r, "collectionID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	cardID, err := validators.URLParamUUID(r, "cardID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	var input setCardRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(w, err)
		return
	}
	if err := c.service.SetCard(r.Context(), userID, collectionID, cardID, input.Quantity); err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (c *CollectionsController) RemoveCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	collectionID, err := validators.URLParamUUID(r, "collectionID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	cardID, err := validators.URLParamUUID(r, "cardID")
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	if err := c.service.RemoveCard(r.Context(), userID, collectionID, cardID); err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (c *CollectionsController) Wishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	wishlist, err := c.service.Wishlist(r.Context(), userID)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, wishlist)
}
