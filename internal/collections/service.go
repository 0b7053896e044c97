package collections

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	"github.com/tcghub/tcghub-backend/pkg/enums"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
)

// WishlistName is the reserved name of the auto-created wishlist.
const WishlistName = "Wishlist"

// Service manages a user's binders and wishlist. Every operation is scoped
// to the owning user.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*models.Collection, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Collection, error)
	Get(ctx context.Context, userID, collectionID uuid.UUID) (*models.Collection, error)
	Rename(ctx context.Context, userID, collectionID uuid.UUID, name string) error
	Delete(ctx context.Context, userID, collectionID uuid.UUID) error
	SetCard(ctx context.Context, userID, collectionID, cardID uuid.UUID, quantity int) error
	RemoveCard(ctx context.Context, userID, collectionID, cardID uuid.UUID) error
	Wishlist(ctx context.Context, userID uuid.UUID) (*models.Collection, error)
}

type service struct {
	repo Repository
}

// NewService builds the collections service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "collections repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Collection, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection name is required")
	}
	collection := &models.Collection{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Type:   enums.CollectionTypeStandard,
	}
	if err := s.repo.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Collection, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, collectionID uuid.UUID) (*models.Collection, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	return s.repo.FindForUser(ctx, userID, collectionID)
}

func (s *service) Rename(ctx context.Context, userID, collectionID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "collection name is required")
	}
	collection, err := s.repo.FindForUser(ctx, userID, collectionID)
	if err != nil {
		return err
	}
	if collection.Type == enums.CollectionTypeWishlist {
		return pkgerrors.New(pkgerrors.CodeForbidden, "the wishlist cannot be renamed")
	}
	return s.repo.Rename(ctx, collectionID, name)
}

func (s *service) Delete(ctx context.Context, userID, collectionID uuid.UUID) error {
	collection, err := s.repo.FindForUser(ctx, userID, collectionID)
	if err != nil {
		return err
	}
	if collection.Type == enums.CollectionTypeWishlist {
		return pkgerrors.New(pkgerrors.CodeForbidden, "the wishlist cannot be deleted")
	}
	return s.repo.Delete(ctx, collectionID)
}

// SetCard stores the quantity of a card in the collection. Quantity zero
// removes the entry.
func (s *service) SetCard(ctx context.Context, userID, collectionID, cardID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if _, err := s.repo.FindForUser(ctx, userID, collectionID); err != nil {
		return err
	}
	if quantity == 0 {
		return s.repo.RemoveCard(ctx, collectionID, cardID)
	}
	return s.repo.UpsertCard(ctx, &models.CollectionCard{
		CollectionID: collectionID,
		CardID:       cardID,
		Quantity:     quantity,
	})
}

func (s *service) RemoveCard(ctx context.Context, userID, collectionID, cardID uuid.UUID) error {
	if _, err := s.repo.FindForUser(ctx, userID, collectionID); err != nil {
		return err
	}
	return s.repo.RemoveCard(ctx, collectionID, cardID)
}

func (s *service) Wishlist(ctx context.Context, userID uuid.UUID) (*models.Collection, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	return s.repo.FindWishlist(ctx, userID)
}
