package collections

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tcghub/tcghub-backend/pkg/db/models"
	"github.com/tcghub/tcghub-backend/pkg/enums"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists collections and their card entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, collection *models.Collection) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Collection, error)
	FindForUser(ctx context.Context, userID, collectionID uuid.UUID) (*models.Collection, error)
	Rename(ctx context.Context, collectionID uuid.UUID, name string) error
	Delete(ctx context.Context, collectionID uuid.UUID) error
	UpsertCard(ctx context.Context, entry *models.CollectionCard) error
	RemoveCard(ctx context.Context, collectionID, cardID uuid.UUID) error
	FindWishlist(ctx context.Context, userID uuid.UUID) (*models.Collection, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a collections repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, collection *models.Collection) error {
	if collection == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "collection required")
	}
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.WithContext(ctx).
		Preload("Cards").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *repository) FindForUser(ctx context.Context, userID, collectionID uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).
		Preload("Cards").
		Where("id = ? AND user_id = ?", collectionID, userID).
		First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		return nil, err
	}
	return &collection, nil
}

func (r *repository) Rename(ctx context.Context, collectionID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.Collection{}).
		Where("id = ?", collectionID).
		Update("name", name).Error
}

func (r *repository) Delete(ctx context.Context, collectionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&models.Collection{ID: collectionID}).Error
}

func (r *repository) UpsertCard(ctx context.Context, entry *models.CollectionCard) error {
	if entry == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "collection card required")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_id"}, {Name: "card_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(entry).Error
}

func (r *repository) RemoveCard(ctx context.Context, collectionID, cardID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("collection_id = ? AND card_id = ?", collectionID, cardID).
		Delete(&models.CollectionCard{}).Error
}

func (r *repository) FindWishlist(ctx context.Context, userID uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).
		Preload("Cards").
		Where("user_id = ? AND type = ?", userID, enums.CollectionTypeWishlist).
		First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wishlist not found")
		}
		return nil, err
	}
	return &collection, nil
}
