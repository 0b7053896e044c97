package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tcghub/tcghub-backend/pkg/enums"
)

// Collection groups cards a user owns or wishes for.
type Collection struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Name      string               `gorm:"column:name;not null"`
	Type      enums.CollectionType `gorm:"column:type;type:text;not null;default:'standard'"`
	Cards     []CollectionCard     `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
