package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#6366f1"

// Category groups tickets. Removing one nulls the reference on its tickets.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	Color       string    `json:"color" gorm:"size:7;not null;default:'#6366f1'"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
