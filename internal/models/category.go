package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultCategoryName is the category present in a fresh store.
const DefaultCategoryName = "General"

// Category is global: every user sees and may reference every category.
// Names are not unique.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	return c.Validate()
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name is required")
	}
	return nil
}

func (c *Category) TableName() string {
	return "categories"
}
