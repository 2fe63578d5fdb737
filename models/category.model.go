package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a catalog category courses are filed under
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CatalogPage bundles the three course collections the catalog view is
// built from. The collections may overlap; the filter engine dedupes them.
type CatalogPage struct {
	Selected []Course `json:"selected"`  // the category's own courses
	MostSold []Course `json:"most_sold"` // marketplace-wide best sellers
	Sibling  []Course `json:"sibling"`   // courses from a different category
}
