package models

import (
	"time"

	"gorm.io/datatypes"
)

type MenuItem struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	OrganizationID uint              `json:"organization_id" gorm:"not null"`
	CategoryID     *uint             `json:"category_id"`
	Category       *Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name           string            `json:"name" gorm:"not null"`
	Description    string            `json:"description"`
	Subcategory    string            `json:"subcategory"`
	ImageURL       string            `json:"image_url"`
	Metadata       datatypes.JSONMap `json:"metadata"`
	IsDisabled     bool              `json:"is_disabled" gorm:"default:false"`
	DisplayOrder   int               `json:"display_order" gorm:"default:0"`
	Prices         []PricePerSize    `json:"prices,omitempty" gorm:"foreignKey:MenuItemID"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// PricePerSize holds one size variant's price in the minor currency unit.
// The set of rows for an item is replaced wholesale on every price update,
// never merged row by row.
type PricePerSize struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	MenuItemID uint      `json:"menu_item_id" gorm:"not null"`
	Size       string    `json:"size" gorm:"not null"`
	Price      int64     `json:"price" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
