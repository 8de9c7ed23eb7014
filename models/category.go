package models

import "time"

// Category groups menu items within one organization. The slug is unique
// per organization, not globally.
type Category struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OrganizationID uint      `json:"organization_id" gorm:"not null;uniqueIndex:idx_categories_org_slug"`
	Name           string    `json:"name" gorm:"not null"`
	Slug           string    `json:"slug" gorm:"not null;uniqueIndex:idx_categories_org_slug"`
	DisplayOrder   int       `json:"display_order" gorm:"default:0"`
	Icon           string    `json:"icon"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
