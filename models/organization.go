package models

import "time"

type Organization struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Slug         string     `json:"slug" gorm:"uniqueIndex;not null"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone"`
	Address      string     `json:"address"`
	BrandColor   string     `json:"brand_color"`
	IsDisabled   bool       `json:"is_disabled" gorm:"default:false"`
	Categories   []Category `json:"categories,omitempty" gorm:"foreignKey:OrganizationID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
