package models

import "time"

// UserDiscount grants a customer a standing percentage discount at one
// organization. Percent is always within 1–100.
type UserDiscount struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ProfileID      uint      `json:"profile_id" gorm:"not null"`
	Profile        *Profile  `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	OrganizationID uint      `json:"organization_id" gorm:"not null"`
	Percent        int       `json:"percent" gorm:"not null"`
	Label          string    `json:"label"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
