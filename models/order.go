package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks payment independently of the order lifecycle;
// it only changes when an order enters the paid state.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Order struct {
	ID              uint                 `json:"id" gorm:"primaryKey"`
	OrganizationID  uint                 `json:"organization_id" gorm:"not null"`
	Organization    Organization         `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	ProfileID       *uint                `json:"profile_id"`
	Profile         *Profile             `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	OrderNumber     string               `json:"order_number" gorm:"uniqueIndex;not null"`
	Status          OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus   PaymentStatus        `json:"payment_status" gorm:"not null;default:'unpaid'"`
	PaymentMethod   string               `json:"payment_method"`
	PaidAt          *time.Time           `json:"paid_at"`
	TotalAmount     int64                `json:"total_amount"`
	DiscountPercent *int                 `json:"discount_percent"`
	DiscountAmount  int64                `json:"discount_amount"`
	Items           []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory   []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// OrderItem is read-only from the dashboard's perspective; name and price
// are snapshots taken when the order was placed.
type OrderItem struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	OrderID    uint   `json:"order_id" gorm:"not null"`
	MenuItemID uint   `json:"menu_item_id" gorm:"not null"`
	Name       string `json:"name"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity" gorm:"not null"`
	UnitPrice  int64  `json:"unit_price" gorm:"not null"`
}

// OrderStatusHistory tracks every status change for auditing
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // admin user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
