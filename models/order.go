package models

import "time"

// Order statuses. New orders default to pending.
const (
	OrderStatusPending    = "pending"
	OrderStatusInDelivery = "in_delivery"
	OrderStatusArrived    = "arrived"
	OrderStatusCancelled  = "cancelled"
)

// Order represents a user's order together with its line items
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	OrderDate       time.Time `gorm:"not null" json:"order_date"`
	TotalPrice      float64   `gorm:"not null" json:"total_price"`
	ShippingAddress string    `gorm:"size:1024;not null" json:"shipping_address"`
	Status          string    `gorm:"size:32;not null;default:'pending'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents one product line within an order
type OrderItem struct {
	OrderID   uint      `gorm:"primaryKey" json:"order_id"`
	ProductID uint      `gorm:"primaryKey" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
