package models

import "time"

// Payment records a user's payment against an order
type Payment struct {
	UserID      uint      `gorm:"primaryKey" json:"user_id"`
	OrderID     uint      `gorm:"primaryKey" json:"order_id"`
	PaymentDate time.Time `gorm:"not null" json:"payment_date"`
	Amount      float64   `gorm:"not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
