package models

import "time"

// Review represents a user's review of a product.
// The (product_id, user_id) composite key allows at most one review per pair.
type Review struct {
	ProductID uint      `gorm:"primaryKey" json:"product_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Comment   string    `gorm:"size:1024;not null" json:"comment"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
