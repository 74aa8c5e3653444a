package models

import "time"

// Product represents an item in the catalog
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"size:1024;not null" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	ImageURL    string    `gorm:"size:1024;not null" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Reviews []Review `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"reviews,omitempty"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
