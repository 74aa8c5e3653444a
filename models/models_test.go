package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&Admin{}, &User{}, &Product{}, &Review{}, &Order{}, &OrderItem{}, &Payment{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "admins", Admin{}.TableName())
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "products", Product{}.TableName())
	assert.Equal(t, "reviews", Review{}.TableName())
	assert.Equal(t, "orders", Order{}.TableName())
	assert.Equal(t, "order_items", OrderItem{}.TableName())
	assert.Equal(t, "payments", Payment{}.TableName())
}

func TestReviewCompositeKeyUniqueness(t *testing.T) {
	db := openModelTestDB(t)

	user := User{Name: "U", Email: "u@example.com", Phone: "1", Password: "d", Address: "a"}
	assert.NoError(t, db.Create(&user).Error)
	product := Product{Name: "P", Description: "desc", Price: 1.0, ImageURL: "u"}
	assert.NoError(t, db.Create(&product).Error)

	first := Review{ProductID: product.ID, UserID: user.ID, Comment: "ok", Rating: 4}
	assert.NoError(t, db.Create(&first).Error)

	// A second row for the same (product, user) pair violates the composite key
	second := Review{ProductID: product.ID, UserID: user.ID, Comment: "again", Rating: 2}
	assert.Error(t, db.Create(&second).Error)

	var count int64
	db.Model(&Review{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOrderTimestampsAssignedOnCreate(t *testing.T) {
	db := openModelTestDB(t)

	user := User{Name: "U", Email: "u@example.com", Phone: "1", Password: "d", Address: "a"}
	assert.NoError(t, db.Create(&user).Error)

	order := Order{UserID: user.ID, TotalPrice: 5, ShippingAddress: "a", Status: OrderStatusPending}
	assert.NoError(t, db.Create(&order).Error)

	assert.False(t, order.CreatedAt.IsZero(), "created_at is server-assigned on write")
	assert.False(t, order.UpdatedAt.IsZero(), "updated_at is server-assigned on write")
}
