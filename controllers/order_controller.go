package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emirhan-aydin/shopstack-api/config"
	"github.com/emirhan-aydin/shopstack-api/middleware"
	"github.com/emirhan-aydin/shopstack-api/models"
)

// CreateOrderItemRequest represents one product line in an order creation request
type CreateOrderItemRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// CreatePaymentRequest represents the optional payment attached to an order
type CreatePaymentRequest struct {
	PaymentDate time.Time `json:"payment_date" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	OrderDate       time.Time                `json:"order_date" binding:"required"`
	TotalPrice      float64                  `json:"total_price" binding:"required,gt=0"`
	ShippingAddress string                   `json:"shipping_address" binding:"required"`
	Status          string                   `json:"status" binding:"omitempty,oneof=pending in_delivery arrived cancelled"`
	OrderItems      []CreateOrderItemRequest `json:"order_items" binding:"required,min=1,dive"`
	Payment         *CreatePaymentRequest    `json:"payment"`
}

// UpdateOrderRequest represents the request body for an order status update
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_delivery arrived cancelled"`
}

// CreateOrder handles POST /api/v1/orders - places an order for the authenticated user.
// The order row, its items and the optional payment are written in one transaction;
// any failure rolls back everything and reports a single generic error.
func CreateOrder(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	order := models.Order{
		UserID:          principal.ID,
		OrderDate:       req.OrderDate,
		TotalPrice:      req.TotalPrice,
		ShippingAddress: req.ShippingAddress,
		Status:          status,
	}

	db := config.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range req.OrderItems {
			// Every referenced product must exist before its line is written
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return fmt.Errorf("product %d not found: %w", item.ProductID, err)
			}

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		if req.Payment != nil {
			payment := models.Payment{
				UserID:      principal.ID,
				OrderID:     order.ID,
				PaymentDate: req.Payment.PaymentDate,
				Amount:      req.Payment.Amount,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Printf("order creation rolled back: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_ERROR",
				"message": "An error occurred",
			},
		})
		return
	}

	// Load the items to return the complete order
	if err := db.Preload("Items").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderByID handles GET /api/v1/orders/:id - fetches an order with its items
func GetOrderByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be an integer",
			},
		})
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Preload("Items").First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT /api/v1/orders/:id - status-only update (admin only)
func UpdateOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be an integer",
			},
		})
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	if err := db.Preload("Items").First(&order, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch updated order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderPayment handles GET /api/v1/orders/payments/:order_id - fetches the
// caller's payment for an order
func GetOrderPayment(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be an integer",
			},
		})
		return
	}

	db := config.GetDB()

	var payment models.Payment
	if err := db.Where("user_id = ? AND order_id = ?", principal.ID, orderID).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PAYMENT_NOT_FOUND",
				"message": "Payment not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payment,
	})
}
