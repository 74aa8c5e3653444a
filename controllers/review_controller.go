package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan-aydin/shopstack-api/config"
	"github.com/emirhan-aydin/shopstack-api/middleware"
	"github.com/emirhan-aydin/shopstack-api/models"
)

// CreateReviewRequest represents the request body for reviewing a product
type CreateReviewRequest struct {
	Comment string  `json:"comment" binding:"required"`
	Rating  float64 `json:"rating" binding:"required,gte=0,lte=5"`
}

// UpdateReviewRequest represents the request body for a partial review update
type UpdateReviewRequest struct {
	Comment *string  `json:"comment"`
	Rating  *float64 `json:"rating"`
}

// reviewProductID parses the product id path parameter shared by the review endpoints
func reviewProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Product ID must be an integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// CreateReview handles POST /api/v1/products/:id/reviews - creates the caller's
// review of a product. A user may review a given product at most once.
func CreateReview(c *gin.Context) {
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

	productID, ok := reviewProductID(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
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

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	var existing models.Review
	if err := db.Where("product_id = ? AND user_id = ?", productID, principal.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REVIEW_EXISTS",
				"message": "This user has already reviewed this product",
			},
		})
		return
	}

	review := models.Review{
		ProductID: productID,
		UserID:    principal.ID,
		Comment:   req.Comment,
		Rating:    req.Rating,
	}

	if err := db.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create review",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    review,
	})
}

// UpdateReview handles PUT /api/v1/products/:id/reviews - partial update of the
// caller's review of a product
func UpdateReview(c *gin.Context) {
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

	productID, ok := reviewProductID(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
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

	var review models.Review
	if err := db.Where("product_id = ? AND user_id = ?", productID, principal.ID).First(&review).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REVIEW_NOT_FOUND",
				"message": "Review not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := db.Model(&models.Review{}).
			Where("product_id = ? AND user_id = ?", productID, principal.ID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update review",
				},
			})
			return
		}

		if err := db.Where("product_id = ? AND user_id = ?", productID, principal.ID).First(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to fetch updated review",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    review,
	})
}

// DeleteReview handles DELETE /api/v1/products/:id/reviews - removes the caller's
// review of a product
func DeleteReview(c *gin.Context) {
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

	productID, ok := reviewProductID(c)
	if !ok {
		return
	}

	db := config.GetDB()

	var review models.Review
	if err := db.Where("product_id = ? AND user_id = ?", productID, principal.ID).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REVIEW_NOT_FOUND",
				"message": "Review not found",
			},
		})
		return
	}

	if err := db.Where("product_id = ? AND user_id = ?", productID, principal.ID).Delete(&models.Review{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete review",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
