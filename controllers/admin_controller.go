package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emirhan-aydin/shopstack-api/config"
	"github.com/emirhan-aydin/shopstack-api/models"
	"github.com/emirhan-aydin/shopstack-api/utils"
)

// CreateAdminRequest represents the request body for registering an admin
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ListAdmins handles GET /api/v1/admins - lists all administrator accounts
func ListAdmins(c *gin.Context) {
	db := config.GetDB()

	var admins []models.Admin
	if err := db.Find(&admins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list admins",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    admins,
	})
}

// CreateAdmin handles POST /api/v1/admins - registers a new administrator account
func CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
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

	// Reject already-registered usernames before any write
	var existing models.Admin
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USERNAME_EXISTS",
				"message": "Username already registered",
			},
		})
		return
	}

	digest, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HASH_ERROR",
				"message": "Failed to hash password",
			},
		})
		return
	}

	admin := models.Admin{
		Username: req.Username,
		Password: digest,
	}

	if err := db.Create(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create admin",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    admin,
	})
}

// GetAdminByID handles GET /api/v1/admins/:id - fetches an admin account
func GetAdminByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Admin ID must be an integer",
			},
		})
		return
	}

	db := config.GetDB()

	var admin models.Admin
	if err := db.First(&admin, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ADMIN_NOT_FOUND",
				"message": "Admin not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    admin,
	})
}
