package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan-aydin/shopstack-api/config"
	"github.com/emirhan-aydin/shopstack-api/middleware"
	"github.com/emirhan-aydin/shopstack-api/models"
	"github.com/emirhan-aydin/shopstack-api/utils"
)

// LoginRequest represents the request body for the login endpoint.
// Users authenticate with their email as the username, admins with their username.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/login - checks hashed credentials and issues a bearer token
func Login(c *gin.Context) {
	var req LoginRequest
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

	// Resolve the principal: user accounts are keyed by email, admin accounts by username
	var subjectID uint
	var role string
	var digest string

	var user models.User
	if err := db.Where("email = ?", req.Username).First(&user).Error; err == nil {
		subjectID = user.ID
		role = middleware.RoleUser
		digest = user.Password
	} else {
		var admin models.Admin
		if err := db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CREDENTIALS",
					"message": "Invalid credentials",
				},
			})
			return
		}
		subjectID = admin.ID
		role = middleware.RoleAdmin
		digest = admin.Password
	}

	if !utils.CheckPassword(req.Password, digest) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid credentials",
			},
		})
		return
	}

	cfg := config.GetConfig()
	ttl := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	token, err := middleware.IssueToken(subjectID, role, cfg.JWTSecret, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to issue token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"access_token": token,
			"token_type":   "bearer",
		},
	})
}
