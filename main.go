package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emirhan-aydin/shopstack-api/config"
	"github.com/emirhan-aydin/shopstack-api/controllers"
	"github.com/emirhan-aydin/shopstack-api/middleware"
	"github.com/emirhan-aydin/shopstack-api/models"
	"github.com/emirhan-aydin/shopstack-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Shopstack API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed image storage if a bucket is configured
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitImageStorage(); err != nil {
			log.Fatalf("Failed to initialize image storage: %v", err)
		}
		log.Println("Image storage initialized")
	} else {
		log.Println("AWS_S3_BUCKET not set, product image upload disabled")
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	registerRoutes(router, cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// registerRoutes mounts the API v1 surface
func registerRoutes(router *gin.Engine, cfg *config.Config) {
	requireUser := middleware.RequireUser(cfg.JWTSecret)
	requireAdmin := middleware.RequireAdmin(cfg.JWTSecret)

	v1 := router.Group("/api/v1")
	{
		// Operational endpoints
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Authentication
		v1.POST("/login", controllers.Login)

		// Users
		v1.GET("/users", controllers.ListUsers)
		v1.POST("/users", controllers.CreateUser)
		v1.GET("/users/:id", controllers.GetUserByID)

		// Admins
		v1.GET("/admins", controllers.ListAdmins)
		v1.POST("/admins", controllers.CreateAdmin)
		v1.GET("/admins/:id", controllers.GetAdminByID)

		// Products and nested reviews
		v1.GET("/products", controllers.ListProducts)
		v1.POST("/products", requireAdmin, controllers.CreateProduct)
		v1.GET("/products/:id", controllers.GetProductByID)
		v1.PUT("/products/:id", requireAdmin, controllers.UpdateProduct)
		v1.DELETE("/products/:id", requireAdmin, controllers.DeleteProduct)
		v1.POST("/products/:id/image", requireAdmin, controllers.UploadProductImage)
		v1.POST("/products/:id/reviews", requireUser, controllers.CreateReview)
		v1.PUT("/products/:id/reviews", requireUser, controllers.UpdateReview)
		v1.DELETE("/products/:id/reviews", requireUser, controllers.DeleteReview)

		// Orders and payments
		v1.POST("/orders", requireUser, controllers.CreateOrder)
		v1.GET("/orders/payments/:order_id", requireUser, controllers.GetOrderPayment)
		v1.GET("/orders/:id", controllers.GetOrderByID)
		v1.PUT("/orders/:id", requireAdmin, controllers.UpdateOrder)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Shopstack API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
