package routes

import (
	"time"

	"dealerhub-backend/handlers"
	"dealerhub-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	vehicleHandler := &handlers.VehicleHandler{DB: db}
	sliderHandler := &handlers.SliderHandler{DB: db}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/login", loginLimiter.Middleware(), authHandler.Login)

		// Storefront reads
		api.GET("/slider", sliderHandler.GetSlider)
		api.GET("/carShowcase", vehicleHandler.GetShowcase)
		api.GET("/latestCars", vehicleHandler.GetLatest)
		api.GET("/carcount", vehicleHandler.GetCount)
		api.GET("/inventory/:id", vehicleHandler.GetVehicle)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/addCar", vehicleHandler.AddCar)
		protected.GET("/inventory", vehicleHandler.GetInventory)
		protected.GET("/userInventory", vehicleHandler.GetUserInventory)
		protected.DELETE("/inventory", vehicleHandler.DeleteVehicle)
		protected.POST("/updateDelivery", vehicleHandler.UpdateDelivery)
		protected.POST("/updateStock", vehicleHandler.UpdateStock)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
