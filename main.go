package main

import (
	"log"
	"time"

	"giftly-be/internal/cache"
	"giftly-be/internal/config"
	"giftly-be/internal/controllers"
	"giftly-be/internal/database"
	"giftly-be/internal/jwt"
	"giftly-be/internal/middleware"
	"giftly-be/internal/repository"
	"giftly-be/internal/service"
	"giftly-be/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize upload storage
	imageStore, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	giftRepo := repository.NewGiftRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	wishlistService := service.NewWishlistService(wishlistRepo, favoriteRepo, cacheClient)
	giftService := service.NewGiftService(giftRepo, wishlistRepo, cacheClient)
	favoriteService := service.NewFavoriteService(favoriteRepo)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	wishlistController := controllers.NewWishlistController(wishlistService, favoriteService, imageStore)
	giftController := controllers.NewGiftController(giftService)
	qrcodeController := controllers.NewQRCodeController(cfg.FrontendURL)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	reserveRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitReserveRPS), cfg.RateLimitReserveBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Uploaded gift images
	router.Static("/uploads", cfg.UploadDir)

	// Auth routes with stricter rate limiting
	auth := router.Group("")
	auth.Use(authRateLimiter.LimitMiddleware())
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	wishlist := router.Group("/wishlist")
	wishlist.Use(generalRateLimiter.LimitMiddleware())
	{
		// Public routes - a bearer token is optional on the public view
		// and only personalizes the favorite flag
		wishlist.GET("/public/:token", middleware.OptionalAuthMiddleware(jwtService), wishlistController.GetPublic)
		wishlist.GET("/qrcode/:token", qrcodeController.GenerateQRCode)

		// Protected routes - require JWT authentication
		protected := wishlist.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.POST("", wishlistController.Create)
			protected.PUT("/:id", wishlistController.Update)
			protected.DELETE("/:id", wishlistController.Delete)
			protected.GET("/me", wishlistController.ListMine)
			protected.POST("/favorites", wishlistController.AddFavorite)
			protected.DELETE("/favorites/:id", wishlistController.RemoveFavorite)
		}
	}

	// Anonymous gift reservation with its own rate limiting
	gift := router.Group("/gift")
	gift.Use(reserveRateLimiter.LimitMiddleware())
	{
		gift.POST("/:id/reserve", giftController.Reserve)
		gift.PATCH("/:id/reserve", giftController.Reserve)
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
