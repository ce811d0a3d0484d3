package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/TonyMerlin/M2-ProductFinder/config"
	"github.com/TonyMerlin/M2-ProductFinder/middleware"
	"github.com/TonyMerlin/M2-ProductFinder/routes/admin_routes"
	"github.com/TonyMerlin/M2-ProductFinder/routes/storefront_routes"
	"github.com/TonyMerlin/M2-ProductFinder/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	defer config.CloseDB()

	// Redis connection
	config.ConnectRedis()

	// ✅ Initialize JWT Service for Admin Auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(jwtSecret); err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	log.Println("✅ JWT Service initialized")

	// ✅ Initialize the finder engine (needs DB + Redis up)
	services.InitFinderService()

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes
	api := router.Group("/api/v1")

	// Public storefront finder (rate limited, no auth)
	storeGroup := api.Group("")
	storeGroup.Use(middleware.RateLimiter(300, time.Minute))
	storefront_routes.SetupFinderRoutes(storeGroup)
	log.Println("✅ Storefront finder routes registered")

	// Admin cache management (at /api/v1/admin prefix)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RateLimiter(100, time.Minute))
	admin_routes.SetupFinderCacheRoutes(adminGroup)
	log.Println("✅ Admin finder routes registered")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	fmt.Printf("🚀 Server is running on http://localhost:%s\n", port)
	router.Run(":" + port)
}
