package admin_routes

import (
	"github.com/TonyMerlin/M2-ProductFinder/controllers/admin/cache_controller"
	"github.com/TonyMerlin/M2-ProductFinder/middleware"
	"github.com/gin-gonic/gin"
)

// SetupFinderCacheRoutes sets up the admin cache management routes
func SetupFinderCacheRoutes(router *gin.RouterGroup) {
	cache := router.Group("/finder/cache")
	cache.Use(middleware.AdminAuthMiddleware()) // All routes require admin auth
	{
		cache.POST("/build", cache_controller.BuildFinderCache)
		cache.POST("/clear", cache_controller.ClearFinderCache)
	}
}
