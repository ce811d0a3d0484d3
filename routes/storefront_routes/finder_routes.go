package storefront_routes

import (
	"github.com/TonyMerlin/M2-ProductFinder/controllers/storefront/finder_controller"
	"github.com/gin-gonic/gin"
)

// SetupFinderRoutes sets up the public finder routes
func SetupFinderRoutes(router *gin.RouterGroup) {
	// Finder routes (public, no auth required)
	finder := router.Group("/store/finder")
	{
		finder.GET("/form", finder_controller.GetFinderForm)       // Full form payload (sets, profiles, option universe)
		finder.GET("/options", finder_controller.GetFinderOptions) // Next-facet options for the current selection
		finder.GET("/results", finder_controller.GetFinderResults) // Paginated matching products
	}
}
