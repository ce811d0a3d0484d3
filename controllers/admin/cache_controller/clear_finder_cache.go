package cache_controller

import (
	"fmt"
	"log"
	"net/http"

	"github.com/TonyMerlin/M2-ProductFinder/cache/profile_cache"
	"github.com/TonyMerlin/M2-ProductFinder/config"
	"github.com/TonyMerlin/M2-ProductFinder/models"
	"github.com/TonyMerlin/M2-ProductFinder/services"
	"github.com/gin-gonic/gin"
)

// ClearFinderCache godoc
// @Summary Clear the finder option cache
// @Description Drops the cached option universe for a store. With ?all=1 purges every finder entry across all stores by tag and resets the in-process profile cache.
// @Tags Admin - Finder Cache
// @Produce json
// @Param store_id query int false "Store id (defaults to STORE_ID env)"
// @Param all query int false "Pass 1 to purge all stores"
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/finder/cache/clear [post]
func ClearFinderCache(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	builder := services.GetFinderService().Builder

	if c.Query("all") == "1" {
		if err := builder.PurgeAll(ctx); err != nil {
			log.Printf("[finder-cache] purge failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to purge finder cache"))
			return
		}
		profile_cache.Invalidate()
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Finder cache purged for all stores", nil))
		return
	}

	store := storeContext(c)
	if err := builder.ClearForStore(ctx, store); err != nil {
		log.Printf("[finder-cache] clear failed for store %d: %v", store.StoreID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to clear finder cache"))
		return
	}
	profile_cache.Invalidate()

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		fmt.Sprintf("Finder cache cleared for store #%d", store.StoreID),
		gin.H{"store_id": store.StoreID},
	))
}
