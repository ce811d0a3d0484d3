package cache_controller

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/TonyMerlin/M2-ProductFinder/config"
	"github.com/TonyMerlin/M2-ProductFinder/models"
	"github.com/TonyMerlin/M2-ProductFinder/services"
	"github.com/gin-gonic/gin"
)

// BuildFinderCache godoc
// @Summary Rebuild the finder option cache for a store
// @Description Recomputes the full option universe for every profiled attribute set and persists it under the store's signature key. Invoked from an admin button or a scheduled job.
// @Tags Admin - Finder Cache
// @Produce json
// @Param store_id query int false "Store id (defaults to STORE_ID env)"
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/finder/cache/build [post]
func BuildFinderCache(c *gin.Context) {
	// builds walk every profiled set; give them more room than a request
	ctx, cancel := config.WithCustomTimeout(60 * time.Second)
	defer cancel()

	store := storeContext(c)

	count, err := services.GetFinderService().Builder.BuildForStore(ctx, store)
	if err != nil {
		log.Printf("[finder-cache] build failed for store %d: %v", store.StoreID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to build finder cache"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		fmt.Sprintf("Finder cache built for store #%d (%d sets)", store.StoreID, count),
		gin.H{"store_id": store.StoreID, "sets": count},
	))
}
