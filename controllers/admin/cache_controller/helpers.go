package cache_controller

import (
	"os"
	"strconv"

	"github.com/TonyMerlin/M2-ProductFinder/finder"
	"github.com/gin-gonic/gin"
)

// storeContext resolves the target store for a cache operation: query
// params override the STORE_ID / WEBSITE_ID env defaults.
func storeContext(c *gin.Context) finder.StoreContext {
	store := finder.StoreContext{StoreID: envInt64("STORE_ID", 1), WebsiteID: envInt64("WEBSITE_ID", 1)}
	if v, err := strconv.ParseInt(c.Query("store_id"), 10, 64); err == nil && v > 0 {
		store.StoreID = v
	}
	if v, err := strconv.ParseInt(c.Query("website_id"), 10, 64); err == nil && v > 0 {
		store.WebsiteID = v
	}
	return store
}

func envInt64(key string, fallback int64) int64 {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil && v > 0 {
		return v
	}
	return fallback
}
