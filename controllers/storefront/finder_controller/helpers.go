package finder_controller

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/TonyMerlin/M2-ProductFinder/finder"
	"github.com/TonyMerlin/M2-ProductFinder/models"
	"github.com/gin-gonic/gin"
)

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

var attributeCodeRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// storeContext resolves the request's store scope: query params override the
// STORE_ID / WEBSITE_ID env defaults.
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

// parseFilterState reads filters[code]=value pairs plus the price window.
// price_min/price_max are accepted both inside filters[] and top-level.
// Keys are processed in sorted order so replayed requests parse identically.
func parseFilterState(c *gin.Context) models.FilterState {
	state := models.FilterState{}

	raw := c.QueryMap("filters")
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		key = strings.TrimSpace(key)
		value := strings.TrimSpace(raw[key])
		switch key {
		case "":
			continue
		case "price_min":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				state.PriceMin = &f
			}
		case "price_max":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				state.PriceMax = &f
			}
		default:
			state.Add(key, value)
		}
	}

	if f, err := strconv.ParseFloat(c.Query("price_min"), 64); err == nil {
		state.PriceMin = &f
	}
	if f, err := strconv.ParseFloat(c.Query("price_max"), 64); err == nil {
		state.PriceMax = &f
	}
	return state
}

// parsePagination clamps to the storefront's allowed page sizes.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("p", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "12"))

	if page < 1 {
		page = 1
	}
	switch limit {
	case 12, 24, 48:
	default:
		limit = 12
	}

	return page, limit
}

// buildFinderOrderClause builds the ORDER BY clause from whitelisted inputs.
func buildFinderOrderClause(order, dir string) string {
	direction := "ASC"
	if strings.ToUpper(dir) == "DESC" {
		direction = "DESC"
	}

	switch order {
	case "price":
		return fmt.Sprintf("COALESCE(pip.final_price, p.price) %s", direction)
	case "created_at":
		return fmt.Sprintf("p.created_at %s", direction)
	case "name":
		return fmt.Sprintf("p.name %s", direction)
	default:
		return "p.name ASC"
	}
}

// attributeCondition builds the jsonb match for one attribute: a direct
// value match for selects, or membership in the comma-delimited string for
// multiselects. The code is interpolated, so it must pass the whitelist.
func attributeCondition(code string, values []string, args *[]interface{}) (string, bool) {
	if !attributeCodeRe.MatchString(code) || len(values) == 0 {
		return "", false
	}

	placeholders := make([]string, 0, len(values))
	arrayPlaceholders := make([]string, 0, len(values))
	for _, v := range values {
		placeholders = append(placeholders, "?")
		arrayPlaceholders = append(arrayPlaceholders, "?")
		*args = append(*args, strings.TrimSpace(v))
	}
	// bound twice: once for the IN list, once for the array overlap
	for _, v := range values {
		*args = append(*args, strings.TrimSpace(v))
	}

	cond := fmt.Sprintf(
		`(p.attributes->>'%s' IN (%s)
		  OR string_to_array(COALESCE(p.attributes->>'%s', ''), ',') && ARRAY[%s]::text[])`,
		code, strings.Join(placeholders, ","),
		code, strings.Join(arrayPlaceholders, ","),
	)
	return cond, true
}
