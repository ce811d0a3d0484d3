package finder_controller

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/TonyMerlin/M2-ProductFinder/config"
	"github.com/TonyMerlin/M2-ProductFinder/finder"
	"github.com/TonyMerlin/M2-ProductFinder/models"
	"github.com/TonyMerlin/M2-ProductFinder/services"
	"github.com/gin-gonic/gin"
)

// GetFinderResults godoc
// @Summary Get the final filtered product listing
// @Description Applies the profile's facet selections (repeatable params per logical step and extras key), an inclusive final-price window, whitelisted sorting, and pagination. Returns thin listing rows.
// @Tags Storefront - Finder
// @Produce json
// @Param attribute_set_id query int false "Attribute set id"
// @Param price_min query number false "Minimum final price (inclusive)"
// @Param price_max query number false "Maximum final price (inclusive)"
// @Param order query string false "Sort field (name | price | created_at)" default(name)
// @Param dir query string false "Sort direction (asc | desc)" default(asc)
// @Param p query int false "Page number" default(1)
// @Param limit query int false "Page size (12 | 24 | 48)" default(12)
// @Success 200 {object} models.ApiResponse "Results fetched successfully"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /store/finder/results [get]
func GetFinderResults(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	page, limit := parsePagination(c)
	store := storeContext(c)
	setID, _ := strconv.ParseInt(c.Query("attribute_set_id"), 10, 64)

	visPlaceholders := make([]string, len(models.BrowsableVisibilities))
	args := []interface{}{models.StatusEnabled}
	for i, v := range models.BrowsableVisibilities {
		visPlaceholders[i] = "?"
		args = append(args, v)
	}
	conditions := []string{
		"p.status = ?",
		fmt.Sprintf("p.visibility IN (%s)", strings.Join(visPlaceholders, ", ")),
	}

	if setID > 0 {
		conditions = append(conditions, "p.attribute_set_id = ?")
		args = append(args, setID)
	}

	// Stock: legacy view is always present and kept in sync by the
	// inventory subsystem, so the listing reads it directly.
	conditions = append(conditions, `EXISTS (
		SELECT 1 FROM stock_status css
		WHERE css.product_id = p.entity_id
		  AND css.stock_status = 1
		  AND css.website_id IN (0, ?)
	)`)
	args = append(args, store.WebsiteID)

	// Profile-driven attribute filters: each logical step (except the
	// price and extras pseudo-steps) accepts repeatable query params.
	profile := services.GetFinderService().Profiles.ProfileFor(ctx, store, setID)
	for _, logical := range profile.Sections {
		if profile.SectionCode(logical) == models.PriceCode || logical == "extras" {
			continue
		}
		values := c.QueryArray(logical)
		if cond, ok := attributeCondition(profile.SectionCode(logical), values, &args); ok {
			conditions = append(conditions, cond)
		}
	}
	for key, code := range profile.ExtraCodes() {
		values := c.QueryArray(key)
		if cond, ok := attributeCondition(code, values, &args); ok {
			conditions = append(conditions, cond)
		}
	}

	// Price window on the promotion-aware final price, base price fallback.
	if minPrice, err := strconv.ParseFloat(c.Query("price_min"), 64); err == nil {
		conditions = append(conditions, "COALESCE(pip.final_price, p.price) >= ?")
		args = append(args, minPrice)
	}
	if maxPrice, err := strconv.ParseFloat(c.Query("price_max"), 64); err == nil {
		conditions = append(conditions, "COALESCE(pip.final_price, p.price) <= ?")
		args = append(args, maxPrice)
	}

	whereClause := strings.Join(conditions, " AND ")
	orderClause := buildFinderOrderClause(c.DefaultQuery("order", "name"), c.DefaultQuery("dir", "asc"))

	products, totalCount, err := fetchFinderResultsFromDB(store, whereClause, orderClause, args, page, limit)
	if err != nil {
		log.Printf("[finder] results query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch results"))
		return
	}

	totalPages := (totalCount + limit - 1) / limit

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Results fetched successfully",
		products,
		&models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      totalCount,
			TotalPages: totalPages,
		},
	))
}

// ─────────────────────────────────────────────────────────────
// Database fetcher (THIN RESPONSE)
// ─────────────────────────────────────────────────────────────

func fetchFinderResultsFromDB(
	store finder.StoreContext,
	whereClause string,
	orderClause string,
	args []interface{},
	page int,
	limit int,
) ([]models.StorefrontProduct, int, error) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	offset := (page - 1) * limit

	joinClause := "LEFT JOIN price_index pip ON pip.entity_id = p.entity_id AND pip.website_id = ? AND pip.customer_group_id = 0"
	joinArgs := []interface{}{store.WebsiteID}

	// Count query
	countQuery := fmt.Sprintf(`
		SELECT COUNT(DISTINCT p.entity_id)
		FROM catalog_products p
		%s
		WHERE %s
	`, joinClause, whereClause)

	var totalCount int64
	if err := config.CatalogGorm.
		WithContext(ctx).
		Raw(countQuery, append(joinArgs, args...)...).
		Scan(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	// Data query (ONLY required fields)
	dataQuery := fmt.Sprintf(`
		SELECT
			p.entity_id AS id,
			p.name,
			p.sku,
			p.price,
			COALESCE(pip.final_price, p.price) AS final_price,
			COALESCE(p.attributes->>'small_image', '') AS image
		FROM catalog_products p
		%s
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, joinClause, whereClause, orderClause)

	dataArgs := append(append(joinArgs, args...), limit, offset)

	products := make([]models.StorefrontProduct, 0)

	if err := config.CatalogGorm.
		WithContext(ctx).
		Raw(dataQuery, dataArgs...).
		Scan(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, int(totalCount), nil
}
