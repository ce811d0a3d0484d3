package finder_controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/TonyMerlin/M2-ProductFinder/config"
	"github.com/TonyMerlin/M2-ProductFinder/models"
	"github.com/TonyMerlin/M2-ProductFinder/services"
	"github.com/gin-gonic/gin"
)

// GetFinderOptions godoc
// @Summary Get the valid next choices for a facet
// @Description Given an attribute set, the selection so far, and the next attribute code, returns the options still reachable under stock, visibility, status, and price constraints. Always responds 200; failures degrade to {ok:false, options:[]}.
// @Tags Storefront - Finder
// @Produce json
// @Param set_id query int true "Attribute set id"
// @Param next_code query string true "Attribute code (or logical step name) to resolve options for"
// @Param filters query object false "filters[code]=value pairs; filters[price_min]/[price_max] accepted"
// @Param price_min query number false "Minimum final price (inclusive)"
// @Param price_max query number false "Maximum final price (inclusive)"
// @Success 200 {object} models.OptionsResponse
// @Router /store/finder/options [get]
func GetFinderOptions(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	setID, _ := strconv.ParseInt(c.Query("set_id"), 10, 64)
	nextCode := strings.TrimSpace(c.Query("next_code"))
	state := parseFilterState(c)

	// fail soft: the widget renders "no options" instead of an error page
	if setID <= 0 || nextCode == "" {
		c.JSON(http.StatusOK, models.OptionsResponse{OK: false, Options: []models.OptionPair{}})
		return
	}

	svc := services.GetFinderService()
	store := storeContext(c)
	profile := svc.Profiles.ProfileFor(ctx, store, setID)

	options := svc.Resolver.NextOptions(ctx, profile, setID, state, nextCode, store)
	c.JSON(http.StatusOK, models.OptionsResponse{OK: true, Options: options})
}
