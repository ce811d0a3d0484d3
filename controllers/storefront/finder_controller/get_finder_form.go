package finder_controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/TonyMerlin/M2-ProductFinder/config"
	"github.com/TonyMerlin/M2-ProductFinder/models"
	"github.com/TonyMerlin/M2-ProductFinder/services"
	"github.com/gin-gonic/gin"
)

// FinderFormData seeds the widget's first render: which attribute sets are
// available, their profiles, and the precomputed option universe so the
// first paint needs no live facet computation.
type FinderFormData struct {
	Sets     map[string]string                  `json:"sets"`
	Profiles map[string]models.AttributeProfile `json:"profiles"`
	Options  models.OptionUniverse              `json:"options"`
}

// GetFinderForm godoc
// @Summary Get the finder form seed payload
// @Description Returns the allowed attribute sets, their facet profiles, and the cached full option universe for the store. Falls back to live computation when the cache is cold.
// @Tags Storefront - Finder
// @Produce json
// @Param store_id query int false "Store id (defaults to STORE_ID env)"
// @Success 200 {object} models.ApiResponse
// @Router /store/finder/form [get]
func GetFinderForm(c *gin.Context) {
	ctx, cancel := config.WithCustomTimeout(30 * time.Second)
	defer cancel()

	svc := services.GetFinderService()
	store := storeContext(c)

	profiles, err := svc.Profiles.ProfilesForStore(ctx, store)
	if err != nil {
		// degrade to an empty form rather than failing the page
		profiles = map[int64]models.AttributeProfile{}
	}

	data := FinderFormData{
		Sets:     map[string]string{},
		Profiles: map[string]models.AttributeProfile{},
		Options:  svc.Builder.UniverseForStore(ctx, store),
	}
	for setID, name := range svc.Profiles.AllowedSets(ctx, store) {
		data.Sets[strconv.FormatInt(setID, 10)] = name
	}
	for setID, profile := range profiles {
		data.Profiles[strconv.FormatInt(setID, 10)] = profile
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Finder form fetched successfully", data))
}
