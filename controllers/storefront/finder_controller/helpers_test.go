package finder_controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestStoreContext_QueryOverridesDefaults(t *testing.T) {
	c := testContext(t, "store_id=3&website_id=2")
	store := storeContext(c)
	assert.Equal(t, int64(3), store.StoreID)
	assert.Equal(t, int64(2), store.WebsiteID)
}

func TestStoreContext_Defaults(t *testing.T) {
	c := testContext(t, "store_id=garbage&website_id=-1")
	store := storeContext(c)
	assert.Equal(t, int64(1), store.StoreID)
	assert.Equal(t, int64(1), store.WebsiteID)
}

func TestParseFilterState(t *testing.T) {
	c := testContext(t, "filters[Colour]=5&filters[Type]=10&filters[price_min]=10&filters[price_max]=200")
	state := parseFilterState(c)

	assert.Equal(t, "5", state.Get("Colour"))
	assert.Equal(t, "10", state.Get("Type"))
	require.NotNil(t, state.PriceMin)
	require.NotNil(t, state.PriceMax)
	assert.Equal(t, 10.0, *state.PriceMin)
	assert.Equal(t, 200.0, *state.PriceMax)
}

func TestParseFilterState_TopLevelPriceWins(t *testing.T) {
	c := testContext(t, "filters[price_min]=10&price_min=25")
	state := parseFilterState(c)

	require.NotNil(t, state.PriceMin)
	assert.Equal(t, 25.0, *state.PriceMin)
}

func TestParseFilterState_Empty(t *testing.T) {
	state := parseFilterState(testContext(t, ""))
	assert.True(t, state.IsEmpty())
}

func TestParsePagination(t *testing.T) {
	page, limit := parsePagination(testContext(t, "p=3&limit=24"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 24, limit)

	page, limit = parsePagination(testContext(t, "p=0&limit=500"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 12, limit)

	page, limit = parsePagination(testContext(t, ""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 12, limit)
}

func TestBuildFinderOrderClause(t *testing.T) {
	assert.Equal(t, "COALESCE(pip.final_price, p.price) DESC", buildFinderOrderClause("price", "desc"))
	assert.Equal(t, "p.created_at ASC", buildFinderOrderClause("created_at", "asc"))
	assert.Equal(t, "p.name DESC", buildFinderOrderClause("name", "DESC"))
	// anything outside the whitelist falls back
	assert.Equal(t, "p.name ASC", buildFinderOrderClause("price; DROP TABLE", "ASC"))
	assert.Equal(t, "p.name ASC", buildFinderOrderClause("", ""))
}

func TestAttributeCondition(t *testing.T) {
	args := []interface{}{}
	cond, ok := attributeCondition("color_attr", []string{"5", "7"}, &args)
	require.True(t, ok)

	assert.Contains(t, cond, "p.attributes->>'color_attr' IN (?,?)")
	assert.Contains(t, cond, "string_to_array")
	// values bound twice, IN list then array overlap
	assert.Equal(t, []interface{}{"5", "7", "5", "7"}, args)
	assert.Equal(t, strings.Count(cond, "?"), len(args))
}

func TestAttributeCondition_RejectsBadCode(t *testing.T) {
	args := []interface{}{}

	_, ok := attributeCondition("color'; --", []string{"5"}, &args)
	assert.False(t, ok)

	_, ok = attributeCondition("Color_Attr", []string{"5"}, &args)
	assert.False(t, ok, "uppercase codes are outside the whitelist")

	_, ok = attributeCondition("color_attr", nil, &args)
	assert.False(t, ok)

	assert.Empty(t, args)
}
