package finder

import (
	"context"
	"testing"

	"github.com/TonyMerlin/M2-ProductFinder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		records: []models.ProductRecord{
			{
				EntityID: 1001, ParentID: intPtr(1000), AttributeSetID: 42,
				Attributes: models.AttributeValues{"color_attr": "5", "product_type": "10"},
			},
			{
				// own colour empty: inherits from parent 1000
				EntityID: 1002, ParentID: intPtr(1000), AttributeSetID: 99,
				Attributes: models.AttributeValues{"color_attr": "", "product_type": "10"},
			},
			{
				EntityID: 1003, AttributeSetID: 42,
				Attributes: models.AttributeValues{"color_attr": "6", "material": "20,21"},
			},
		},
		parents: map[int64]models.AttributeValues{
			1000: {"color_attr": "7", "product_type": "10"},
		},
	}
}

func TestMatcher_NoConstraintsKeepsAll(t *testing.T) {
	m := NewMatcher(testCatalog())

	matched, err := m.Match(context.Background(), 42, models.FilterState{}, StoreContext{StoreID: 1, WebsiteID: 1})
	require.NoError(t, err)
	assert.Len(t, matched.Records, 3)
}

func TestMatcher_OwnValueConstraint(t *testing.T) {
	m := NewMatcher(testCatalog())

	var state models.FilterState
	state.Add("color_attr", "5")

	matched, err := m.Match(context.Background(), 42, state, StoreContext{})
	require.NoError(t, err)
	require.Len(t, matched.Records, 1)
	assert.Equal(t, int64(1001), matched.Records[0].EntityID)
}

func TestMatcher_ParentFallbackConstraint(t *testing.T) {
	m := NewMatcher(testCatalog())

	var state models.FilterState
	state.Add("color_attr", "7")

	matched, err := m.Match(context.Background(), 42, state, StoreContext{})
	require.NoError(t, err)
	require.Len(t, matched.Records, 1)
	// 1002 has no own colour, so the parent's "7" applies; 1001 has its
	// own "5" which shadows the parent
	assert.Equal(t, int64(1002), matched.Records[0].EntityID)
}

func TestMatcher_MultiValueAttribute(t *testing.T) {
	m := NewMatcher(testCatalog())

	var state models.FilterState
	state.Add("material", "21")

	matched, err := m.Match(context.Background(), 42, state, StoreContext{})
	require.NoError(t, err)
	require.Len(t, matched.Records, 1)
	assert.Equal(t, int64(1003), matched.Records[0].EntityID)
}

func TestMatcher_NoValueFailsConstraint(t *testing.T) {
	m := NewMatcher(testCatalog())

	var state models.FilterState
	state.Add("nonexistent_code", "1")

	matched, err := m.Match(context.Background(), 42, state, StoreContext{})
	require.NoError(t, err)
	assert.Empty(t, matched.Records)
}

func TestMatcher_MultipleConstraintsAreConjunctive(t *testing.T) {
	m := NewMatcher(testCatalog())

	var state models.FilterState
	state.Add("color_attr", "5")
	state.Add("product_type", "10")

	matched, err := m.Match(context.Background(), 42, state, StoreContext{})
	require.NoError(t, err)
	require.Len(t, matched.Records, 1)
	assert.Equal(t, int64(1001), matched.Records[0].EntityID)

	state.Add("product_type", "11")
	matched, err = m.Match(context.Background(), 42, state, StoreContext{})
	require.NoError(t, err)
	assert.Empty(t, matched.Records)
}

func TestMatcher_InvalidSetID(t *testing.T) {
	catalog := testCatalog()
	m := NewMatcher(catalog)

	matched, err := m.Match(context.Background(), 0, models.FilterState{}, StoreContext{})
	require.NoError(t, err)
	assert.Empty(t, matched.Records)
	// no catalog round trip for a bad set id
	assert.Equal(t, CandidateQuery{}, catalog.lastQuery)
}

func TestMatcher_PriceWindowForwardedToCatalog(t *testing.T) {
	catalog := testCatalog()
	m := NewMatcher(catalog)

	state := models.FilterState{}.WithWindow(floatPtr(10), floatPtr(99.5))
	_, err := m.Match(context.Background(), 42, state, StoreContext{StoreID: 1, WebsiteID: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(42), catalog.lastQuery.SetID)
	assert.Equal(t, int64(2), catalog.lastQuery.Store.WebsiteID)
	require.NotNil(t, catalog.lastQuery.PriceMin)
	require.NotNil(t, catalog.lastQuery.PriceMax)
	assert.Equal(t, 10.0, *catalog.lastQuery.PriceMin)
	assert.Equal(t, 99.5, *catalog.lastQuery.PriceMax)
}

func TestMatcher_ParentHydrationFailureDegrades(t *testing.T) {
	catalog := testCatalog()
	catalog.failParent = true
	m := NewMatcher(catalog)

	var state models.FilterState
	state.Add("color_attr", "7")

	matched, err := m.Match(context.Background(), 42, state, StoreContext{})
	require.NoError(t, err)
	// without parents nothing carries "7"
	assert.Empty(t, matched.Records)
}

func TestMatcher_CatalogErrorPropagates(t *testing.T) {
	catalog := testCatalog()
	catalog.failMatch = true
	m := NewMatcher(catalog)

	_, err := m.Match(context.Background(), 42, models.FilterState{}, StoreContext{})
	assert.Error(t, err)
}

func TestMatchedSet_ValueOfOwnShadowsParent(t *testing.T) {
	matched := &MatchedSet{parents: map[int64]models.AttributeValues{
		1000: {"color_attr": "7"},
	}}
	rec := models.ProductRecord{
		EntityID: 1001, ParentID: intPtr(1000),
		Attributes: models.AttributeValues{"color_attr": "5"},
	}
	assert.Equal(t, "5", matched.ValueOf(&rec, "color_attr"))

	rec.Attributes["color_attr"] = ""
	assert.Equal(t, "7", matched.ValueOf(&rec, "color_attr"))

	// "0" sentinel counts as unanswered too
	rec.Attributes["color_attr"] = "0"
	assert.Equal(t, "7", matched.ValueOf(&rec, "color_attr"))
}

func TestMatchedSet_ValueOfPriceColumn(t *testing.T) {
	matched := &MatchedSet{}
	rec := models.ProductRecord{
		EntityID:   1,
		Price:      95.5,
		Attributes: models.AttributeValues{"price": "ignored"},
	}
	assert.Equal(t, 95.5, matched.ValueOf(&rec, "price"))
}
