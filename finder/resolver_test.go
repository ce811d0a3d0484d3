package finder

import (
	"context"
	"testing"

	"github.com/TonyMerlin/M2-ProductFinder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panelProfile() models.AttributeProfile {
	return models.AttributeProfile{
		AttributeSetID: 42,
		SetName:        "Panels",
		Sections:       models.SectionList{"Colour", "Type"},
		Map:            models.CodeMap{"Colour": "color_attr", "Type": "product_type"},
	}
}

// Catalog with a configurable parent in set 42 and two children: one with
// its own colour, one inheriting the parent's.
func panelCatalog() *fakeCatalog {
	return &fakeCatalog{
		records: []models.ProductRecord{
			{
				EntityID: 1001, ParentID: intPtr(1000), AttributeSetID: 42,
				Attributes: models.AttributeValues{"color_attr": "5", "product_type": "10"},
			},
			{
				EntityID: 1002, ParentID: intPtr(1000), AttributeSetID: 99,
				Attributes: models.AttributeValues{"color_attr": "", "product_type": "10"},
			},
		},
		parents: map[int64]models.AttributeValues{
			1000: {"color_attr": "7", "product_type": "10"},
		},
	}
}

func panelAttrs() *fakeAttrs {
	return &fakeAttrs{repository: map[string][]models.OptionPair{
		"color_attr": {
			{Value: "5", Label: "Red"},
			{Value: "7", Label: "Green"},
		},
		"product_type": {
			{Value: "10", Label: "Panel"},
		},
	}}
}

func TestResolver_NextOptionsOwnAndInheritedValues(t *testing.T) {
	r := NewResolver(panelCatalog(), panelAttrs())

	got := r.NextOptions(context.Background(), panelProfile(), 42, models.FilterState{}, "Colour", StoreContext{StoreID: 1})
	// one child carries "5" itself, the other inherits "7" from the parent
	assert.Equal(t, []models.OptionPair{
		{Value: "7", Label: "Green"},
		{Value: "5", Label: "Red"},
	}, got)
}

func TestResolver_NextOptionsNarrowsProgressively(t *testing.T) {
	r := NewResolver(panelCatalog(), panelAttrs())

	var state models.FilterState
	state.Add("Colour", "5")

	got := r.NextOptions(context.Background(), panelProfile(), 42, state, "Type", StoreContext{})
	assert.Equal(t, []models.OptionPair{{Value: "10", Label: "Panel"}}, got)

	// tightening a selection can only shrink the reachable set
	state.Add("Type", "10")
	narrowed := r.NextOptions(context.Background(), panelProfile(), 42, state, "Type", StoreContext{})
	assert.LessOrEqual(t, len(narrowed), len(got))
}

func TestResolver_NextOptionsMissingSelectionEmpties(t *testing.T) {
	r := NewResolver(panelCatalog(), panelAttrs())

	var state models.FilterState
	state.Add("Colour", "6") // nothing carries 6

	got := r.NextOptions(context.Background(), panelProfile(), 42, state, "Type", StoreContext{})
	assert.Equal(t, []models.OptionPair{}, got)
}

func TestResolver_NextOptionsFailSoft(t *testing.T) {
	catalog := panelCatalog()
	catalog.failMatch = true
	r := NewResolver(catalog, panelAttrs())

	got := r.NextOptions(context.Background(), panelProfile(), 42, models.FilterState{}, "Colour", StoreContext{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolver_NextOptionsBadInput(t *testing.T) {
	r := NewResolver(panelCatalog(), panelAttrs())

	assert.Empty(t, r.NextOptions(context.Background(), panelProfile(), 0, models.FilterState{}, "Colour", StoreContext{}))
	assert.Empty(t, r.NextOptions(context.Background(), panelProfile(), 42, models.FilterState{}, "  ", StoreContext{}))
}

func TestResolver_NextOptionsIdempotent(t *testing.T) {
	r := NewResolver(panelCatalog(), panelAttrs())

	var state models.FilterState
	state.Add("Type", "10")

	first := r.NextOptions(context.Background(), panelProfile(), 42, state, "Colour", StoreContext{})
	second := r.NextOptions(context.Background(), panelProfile(), 42, state, "Colour", StoreContext{})
	assert.Equal(t, first, second)
}

func TestResolver_UnmappedSectionFallsBackToCode(t *testing.T) {
	r := NewResolver(panelCatalog(), panelAttrs())

	// "color_attr" is not a logical name in the map; it passes through as-is
	got := r.NextOptions(context.Background(), panelProfile(), 42, models.FilterState{}, "color_attr", StoreContext{})
	require.Len(t, got, 2)
}

func TestResolver_PriceStepProjectsFromRestrictedSet(t *testing.T) {
	catalog := panelCatalog()
	catalog.records[0].Price = 120
	catalog.records[1].Price = 110

	profile := models.AttributeProfile{
		AttributeSetID: 42,
		Sections:       models.SectionList{"color", "price"},
		Map:            models.CodeMap{"color": "color_attr"},
	}
	r := NewResolver(catalog, panelAttrs())

	// unrestricted: both children's prices are reachable
	got := r.NextOptions(context.Background(), profile, 42, models.FilterState{}, "price", StoreContext{})
	assert.Equal(t, []models.OptionPair{
		{Value: "110", Label: "110"},
		{Value: "120", Label: "120"},
	}, got)

	// selecting a colour narrows the price step to the matching record
	var state models.FilterState
	state.Add("color", "5")
	got = r.NextOptions(context.Background(), profile, 42, state, "price", StoreContext{})
	assert.Equal(t, []models.OptionPair{{Value: "120", Label: "120"}}, got)
}

func TestResolver_FullOptionUniverse(t *testing.T) {
	r := NewResolver(panelCatalog(), panelAttrs())

	universe := r.FullOptionUniverse(context.Background(), panelProfile(), 42, StoreContext{StoreID: 1})
	require.Len(t, universe, 2)
	assert.Equal(t, []models.OptionPair{
		{Value: "7", Label: "Green"},
		{Value: "5", Label: "Red"},
	}, universe["color_attr"])
	assert.Equal(t, []models.OptionPair{{Value: "10", Label: "Panel"}}, universe["product_type"])
}

func TestResolver_FullOptionUniverseFailSoft(t *testing.T) {
	catalog := panelCatalog()
	catalog.failMatch = true
	r := NewResolver(catalog, panelAttrs())

	universe := r.FullOptionUniverse(context.Background(), panelProfile(), 42, StoreContext{})
	assert.Empty(t, universe)
}

func TestResolver_FullOptionUniverseEmptyProfile(t *testing.T) {
	r := NewResolver(panelCatalog(), panelAttrs())

	universe := r.FullOptionUniverse(context.Background(), models.AttributeProfile{AttributeSetID: 42}, 42, StoreContext{})
	assert.Empty(t, universe)
}
