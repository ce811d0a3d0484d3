package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterStateAdd(t *testing.T) {
	var f FilterState
	f.Add("color_attr", "5")
	f.Add("product_type", " 10 ")
	f.Add("color_attr", "7") // overwrite, not append

	assert.Equal(t, "7", f.Get("color_attr"))
	assert.Equal(t, "10", f.Get("product_type"))
	assert.Len(t, f.Selections, 2)
}

func TestFilterStateAdd_EmptyCodeIgnored(t *testing.T) {
	var f FilterState
	f.Add("  ", "5")
	assert.Empty(t, f.Selections)
}

func TestFilterStateCodes_SkipsEmptyValues(t *testing.T) {
	var f FilterState
	f.Add("color_attr", "5")
	f.Add("product_type", "")

	assert.Equal(t, []string{"color_attr"}, f.Codes())
}

func TestFilterStateIsEmpty(t *testing.T) {
	var f FilterState
	assert.True(t, f.IsEmpty())

	f.Add("color_attr", "")
	assert.True(t, f.IsEmpty())

	min := 10.0
	windowed := f.WithWindow(&min, nil)
	assert.False(t, windowed.IsEmpty())

	f.Add("color_attr", "5")
	assert.False(t, f.IsEmpty())
}

func TestFilterStateWithWindow_CopiesSelections(t *testing.T) {
	var f FilterState
	f.Add("color_attr", "5")

	min, max := 10.0, 99.0
	w := f.WithWindow(&min, &max)
	w.Add("color_attr", "7")

	assert.Equal(t, "5", f.Get("color_attr"))
	assert.Equal(t, "7", w.Get("color_attr"))
	assert.Nil(t, f.PriceMin)
	assert.Equal(t, 10.0, *w.PriceMin)
	assert.Equal(t, 99.0, *w.PriceMax)
}
