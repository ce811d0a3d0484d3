package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRawValue_Scalars(t *testing.T) {
	assert.Equal(t, []string{"5"}, splitRawValue("5"))
	assert.Equal(t, []string{"red"}, splitRawValue(" red "))
	assert.Equal(t, []string{"7"}, splitRawValue(float64(7)))
	assert.Equal(t, []string{"7.5"}, splitRawValue(7.5))
	assert.Equal(t, []string{"42"}, splitRawValue(42))
	assert.Equal(t, []string{"42"}, splitRawValue(int64(42)))
	assert.Equal(t, []string{"1"}, splitRawValue(true))
}

func TestSplitRawValue_Sentinels(t *testing.T) {
	assert.Empty(t, splitRawValue(nil))
	assert.Empty(t, splitRawValue(""))
	assert.Empty(t, splitRawValue("0"))
	assert.Empty(t, splitRawValue("  "))
	assert.Empty(t, splitRawValue(float64(0)))
	assert.Empty(t, splitRawValue(false))
}

func TestSplitRawValue_MultiValue(t *testing.T) {
	assert.Equal(t, []string{"5", "7"}, splitRawValue("5,7"))
	// sentinels dropped inside a delimited value too
	assert.Equal(t, []string{"5", "9"}, splitRawValue("5,0,,9"))
	assert.Equal(t, []string{"a", "b"}, splitRawValue(" a , b "))
}

func TestSplitRawValue_Arrays(t *testing.T) {
	assert.Equal(t, []string{"5", "7"}, splitRawValue([]string{"5", "0", "7"}))
	// jsonb arrays decode to []any with float64 numbers
	assert.Equal(t, []string{"5", "6", "7"}, splitRawValue([]any{float64(5), "6,7", ""}))
}

func TestSplitRawValue_UnknownType(t *testing.T) {
	assert.Empty(t, splitRawValue(struct{}{}))
}

func TestRawValueMatches(t *testing.T) {
	assert.True(t, rawValueMatches("5,7", "7"))
	assert.True(t, rawValueMatches("5", "5"))
	assert.False(t, rawValueMatches("5,7", "6"))
	assert.False(t, rawValueMatches("57", "5"))
	assert.False(t, rawValueMatches(nil, "5"))
	// an empty expectation never matches, not even empty values
	assert.False(t, rawValueMatches("", ""))
	assert.False(t, rawValueMatches("0", "0"))
}
