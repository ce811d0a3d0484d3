package finder

import (
	"math"
	"strconv"
	"strings"
)

// splitRawValue flattens a raw EAV value into its individual parts: delimited
// multi-value strings are split on commas, arrays are flattened, scalars pass
// through. Empty strings and the "0" sentinel are dropped throughout. EAV
// stores "unanswered" as 0, and those rows must never surface as facets.
func splitRawValue(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if !strings.Contains(t, ",") {
			return keepPart(nil, t)
		}
		var out []string
		for _, part := range strings.Split(t, ",") {
			out = keepPart(out, part)
		}
		return out
	case []string:
		var out []string
		for _, part := range t {
			out = keepPart(out, part)
		}
		return out
	case []any:
		var out []string
		for _, el := range t {
			out = append(out, splitRawValue(el)...)
		}
		return out
	case bool:
		if t {
			return []string{"1"}
		}
		return nil
	case float64:
		return keepPart(nil, formatNumber(t))
	case float32:
		return keepPart(nil, formatNumber(float64(t)))
	case int:
		return keepPart(nil, strconv.Itoa(t))
	case int64:
		return keepPart(nil, strconv.FormatInt(t, 10))
	default:
		return nil
	}
}

func keepPart(out []string, part string) []string {
	part = strings.TrimSpace(part)
	if part == "" || part == "0" {
		return out
	}
	return append(out, part)
}

// formatNumber renders jsonb numbers the way the storefront sends them:
// integral values without a decimal point.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// rawValueMatches reports whether any part of the raw value equals expected.
func rawValueMatches(v any, expected string) bool {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return false
	}
	for _, part := range splitRawValue(v) {
		if part == expected {
			return true
		}
	}
	return false
}
