package finder

import (
	"context"
	"log"
	"strings"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

// CatalogReader resolves the store-scoped option list for an attribute code.
// It tries three independent strategies in order and returns the first
// non-empty normalized result. Attribute metadata problems must never break
// facet rendering, so the reader swallows strategy errors and degrades to an
// empty list.
type CatalogReader struct {
	src AttributeSource
}

func NewCatalogReader(src AttributeSource) *CatalogReader {
	return &CatalogReader{src: src}
}

// GetOptions returns the ordered {value,label} pairs visible for the store,
// with placeholder entries removed. Never returns an error.
func (r *CatalogReader) GetOptions(ctx context.Context, code string, store StoreContext) []models.OptionPair {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}

	strategies := []struct {
		name string
		fn   func(context.Context, string, StoreContext) ([]models.OptionPair, error)
	}{
		{"repository", r.src.RepositoryOptions},
		{"source-model", r.src.SourceModelOptions},
		{"option-table", r.src.OptionTableOptions},
	}

	for _, strat := range strategies {
		rows, err := strat.fn(ctx, code, store)
		if err != nil {
			log.Printf("[finder] %s options lookup failed for %q: %v", strat.name, code, err)
			continue
		}
		if norm := normalizeOptions(rows); len(norm) > 0 {
			return norm
		}
	}
	return nil
}

// normalizeOptions drops placeholder entries and backfills missing labels
// with the raw value.
func normalizeOptions(rows []models.OptionPair) []models.OptionPair {
	out := make([]models.OptionPair, 0, len(rows))
	for _, row := range rows {
		if isPlaceholder(row.Value, row.Label) {
			continue
		}
		label := row.Label
		if label == "" {
			label = row.Value
		}
		out = append(out, models.OptionPair{Value: row.Value, Label: label})
	}
	return out
}

// isPlaceholder recognizes the "no real choice" entries attribute sources
// emit: empty values, a zero value with a blank label, and the
// "please select" prompt row.
func isPlaceholder(value, label string) bool {
	if value == "" {
		return true
	}
	if value == "0" && strings.TrimSpace(label) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(label), "please select")
}
