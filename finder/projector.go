package finder

import (
	"context"
	"sort"
	"strings"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

// Projector extracts the distinct values a matched set exposes for a target
// attribute and maps them to store-scoped labels.
type Projector struct {
	reader *CatalogReader
}

func NewProjector(reader *CatalogReader) *Projector {
	return &Projector{reader: reader}
}

// Project returns the deduplicated, label-sorted options present on the
// matched records for targetCode, with the same parent fallback the matcher
// applies. A value with no catalog label keeps the raw value as its label;
// a reachable value is never dropped for lack of a label.
func (p *Projector) Project(ctx context.Context, matched *MatchedSet, targetCode string, store StoreContext) []models.OptionPair {
	targetCode = strings.TrimSpace(targetCode)
	if matched == nil || targetCode == "" {
		return []models.OptionPair{}
	}

	seen := make(map[string]struct{})
	for i := range matched.Records {
		for _, part := range splitRawValue(matched.ValueOf(&matched.Records[i], targetCode)) {
			seen[part] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return []models.OptionPair{}
	}

	labels := make(map[string]string)
	for _, opt := range p.reader.GetOptions(ctx, targetCode, store) {
		labels[opt.Value] = opt.Label
	}

	out := make([]models.OptionPair, 0, len(seen))
	for value := range seen {
		label, ok := labels[value]
		if !ok || label == "" {
			label = value
		}
		out = append(out, models.OptionPair{Value: value, Label: label})
	}

	sortOptionsByLabel(out)
	return out
}

// sortOptionsByLabel orders options by label, case-insensitive ascending.
// This ordering is a user-experience contract. Ties break on the raw value
// so repeated projections are deterministic.
func sortOptionsByLabel(opts []models.OptionPair) {
	sort.Slice(opts, func(i, j int) bool {
		li, lj := strings.ToLower(opts[i].Label), strings.ToLower(opts[j].Label)
		if li != lj {
			return li < lj
		}
		return opts[i].Value < opts[j].Value
	})
}
