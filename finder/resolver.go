package finder

import (
	"context"
	"log"
	"strings"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

// Resolver orchestrates Matcher and Projector to answer "what are the valid
// next choices given this partial selection" and "what is the full option
// universe for a profile". Both operations fail soft: bad input or a failed
// catalog query yields an empty result, never an error, because the
// consuming widget has no error channel of its own.
type Resolver struct {
	matcher   *Matcher
	projector *Projector
}

func NewResolver(catalog CatalogSource, attrs AttributeSource) *Resolver {
	return &Resolver{
		matcher:   NewMatcher(catalog),
		projector: NewProjector(NewCatalogReader(attrs)),
	}
}

// NextOptions computes the values still choosable for nextCode under the
// caller's accumulated selection. Logical step names in the filter state and
// in nextCode are mapped to attribute codes through the profile.
func (r *Resolver) NextOptions(ctx context.Context, profile models.AttributeProfile, setID int64, state models.FilterState, nextCode string, store StoreContext) []models.OptionPair {
	nextCode = strings.TrimSpace(nextCode)
	if setID <= 0 || nextCode == "" {
		return []models.OptionPair{}
	}

	matched, err := r.matcher.Match(ctx, setID, r.mapFilterState(profile, state), store)
	if err != nil {
		log.Printf("[finder] match failed for set %d: %v", setID, err)
		return []models.OptionPair{}
	}
	return r.projector.Project(ctx, matched, profile.SectionCode(nextCode), store)
}

// FullOptionUniverse computes, for every attribute code the profile
// references, the options reachable under the empty selection. Used for
// first-render seeding and by the cache builder.
func (r *Resolver) FullOptionUniverse(ctx context.Context, profile models.AttributeProfile, setID int64, store StoreContext) models.ResolvedOptionSet {
	out := models.ResolvedOptionSet{}
	codes := profile.AttributeCodes()
	if setID <= 0 || len(codes) == 0 {
		return out
	}

	matched, err := r.matcher.Match(ctx, setID, models.FilterState{}, store)
	if err != nil {
		log.Printf("[finder] universe match failed for set %d: %v", setID, err)
		return out
	}

	for _, code := range codes {
		out[code] = r.projector.Project(ctx, matched, code, store)
	}
	return out
}

// mapFilterState translates logical selection keys to attribute codes via
// the profile, dropping empty values along the way.
func (r *Resolver) mapFilterState(profile models.AttributeProfile, state models.FilterState) models.FilterState {
	mapped := models.FilterState{PriceMin: state.PriceMin, PriceMax: state.PriceMax}
	for _, sel := range state.Selections {
		if strings.TrimSpace(sel.Value) == "" {
			continue
		}
		mapped.Add(profile.SectionCode(sel.Code), sel.Value)
	}
	return mapped
}
