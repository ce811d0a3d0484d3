package finder

import (
	"context"
	"log"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

// Matcher determines which product records satisfy a set of constraints:
// attribute-set membership, status, visibility, stock, price window (all
// pushed into the catalog source), and the already-selected facet values
// (evaluated here, with configurable-parent fallback).
type Matcher struct {
	catalog CatalogSource
}

func NewMatcher(catalog CatalogSource) *Matcher {
	return &Matcher{catalog: catalog}
}

// MatchedSet is a matched candidate set plus the batch-hydrated parent
// attribute values needed for fallback resolution.
type MatchedSet struct {
	Records []models.ProductRecord
	parents map[int64]models.AttributeValues
}

// ValueOf resolves a record's raw value for an attribute code. An absent or
// empty own value falls back to the same code on the configurable parent.
// "price" lives in its own column rather than the attribute map, so profiles
// with a price step read it directly.
func (m *MatchedSet) ValueOf(rec *models.ProductRecord, code string) any {
	if code == models.PriceCode {
		return rec.Price
	}
	own := rec.AttributeValue(code)
	if len(splitRawValue(own)) > 0 {
		return own
	}
	if rec.ParentID != nil && m.parents != nil {
		if attrs, ok := m.parents[*rec.ParentID]; ok {
			if pv, ok := attrs[code]; ok {
				return pv
			}
		}
	}
	return own
}

// Match returns the candidate set for an attribute set under the given
// filter state. A record failing any selected constraint is excluded; a
// record with neither an own value nor a parent value for a constraint code
// simply fails that constraint.
func (m *Matcher) Match(ctx context.Context, setID int64, state models.FilterState, store StoreContext) (*MatchedSet, error) {
	if setID <= 0 {
		return &MatchedSet{}, nil
	}

	records, err := m.catalog.Candidates(ctx, CandidateQuery{
		SetID:    setID,
		Store:    store,
		PriceMin: state.PriceMin,
		PriceMax: state.PriceMax,
	})
	if err != nil {
		return nil, err
	}

	matched := &MatchedSet{Records: records, parents: m.hydrateParents(ctx, records)}
	if len(state.Codes()) == 0 {
		return matched, nil
	}

	kept := make([]models.ProductRecord, 0, len(records))
	for i := range records {
		rec := &records[i]
		ok := true
		for _, sel := range state.Selections {
			if sel.Value == "" {
				continue
			}
			if !rawValueMatches(matched.ValueOf(rec, sel.Code), sel.Value) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, *rec)
		}
	}
	matched.Records = kept
	return matched, nil
}

// hydrateParents fetches all referenced parents in a single batch. A failed
// hydration degrades to "no parent fallback" rather than failing the match.
func (m *Matcher) hydrateParents(ctx context.Context, records []models.ProductRecord) map[int64]models.AttributeValues {
	idSet := make(map[int64]struct{})
	for i := range records {
		if pid := records[i].ParentID; pid != nil && *pid > 0 {
			idSet[*pid] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	parents, err := m.catalog.ParentAttributes(ctx, ids)
	if err != nil {
		log.Printf("[finder] parent hydration failed for %d parents: %v", len(ids), err)
		return nil
	}
	return parents
}
