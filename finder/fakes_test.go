package finder

import (
	"context"
	"errors"
	"time"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

// In-memory collaborators shared by the engine tests.

type fakeCatalog struct {
	records    []models.ProductRecord
	parents    map[int64]models.AttributeValues
	lastQuery  CandidateQuery
	failMatch  bool
	failParent bool
}

func (f *fakeCatalog) Candidates(_ context.Context, q CandidateQuery) ([]models.ProductRecord, error) {
	f.lastQuery = q
	if f.failMatch {
		return nil, errors.New("catalog unavailable")
	}
	out := make([]models.ProductRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeCatalog) ParentAttributes(_ context.Context, ids []int64) (map[int64]models.AttributeValues, error) {
	if f.failParent {
		return nil, errors.New("parent lookup failed")
	}
	out := make(map[int64]models.AttributeValues)
	for _, id := range ids {
		if attrs, ok := f.parents[id]; ok {
			out[id] = attrs
		}
	}
	return out, nil
}

type fakeAttrs struct {
	repository  map[string][]models.OptionPair
	sourceModel map[string][]models.OptionPair
	optionTable map[string][]models.OptionPair
	repoErr     error
	sourceErr   error
	tableErr    error
	repoCalls   int
	sourceCalls int
	tableCalls  int
}

func (f *fakeAttrs) RepositoryOptions(_ context.Context, code string, _ StoreContext) ([]models.OptionPair, error) {
	f.repoCalls++
	if f.repoErr != nil {
		return nil, f.repoErr
	}
	return f.repository[code], nil
}

func (f *fakeAttrs) SourceModelOptions(_ context.Context, code string, _ StoreContext) ([]models.OptionPair, error) {
	f.sourceCalls++
	if f.sourceErr != nil {
		return nil, f.sourceErr
	}
	return f.sourceModel[code], nil
}

func (f *fakeAttrs) OptionTableOptions(_ context.Context, code string, _ StoreContext) ([]models.OptionPair, error) {
	f.tableCalls++
	if f.tableErr != nil {
		return nil, f.tableErr
	}
	return f.optionTable[code], nil
}

type fakeCache struct {
	entries  map[string][]byte
	tags     map[string][]string
	saveErr  error
	loadMiss bool
	saves    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte), tags: make(map[string][]string)}
}

func (f *fakeCache) SaveWithTag(_ context.Context, key string, payload []byte, tag string, _ time.Duration) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries[key] = payload
	f.tags[tag] = append(f.tags[tag], key)
	return nil
}

func (f *fakeCache) Load(_ context.Context, key string) ([]byte, bool) {
	if f.loadMiss {
		return nil, false
	}
	payload, ok := f.entries[key]
	return payload, ok
}

func (f *fakeCache) Remove(_ context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) PurgeTag(_ context.Context, tag string) error {
	for _, key := range f.tags[tag] {
		delete(f.entries, key)
	}
	delete(f.tags, tag)
	return nil
}

type fakeProfiles struct {
	byStore map[int64]map[int64]models.AttributeProfile
	err     error
}

func (f *fakeProfiles) ProfilesForStore(_ context.Context, store StoreContext) (map[int64]models.AttributeProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byStore[store.StoreID], nil
}

func intPtr(v int64) *int64       { return &v }
func floatPtr(v float64) *float64 { return &v }
