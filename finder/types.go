// Package finder implements the faceted option-resolution engine: given a
// partial selection it computes which values remain choosable for the next
// attribute, and it precomputes the full per-profile option universe for
// first-render seeding. The engine is stateless; every call is a pure
// function of (profile, constraints, store context, catalog state).
package finder

import (
	"context"
	"time"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

// StoreContext scopes a request to one store view and its website.
type StoreContext struct {
	StoreID   int64 `json:"store_id"`
	WebsiteID int64 `json:"website_id"`
}

// CandidateQuery describes the SQL-level portion of a match: attribute-set
// membership (own set or configurable parent's set), status, visibility,
// stock, and the optional inclusive price window. Attribute-value
// constraints are evaluated in Go by the Matcher afterwards.
type CandidateQuery struct {
	SetID    int64
	Store    StoreContext
	PriceMin *float64
	PriceMax *float64
}

// CatalogSource is the catalog data-access collaborator.
type CatalogSource interface {
	// Candidates returns product records passing the query's set, status,
	// visibility, stock, and price conditions.
	Candidates(ctx context.Context, q CandidateQuery) ([]models.ProductRecord, error)
	// ParentAttributes batch-fetches the attribute value maps for the given
	// parent entity ids, avoiding per-record lookups.
	ParentAttributes(ctx context.Context, parentIDs []int64) (map[int64]models.AttributeValues, error)
}

// AttributeSource exposes the three option-resolution strategies the
// Attribute Catalog Reader tries in order. Each may fail independently;
// the reader tolerates attributes whose metadata is only partially migrated.
type AttributeSource interface {
	RepositoryOptions(ctx context.Context, code string, store StoreContext) ([]models.OptionPair, error)
	SourceModelOptions(ctx context.Context, code string, store StoreContext) ([]models.OptionPair, error)
	OptionTableOptions(ctx context.Context, code string, store StoreContext) ([]models.OptionPair, error)
}

// CacheStore is the tagged key/value cache collaborator.
type CacheStore interface {
	SaveWithTag(ctx context.Context, key string, payload []byte, tag string, ttl time.Duration) error
	// Load returns the payload and true on a hit; any error is a miss.
	Load(ctx context.Context, key string) ([]byte, bool)
	Remove(ctx context.Context, key string) error
	PurgeTag(ctx context.Context, tag string) error
}

// ProfileSource supplies the scope-resolved profiles for a store, keyed by
// attribute-set id.
type ProfileSource interface {
	ProfilesForStore(ctx context.Context, store StoreContext) (map[int64]models.AttributeProfile, error)
}
