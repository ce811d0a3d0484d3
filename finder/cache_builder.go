package finder

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

const (
	// CacheTag groups every finder cache entry for bulk invalidation.
	CacheTag = "finder_opts"

	// DefaultCacheTTL bounds staleness even if no invalidation fires.
	DefaultCacheTTL = time.Hour
)

// CacheBuilder precomputes and persists the full per-profile option universe
// so the first page render does not need live computation. Writes are
// best-effort: a failed save never fails the build, and a corrupt read is a
// cache miss. There is no locking discipline. Concurrent builders for the
// same store may race and the last writer wins, which is harmless because
// the payload is a pure function of current catalog state.
type CacheBuilder struct {
	resolver *Resolver
	profiles ProfileSource
	cache    CacheStore
	ttl      time.Duration
}

func NewCacheBuilder(resolver *Resolver, profiles ProfileSource, cache CacheStore) *CacheBuilder {
	return &CacheBuilder{
		resolver: resolver,
		profiles: profiles,
		cache:    cache,
		ttl:      DefaultCacheTTL,
	}
}

// Signature hashes the inputs that determine a cache entry's content: store,
// website, and the sorted attribute codes per set. A profile edit therefore
// changes the key and strands the stale entry until TTL or a tag purge.
func Signature(store StoreContext, profiles map[int64]models.AttributeProfile) string {
	sets := make(map[string][]string, len(profiles))
	for setID, profile := range profiles {
		codes := profile.AttributeCodes()
		sort.Strings(codes)
		sets[strconv.FormatInt(setID, 10)] = codes
	}

	payload, _ := json.Marshal(struct {
		Store   int64               `json:"store"`
		Website int64               `json:"website"`
		Sets    map[string][]string `json:"sets"`
	}{store.StoreID, store.WebsiteID, sets})

	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:])
}

func cacheKey(store StoreContext, signature string) string {
	return fmt.Sprintf("finder:opts:store:%d:%s", store.StoreID, signature)
}

// BuildForStore computes the option universe for every profiled attribute
// set and persists it. Returns the number of sets processed.
func (b *CacheBuilder) BuildForStore(ctx context.Context, store StoreContext) (int, error) {
	profiles, err := b.profiles.ProfilesForStore(ctx, store)
	if err != nil {
		return 0, err
	}

	universe := b.computeUniverse(ctx, store, profiles)
	b.save(ctx, store, profiles, universe)
	return len(profiles), nil
}

// ReadForStore returns the cached universe, or an empty map when the entry
// is absent or unreadable.
func (b *CacheBuilder) ReadForStore(ctx context.Context, store StoreContext) models.OptionUniverse {
	profiles, err := b.profiles.ProfilesForStore(ctx, store)
	if err != nil {
		return models.OptionUniverse{}
	}
	return b.read(ctx, store, profiles)
}

// UniverseForStore is the first-render path: cached result when available,
// otherwise a live computation with a best-effort save.
func (b *CacheBuilder) UniverseForStore(ctx context.Context, store StoreContext) models.OptionUniverse {
	profiles, err := b.profiles.ProfilesForStore(ctx, store)
	if err != nil {
		log.Printf("[finder] profile load failed for store %d: %v", store.StoreID, err)
		return models.OptionUniverse{}
	}

	if cached := b.read(ctx, store, profiles); len(cached) > 0 {
		return cached
	}

	fresh := b.computeUniverse(ctx, store, profiles)
	b.save(ctx, store, profiles, fresh)
	return fresh
}

// ClearForStore drops the store's current entry. Falls back to a tag purge
// when the profiles needed to recompute the key cannot be loaded.
func (b *CacheBuilder) ClearForStore(ctx context.Context, store StoreContext) error {
	profiles, err := b.profiles.ProfilesForStore(ctx, store)
	if err != nil {
		return b.cache.PurgeTag(ctx, CacheTag)
	}
	return b.cache.Remove(ctx, cacheKey(store, Signature(store, profiles)))
}

// PurgeAll removes every finder cache entry across stores.
func (b *CacheBuilder) PurgeAll(ctx context.Context) error {
	return b.cache.PurgeTag(ctx, CacheTag)
}

func (b *CacheBuilder) computeUniverse(ctx context.Context, store StoreContext, profiles map[int64]models.AttributeProfile) models.OptionUniverse {
	universe := make(models.OptionUniverse, len(profiles))
	for setID, profile := range profiles {
		universe[strconv.FormatInt(setID, 10)] = b.resolver.FullOptionUniverse(ctx, profile, setID, store)
	}
	return universe
}

func (b *CacheBuilder) read(ctx context.Context, store StoreContext, profiles map[int64]models.AttributeProfile) models.OptionUniverse {
	raw, ok := b.cache.Load(ctx, cacheKey(store, Signature(store, profiles)))
	if !ok {
		return models.OptionUniverse{}
	}

	var universe models.OptionUniverse
	if err := json.Unmarshal(raw, &universe); err != nil || universe == nil {
		// corrupt entry: treat as a miss
		return models.OptionUniverse{}
	}
	return universe
}

func (b *CacheBuilder) save(ctx context.Context, store StoreContext, profiles map[int64]models.AttributeProfile, universe models.OptionUniverse) {
	payload, err := json.Marshal(universe)
	if err != nil {
		log.Printf("[finder] cache marshal failed for store %d: %v", store.StoreID, err)
		return
	}
	key := cacheKey(store, Signature(store, profiles))
	if err := b.cache.SaveWithTag(ctx, key, payload, CacheTag, b.ttl); err != nil {
		log.Printf("[finder] cache write failed for %s: %v", key, err)
	}
}
