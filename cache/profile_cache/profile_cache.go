package profile_cache

import (
	"sync"
	"time"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

const TTL = 5 * time.Minute

// ── Per-store profile cache ──────────────────────────────────────────────────
// Stores the scope-resolved profiles per store so repeated finder requests
// don't reload and revalidate them. Invalidated whenever profiles change.

type entry struct {
	profiles  map[int64]models.AttributeProfile
	fetchedAt time.Time
}

var (
	mu      sync.RWMutex
	byStore = make(map[int64]*entry)
)

func Get(storeID int64) (map[int64]models.AttributeProfile, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if e, ok := byStore[storeID]; ok && time.Since(e.fetchedAt) < TTL {
		return e.profiles, true
	}
	return nil, false
}

func Set(storeID int64, profiles map[int64]models.AttributeProfile) {
	mu.Lock()
	defer mu.Unlock()
	byStore[storeID] = &entry{profiles: profiles, fetchedAt: time.Now()}
}

// ── Invalidate everything (call on any profile create/update/delete) ─────────

func Invalidate() {
	mu.Lock()
	defer mu.Unlock()
	byStore = make(map[int64]*entry)
}
