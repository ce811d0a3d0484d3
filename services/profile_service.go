package services

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/TonyMerlin/M2-ProductFinder/cache/profile_cache"
	"github.com/TonyMerlin/M2-ProductFinder/finder"
	"github.com/TonyMerlin/M2-ProductFinder/models"
)

// ProfileService loads attribute-set profiles for a store, applying the
// default-scope fallback (a store-specific row overrides the store_id 0
// row for the same set) and the ALLOWED_ATTRIBUTE_SETS env filter.
// Malformed profiles are skipped with a log line, never propagated: the
// finder must stay usable with partial misconfiguration.
type ProfileService struct {
	db *gorm.DB
}

var profileService *ProfileService

func InitProfileService(db *gorm.DB) {
	profileService = &ProfileService{db: db}
}

func GetProfileService() *ProfileService {
	return profileService
}

// ProfilesForStore implements finder.ProfileSource.
func (s *ProfileService) ProfilesForStore(ctx context.Context, store finder.StoreContext) (map[int64]models.AttributeProfile, error) {
	if cached, ok := profile_cache.Get(store.StoreID); ok {
		return cached, nil
	}

	rows := make([]models.AttributeProfile, 0)
	if err := s.db.WithContext(ctx).
		Where("store_id IN (0, ?)", store.StoreID).
		Order("attribute_set_id ASC, store_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	allowed := allowedSetIDs()

	out := make(map[int64]models.AttributeProfile, len(rows))
	for _, row := range rows {
		if len(allowed) > 0 {
			if _, ok := allowed[row.AttributeSetID]; !ok {
				continue
			}
		}
		if err := row.Validate(); err != nil {
			log.Printf("[profiles] skipping invalid profile %s: %v", row.ID, err)
			continue
		}
		// rows are ordered store_id ASC, so a store-specific row wins
		out[row.AttributeSetID] = row
	}

	profile_cache.Set(store.StoreID, out)
	return out, nil
}

// ProfileFor returns the profile for one attribute set, or a zero profile
// (identity mapping) when none is configured.
func (s *ProfileService) ProfileFor(ctx context.Context, store finder.StoreContext, setID int64) models.AttributeProfile {
	profiles, err := s.ProfilesForStore(ctx, store)
	if err != nil {
		log.Printf("[profiles] load failed for store %d: %v", store.StoreID, err)
		return models.AttributeProfile{}
	}
	return profiles[setID]
}

// AllowedSets returns setID -> display name for every profiled set, for the
// storefront form payload.
func (s *ProfileService) AllowedSets(ctx context.Context, store finder.StoreContext) map[int64]string {
	profiles, err := s.ProfilesForStore(ctx, store)
	if err != nil {
		log.Printf("[profiles] load failed for store %d: %v", store.StoreID, err)
		return map[int64]string{}
	}

	out := make(map[int64]string, len(profiles))
	for setID, profile := range profiles {
		name := profile.SetName
		if name == "" {
			var set models.AttributeSet
			if err := s.db.WithContext(ctx).First(&set, "attribute_set_id = ?", setID).Error; err == nil {
				name = set.Name
			}
		}
		out[setID] = name
	}
	return out
}

// allowedSetIDs reads the ALLOWED_ATTRIBUTE_SETS CSV. Empty means "all".
func allowedSetIDs() map[int64]struct{} {
	csv := strings.TrimSpace(os.Getenv("ALLOWED_ATTRIBUTE_SETS"))
	if csv == "" {
		return nil
	}
	out := make(map[int64]struct{})
	for _, part := range strings.Split(csv, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil && id > 0 {
			out[id] = struct{}{}
		}
	}
	return out
}
