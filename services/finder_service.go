package services

import (
	"log"

	"github.com/TonyMerlin/M2-ProductFinder/cache/finder_cache"
	"github.com/TonyMerlin/M2-ProductFinder/config"
	"github.com/TonyMerlin/M2-ProductFinder/finder"
)

// FinderService wires the option-resolution engine to its concrete
// collaborators: the GORM/pgx catalog, the redis cache store, and the
// profile service. Built once at startup; safe for concurrent requests.
type FinderService struct {
	Resolver *finder.Resolver
	Builder  *finder.CacheBuilder
	Profiles *ProfileService
}

var finderService *FinderService

// InitFinderService must run after config.InitDB and config.ConnectRedis.
func InitFinderService() {
	InitProfileService(config.CatalogGorm)

	catalog := finder.NewSQLCatalog(config.CatalogGorm)
	attrs := finder.NewSQLAttributeSource(config.CatalogGorm, config.CatalogDB)
	resolver := finder.NewResolver(catalog, attrs)

	finderService = &FinderService{
		Resolver: resolver,
		Builder:  finder.NewCacheBuilder(resolver, GetProfileService(), finder_cache.NewRedisStore(config.RedisClient)),
		Profiles: GetProfileService(),
	}
	log.Println("✅ Finder service initialized")
}

func GetFinderService() *FinderService {
	return finderService
}
