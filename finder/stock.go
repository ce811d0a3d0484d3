package finder

import (
	"log"

	"gorm.io/gorm"
)

// StockResolver contributes the in-stock condition to a candidate query as
// an INNER JOIN against the product alias "p". Two concrete implementations
// exist; which one runs is decided once at startup by table probing, not
// per call.
type StockResolver interface {
	// Join returns the join clause and its bind arguments.
	Join(websiteID int64) (clause string, args []any)
	// Name identifies the resolver in logs.
	Name() string
}

// IndexedStockResolver uses the site-specific salability index.
type IndexedStockResolver struct{}

func (IndexedStockResolver) Join(websiteID int64) (string, []any) {
	return "INNER JOIN website_stock_index wsi ON wsi.product_id = p.entity_id AND wsi.website_id = ? AND wsi.is_salable = 1",
		[]any{websiteID}
}

func (IndexedStockResolver) Name() string { return "indexed" }

// LegacyStockResolver joins the legacy stock-status view. Website id 0 rows
// apply to every website, so the view keeps working with or without the
// newer inventory subsystem.
type LegacyStockResolver struct{}

func (LegacyStockResolver) Join(websiteID int64) (string, []any) {
	return "INNER JOIN stock_status css ON css.product_id = p.entity_id AND css.stock_status = 1 AND css.website_id IN (0, ?)",
		[]any{websiteID}
}

func (LegacyStockResolver) Name() string { return "legacy" }

// ProbeStockResolver selects the stock strategy by checking whether the
// site-specific index table exists.
func ProbeStockResolver(db *gorm.DB) StockResolver {
	if db != nil && db.Migrator().HasTable("website_stock_index") {
		log.Println("[finder] using indexed stock resolver")
		return IndexedStockResolver{}
	}
	log.Println("[finder] website_stock_index not found, using legacy stock view")
	return LegacyStockResolver{}
}
