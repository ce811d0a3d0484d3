package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ═══════════════════════════════════════════════════════════
// Catalog constants
// ═══════════════════════════════════════════════════════════

const (
	StatusEnabled  = 1
	StatusDisabled = 2

	VisibilityNotVisible    = 1
	VisibilityInCatalog     = 2
	VisibilityInSearch      = 3
	VisibilityCatalogSearch = 4

	TypeSimple       = "simple"
	TypeConfigurable = "configurable"

	// PriceCode is the pseudo attribute code for a profile's price step.
	// Price is a real column, not a jsonb attribute.
	PriceCode = "price"
)

// BrowsableVisibilities are the tiers shown on their own in the storefront.
// Not-visible-individually children are only reachable through their parent.
var BrowsableVisibilities = []int{VisibilityInCatalog, VisibilityInSearch, VisibilityCatalogSearch}

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

// AttributeValues is the per-product EAV projection stored as jsonb:
// attribute code -> raw value (scalar, comma-delimited string, or array).
type AttributeValues map[string]any

func (a *AttributeValues) Scan(value interface{}) error {
	if value == nil {
		*a = make(AttributeValues)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan AttributeValues")
	}
	return json.Unmarshal(bytes, a)
}

func (a AttributeValues) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(map[string]any{})
	}
	return json.Marshal(a)
}

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

// ProductRecord is a read-only projection of a catalog item. The finder core
// never mutates it; writes belong to the catalog import pipeline.
type ProductRecord struct {
	EntityID       int64           `json:"entity_id" gorm:"column:entity_id;primaryKey"`
	ParentID       *int64          `json:"parent_id,omitempty" gorm:"column:parent_id;index:idx_products_parent"`
	AttributeSetID int64           `json:"attribute_set_id" gorm:"column:attribute_set_id;not null;index:idx_products_set"`
	SKU            string          `json:"sku" gorm:"column:sku;uniqueIndex"`
	Name           string          `json:"name" gorm:"not null;index"`
	TypeID         string          `json:"type_id" gorm:"column:type_id;not null;default:'simple'"`
	Status         int             `json:"status" gorm:"not null;default:1;index"`
	Visibility     int             `json:"visibility" gorm:"not null;default:4"`
	Price          float64         `json:"price" gorm:"type:numeric(12,4);not null;check:price >= 0"`
	Attributes     AttributeValues `json:"attributes" gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ProductRecord) TableName() string {
	return "catalog_products"
}

// AttributeValue returns the product's own raw value for a code, or nil.
func (p *ProductRecord) AttributeValue(code string) any {
	if p.Attributes == nil {
		return nil
	}
	return p.Attributes[code]
}

// ═══════════════════════════════════════════════════════════
// Stock & price index tables
// ═══════════════════════════════════════════════════════════

// StockStatus is the legacy stock view: website_id 0 means "all websites".
type StockStatus struct {
	ProductID   int64 `json:"product_id" gorm:"column:product_id;primaryKey"`
	WebsiteID   int64 `json:"website_id" gorm:"column:website_id;primaryKey"`
	StockStatus int   `json:"stock_status" gorm:"column:stock_status;not null;default:0"`
}

func (StockStatus) TableName() string {
	return "stock_status"
}

// WebsiteStockIndex is the site-specific salability index. Optional: the
// matcher probes for this table at startup and falls back to StockStatus.
type WebsiteStockIndex struct {
	ProductID int64 `json:"product_id" gorm:"column:product_id;primaryKey"`
	WebsiteID int64 `json:"website_id" gorm:"column:website_id;primaryKey"`
	IsSalable int   `json:"is_salable" gorm:"column:is_salable;not null;default:0"`
}

func (WebsiteStockIndex) TableName() string {
	return "website_stock_index"
}

// PriceIndex carries the promotion-aware final price per website and
// customer group. The finder only reads customer group 0.
type PriceIndex struct {
	EntityID        int64   `json:"entity_id" gorm:"column:entity_id;primaryKey"`
	WebsiteID       int64   `json:"website_id" gorm:"column:website_id;primaryKey"`
	CustomerGroupID int64   `json:"customer_group_id" gorm:"column:customer_group_id;primaryKey"`
	FinalPrice      float64 `json:"final_price" gorm:"column:final_price;type:numeric(12,4);not null"`
}

func (PriceIndex) TableName() string {
	return "price_index"
}

// AttributeSet names a product grouping. Profiles reference it by id.
type AttributeSet struct {
	AttributeSetID int64  `json:"attribute_set_id" gorm:"column:attribute_set_id;primaryKey"`
	Name           string `json:"name" gorm:"not null"`
}

func (AttributeSet) TableName() string {
	return "attribute_sets"
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

// StorefrontProduct is the thin listing row returned by the results endpoint.
type StorefrontProduct struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Price      float64 `json:"price"`
	FinalPrice float64 `json:"final_price"`
	Image      string  `json:"image"`
}
