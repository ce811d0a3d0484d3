package models

// ═══════════════════════════════════════════════════════════
// Attribute metadata (GORM)
// ═══════════════════════════════════════════════════════════

// Attribute is catalog attribute metadata. FrontendInput distinguishes
// select/multiselect (option-backed) from plain text attributes.
type Attribute struct {
	AttributeID   int64  `json:"attribute_id" gorm:"column:attribute_id;primaryKey;autoIncrement"`
	AttributeCode string `json:"attribute_code" gorm:"column:attribute_code;uniqueIndex;not null"`
	FrontendLabel string `json:"frontend_label" gorm:"column:frontend_label"`
	FrontendInput string `json:"frontend_input" gorm:"column:frontend_input;not null;default:'select'"`
}

func (Attribute) TableName() string {
	return "catalog_attributes"
}

// AttributeOption is one selectable value. The option's value as seen by the
// storefront is its option_id rendered as a string; labels are store-scoped
// with store_id 0 holding the defaults.
type AttributeOption struct {
	OptionID    int64  `json:"option_id" gorm:"column:option_id;primaryKey;autoIncrement"`
	AttributeID int64  `json:"attribute_id" gorm:"column:attribute_id;not null;index:idx_attr_options_attr"`
	StoreID     int64  `json:"store_id" gorm:"column:store_id;not null;default:0;index:idx_attr_options_store"`
	Label       string `json:"label" gorm:"not null"`
	Position    int    `json:"position" gorm:"not null;default:0"`
}

func (AttributeOption) TableName() string {
	return "catalog_attribute_options"
}

// ═══════════════════════════════════════════════════════════
// Resolved option types
// ═══════════════════════════════════════════════════════════

// OptionPair is one choosable facet value with its display label.
type OptionPair struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ResolvedOptionSet maps attribute code -> options still reachable under the
// current selection.
type ResolvedOptionSet map[string][]OptionPair

// OptionUniverse maps attribute-set id (as a string, for stable JSON keys)
// to its full per-code option sets. This is the cached payload shape.
type OptionUniverse map[string]ResolvedOptionSet

// OptionsResponse is the wire shape of the options endpoint. On any internal
// failure the handler responds {ok:false, options:[]} with HTTP 200 so the
// storefront widget degrades instead of breaking.
type OptionsResponse struct {
	OK      bool         `json:"ok"`
	Options []OptionPair `json:"options"`
}
