package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

type (
	// SectionList is the ordered list of logical step names.
	SectionList []string
	// CodeMap maps a logical step name to a concrete attribute code.
	CodeMap map[string]string
)

func (s *SectionList) Scan(value interface{}) error {
	if value == nil {
		*s = make(SectionList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan SectionList")
	}
	return json.Unmarshal(bytes, s)
}

func (s SectionList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

func (m *CodeMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(CodeMap)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan CodeMap")
	}
	return json.Unmarshal(bytes, m)
}

func (m CodeMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(map[string]string{})
	}
	return json.Marshal(m)
}

// ═══════════════════════════════════════════════════════════
// Main Profile Model (GORM)
// ═══════════════════════════════════════════════════════════

// AttributeProfile declares which attributes become ordered facet steps for
// one attribute set. StoreID 0 is the default scope; a store-specific row
// overrides it for that store.
type AttributeProfile struct {
	ID             uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID        int64             `json:"store_id" gorm:"column:store_id;not null;default:0;index:idx_profiles_store"`
	AttributeSetID int64             `json:"attribute_set_id" gorm:"column:attribute_set_id;not null;index:idx_profiles_set"`
	SetName        string            `json:"set_name" gorm:"column:set_name"`
	Sections       SectionList       `json:"sections" gorm:"type:jsonb;not null;default:'[]'"`
	Map            CodeMap           `json:"map" gorm:"type:jsonb;not null;default:'{}'"`
	Extras         datatypes.JSONMap `json:"extras" gorm:"type:jsonb;not null;default:'{}'"`
	Image          string            `json:"image,omitempty"`
	CreatedAt      time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

func (AttributeProfile) TableName() string {
	return "finder_profiles"
}

// BeforeCreate hook - auto-generate UUID v7
func (p *AttributeProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// Validate rejects profiles that would be ambiguous at resolution time.
// Duplicate logical section names are an error: silently letting the last
// mapping win hides authoring mistakes.
func (p *AttributeProfile) Validate() error {
	if p.AttributeSetID <= 0 {
		return errors.New("profile: attribute_set_id must be positive")
	}
	seen := make(map[string]struct{}, len(p.Sections))
	for _, logical := range p.Sections {
		logical = strings.TrimSpace(logical)
		if logical == "" {
			continue
		}
		if _, dup := seen[logical]; dup {
			return fmt.Errorf("profile for set %d: duplicate section %q", p.AttributeSetID, logical)
		}
		seen[logical] = struct{}{}
	}
	return nil
}

// SectionCode resolves a logical step name to its attribute code. Falls back
// to a lowercase map key, then to the logical name itself.
func (p *AttributeProfile) SectionCode(logical string) string {
	logical = strings.TrimSpace(logical)
	if logical == "" {
		return ""
	}
	if p.Map != nil {
		if code, ok := p.Map[logical]; ok && strings.TrimSpace(code) != "" {
			return strings.TrimSpace(code)
		}
		if code, ok := p.Map[strings.ToLower(logical)]; ok && strings.TrimSpace(code) != "" {
			return strings.TrimSpace(code)
		}
	}
	return logical
}

// ExtraCodes returns the free-form extra facet codes keyed by request param.
func (p *AttributeProfile) ExtraCodes() map[string]string {
	out := make(map[string]string, len(p.Extras))
	for key, v := range p.Extras {
		code, ok := v.(string)
		if !ok {
			continue
		}
		code = strings.TrimSpace(code)
		if key = strings.TrimSpace(key); key != "" && code != "" {
			out[key] = code
		}
	}
	return out
}

// AttributeCodes returns every attribute code the profile references:
// sections mapped through Map, then extras. Deduplicated, order preserved.
func (p *AttributeProfile) AttributeCodes() []string {
	seen := make(map[string]struct{})
	codes := make([]string, 0, len(p.Sections)+len(p.Extras))

	add := func(code string) {
		code = strings.TrimSpace(code)
		if code == "" {
			return
		}
		if _, dup := seen[code]; dup {
			return
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	for _, logical := range p.Sections {
		add(p.SectionCode(logical))
	}
	extras := p.ExtraCodes()
	keys := make([]string, 0, len(extras))
	for key := range extras {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		add(extras[key])
	}
	return codes
}
