package models

import "strings"

// Selection is one applied facet constraint: attribute code -> selected value.
type Selection struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

// FilterState is the caller's accumulated selection plus an optional
// inclusive price window. Built fresh per request, never persisted; the
// progressive-disclosure state lives entirely client-side and is replayed
// on every call.
type FilterState struct {
	Selections []Selection `json:"selections"`
	PriceMin   *float64    `json:"price_min,omitempty"`
	PriceMax   *float64    `json:"price_max,omitempty"`
}

// Add appends or overwrites the selection for a code. Empty codes are
// ignored; a later write for the same code wins.
func (f *FilterState) Add(code, value string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	value = strings.TrimSpace(value)
	for i := range f.Selections {
		if f.Selections[i].Code == code {
			f.Selections[i].Value = value
			return
		}
	}
	f.Selections = append(f.Selections, Selection{Code: code, Value: value})
}

// Get returns the selected value for a code, or "".
func (f *FilterState) Get(code string) string {
	for _, s := range f.Selections {
		if s.Code == code {
			return s.Value
		}
	}
	return ""
}

// Codes lists the selected attribute codes in selection order, skipping
// selections whose value is empty.
func (f *FilterState) Codes() []string {
	out := make([]string, 0, len(f.Selections))
	for _, s := range f.Selections {
		if s.Value != "" {
			out = append(out, s.Code)
		}
	}
	return out
}

// IsEmpty reports whether no constraint of any kind is set.
func (f *FilterState) IsEmpty() bool {
	return len(f.Codes()) == 0 && f.PriceMin == nil && f.PriceMax == nil
}

// WithWindow returns a copy carrying the given price window.
func (f FilterState) WithWindow(min, max *float64) FilterState {
	f.Selections = append([]Selection(nil), f.Selections...)
	f.PriceMin = min
	f.PriceMax = max
	return f
}
