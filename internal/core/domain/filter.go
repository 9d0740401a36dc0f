package domain

import "slices"

// Wildcard is the filter value meaning "match any".
const Wildcard = "all"

// FilterField names a criterion in FilterCriteria.
type FilterField string

const (
	FieldSeverity FilterField = "severity"
	FieldType     FilterField = "type"
	FieldSource   FilterField = "source"
	FieldStatus   FilterField = "status"
)

// Filterable is implemented by every entity that can be narrowed by FilterCriteria.
// FilterFields lists the fields the entity carries; criteria on any other
// field do not apply to it.
type Filterable interface {
	FilterValue(f FilterField) string
	FilterFields() []FilterField
}

// Supports reports whether items of type T carry field f.
func Supports[T Filterable](f FilterField) bool {
	var zero T
	return slices.Contains(zero.FilterFields(), f)
}

// Fields returns the fields p sets to a non-wildcard value.
func (p FilterPatch) Fields() []FilterField {
	var out []FilterField
	for _, f := range []struct {
		field FilterField
		value *string
	}{
		{FieldSeverity, p.Severity},
		{FieldType, p.Type},
		{FieldSource, p.Source},
		{FieldStatus, p.Status},
	} {
		if f.value != nil && !IsWildcard(*f.value) {
			out = append(out, f.field)
		}
	}
	return out
}

// FilterCriteria holds one exact-match value per field, or Wildcard.
type FilterCriteria struct {
	Severity string `json:"severity"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Status   string `json:"status"`
}

// FilterPatch is a partial update to FilterCriteria; nil fields are left alone.
type FilterPatch struct {
	Severity *string `json:"severity,omitempty"`
	Type     *string `json:"type,omitempty"`
	Source   *string `json:"source,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// DefaultFilters returns criteria with every field set to Wildcard.
func DefaultFilters() FilterCriteria {
	return FilterCriteria{
		Severity: Wildcard,
		Type:     Wildcard,
		Source:   Wildcard,
		Status:   Wildcard,
	}
}

// ClearPatch resets every field to Wildcard when merged.
func ClearPatch() FilterPatch {
	all := Wildcard
	return FilterPatch{Severity: &all, Type: &all, Source: &all, Status: &all}
}

// Merge returns c with the non-nil fields of p applied.
func (c FilterCriteria) Merge(p FilterPatch) FilterCriteria {
	if p.Severity != nil {
		c.Severity = *p.Severity
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Source != nil {
		c.Source = *p.Source
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	return c
}

// IsWildcard reports whether v matches anything. The empty string counts so
// that a zero FilterCriteria filters nothing.
func IsWildcard(v string) bool {
	return v == Wildcard || v == ""
}

// active lists the non-wildcard criteria.
func (c FilterCriteria) active() []criterion {
	var out []criterion
	for _, cr := range []criterion{
		{FieldSeverity, c.Severity},
		{FieldType, c.Type},
		{FieldSource, c.Source},
		{FieldStatus, c.Status},
	} {
		if !IsWildcard(cr.value) {
			out = append(out, cr)
		}
	}
	return out
}

type criterion struct {
	field FilterField
	value string
}

// Matches reports whether item satisfies every non-wildcard criterion on a
// field it carries.
func (c FilterCriteria) Matches(item Filterable) bool {
	fields := item.FilterFields()
	var active []criterion
	for _, cr := range c.active() {
		if slices.Contains(fields, cr.field) {
			active = append(active, cr)
		}
	}
	return matchAll(active, item)
}

func matchAll(active []criterion, item Filterable) bool {
	for _, cr := range active {
		if item.FilterValue(cr.field) != cr.value {
			return false
		}
	}
	return true
}

// Apply returns the items that match c, preserving order. When every field
// is a wildcard the input slice itself is returned.
func Apply[T Filterable](c FilterCriteria, items []T) []T {
	var active []criterion
	for _, cr := range c.active() {
		if Supports[T](cr.field) {
			active = append(active, cr)
		}
	}
	if len(active) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchAll(active, it) {
			out = append(out, it)
		}
	}
	return out
}

// Count returns how many items have field f equal to v.
func Count[T Filterable](items []T, f FilterField, v string) int {
	n := 0
	for _, it := range items {
		if it.FilterValue(f) == v {
			n++
		}
	}
	return n
}
