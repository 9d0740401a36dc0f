package domain

import "time"

// ThreatLocation aggregates threat activity for one city.
type ThreatLocation struct {
	ID           string    `json:"id"`
	Country      string    `json:"country"`
	City         string    `json:"city"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	ThreatCount  int       `json:"threatCount"`
	Severity     Severity  `json:"severity"`
	LastActivity time.Time `json:"lastActivity"`
}

// FilterFields implements Filterable.
func (ThreatLocation) FilterFields() []FilterField {
	return []FilterField{FieldSeverity}
}

// FilterValue implements Filterable.
func (l ThreatLocation) FilterValue(f FilterField) string {
	if f == FieldSeverity {
		return string(l.Severity)
	}
	return ""
}
