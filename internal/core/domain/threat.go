package domain

import (
	"errors"
	"fmt"
	"time"
)

// Severity is the three-level rating shared by threats, devices and map locations.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

var (
	ErrInvalidSeverity   = errors.New("invalid severity")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 100")
	ErrEmptyID           = errors.New("identifier cannot be empty")
)

// IsValid reports whether s is one of the fixed severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Threat is a single indicator reported by a threat-intelligence feed.
type Threat struct {
	ID          string    `json:"id"`
	IP          string    `json:"ip"`
	Type        string    `json:"type"`
	Severity    Severity  `json:"severity"`
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
	Country     string    `json:"country"`
	Description string    `json:"description"`
	Confidence  int       `json:"confidence"`
}

// Validate checks the threat invariants.
func (t Threat) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if !t.Severity.IsValid() {
		return fmt.Errorf("threat %s: %w: %q", t.ID, ErrInvalidSeverity, t.Severity)
	}
	if t.Confidence < 0 || t.Confidence > 100 {
		return fmt.Errorf("threat %s: %w", t.ID, ErrInvalidConfidence)
	}
	return nil
}

// FilterFields implements Filterable.
func (Threat) FilterFields() []FilterField {
	return []FilterField{FieldSeverity, FieldType, FieldSource}
}

// FilterValue implements Filterable.
func (t Threat) FilterValue(f FilterField) string {
	switch f {
	case FieldSeverity:
		return string(t.Severity)
	case FieldType:
		return t.Type
	case FieldSource:
		return t.Source
	}
	return ""
}
