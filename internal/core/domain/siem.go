package domain

import "time"

// EventSeverity extends Severity with the SIEM-only levels.
type EventSeverity string

const (
	EventCritical EventSeverity = "critical"
	EventHigh     EventSeverity = "high"
	EventMedium   EventSeverity = "medium"
	EventLow      EventSeverity = "low"
	EventInfo     EventSeverity = "info"
)

// EventSeverities lists the levels from most to least severe.
var EventSeverities = []EventSeverity{EventCritical, EventHigh, EventMedium, EventLow, EventInfo}

// SIEMEvent is one correlated log event.
type SIEMEvent struct {
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	Severity      EventSeverity `json:"severity"`
	Source        string        `json:"source"`
	Event         string        `json:"event"`
	Description   string        `json:"description"`
	SourceIP      string        `json:"sourceIp,omitempty"`
	DestinationIP string        `json:"destinationIp,omitempty"`
}

// FilterFields implements Filterable.
func (SIEMEvent) FilterFields() []FilterField {
	return []FilterField{FieldSeverity, FieldType, FieldSource}
}

// FilterValue implements Filterable. The event name is matched through the type field.
func (e SIEMEvent) FilterValue(f FilterField) string {
	switch f {
	case FieldSeverity:
		return string(e.Severity)
	case FieldType:
		return e.Event
	case FieldSource:
		return e.Source
	}
	return ""
}
