package domain

import "time"

// Summary is the set of dashboard counters derived from the current collections.
type Summary struct {
	TotalThreats        int            `json:"totalThreats"`
	HighSeverityThreats int            `json:"highSeverityThreats"`
	ThreatsBySeverity   map[string]int `json:"threatsBySeverity"`
	TotalDevices        int            `json:"totalDevices"`
	OnlineDevices       int            `json:"onlineDevices"`
	OfflineDevices      int            `json:"offlineDevices"`
	WarningDevices      int            `json:"warningDevices"`
	EventsBySeverity    map[string]int `json:"eventsBySeverity,omitempty"`
	MapThreatTotal      int            `json:"mapThreatTotal,omitempty"`
	RecentLocations     int            `json:"recentLocations,omitempty"`
}

// Summarize computes counters from the collections. now anchors the
// "recent activity" window for map locations.
func Summarize(threats []Threat, devices []NetworkDevice, events []SIEMEvent, locations []ThreatLocation, now time.Time) Summary {
	s := Summary{
		TotalThreats:      len(threats),
		TotalDevices:      len(devices),
		ThreatsBySeverity: map[string]int{},
	}
	for _, sev := range []Severity{SeverityHigh, SeverityMedium, SeverityLow} {
		s.ThreatsBySeverity[string(sev)] = Count(threats, FieldSeverity, string(sev))
	}
	s.HighSeverityThreats = s.ThreatsBySeverity[string(SeverityHigh)]
	s.OnlineDevices = Count(devices, FieldStatus, string(StatusOnline))
	s.OfflineDevices = Count(devices, FieldStatus, string(StatusOffline))
	s.WarningDevices = Count(devices, FieldStatus, string(StatusWarning))

	if len(events) > 0 {
		s.EventsBySeverity = map[string]int{}
		for _, sev := range EventSeverities {
			s.EventsBySeverity[string(sev)] = Count(events, FieldSeverity, string(sev))
		}
	}

	cutoff := now.Add(-10 * time.Minute)
	for _, l := range locations {
		s.MapThreatTotal += l.ThreatCount
		if l.LastActivity.After(cutoff) {
			s.RecentLocations++
		}
	}
	return s
}
