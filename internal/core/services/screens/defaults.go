package screens

import "time"

// Resource names shared by the registry, HTTP routes and metrics.
const (
	ResourceThreats   = "threats"
	ResourceNetwork   = "network"
	ResourceSIEM      = "siem"
	ResourceReports   = "reports"
	ResourceThreatMap = "threatMap"
)

// Defaults is the dashboard's screen set. Reports load once per mount; the
// rest poll at interval.
func Defaults(interval time.Duration) []Screen {
	return []Screen{
		{Path: "/", Title: "Dashboard", Resources: []string{ResourceThreats, ResourceNetwork}, Interval: interval},
		{Path: "/threats", Title: "Threat Intelligence", Resources: []string{ResourceThreats}, Interval: interval},
		{Path: "/network", Title: "Network Monitor", Resources: []string{ResourceNetwork}, Interval: interval},
		{Path: "/siem", Title: "SIEM Events", Resources: []string{ResourceSIEM}, Interval: interval},
		{Path: "/reports", Title: "Reports", Resources: []string{ResourceReports}},
		{Path: "/threat-map", Title: "Threat Map", Resources: []string{ResourceThreatMap}, Interval: interval},
		{Path: "/settings", Title: "Settings"},
	}
}
