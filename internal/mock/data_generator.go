package mock

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

// Scenarios understood by the generator.
const (
	ScenarioBasic = "basic" // fixed sample sets only
	ScenarioSurge = "surge" // samples plus randomized extra threats and events
)

// Attack types, feeds and origins used for randomized surge data
var (
	threatTypes   = []string{"Malware", "Brute Force", "Phishing", "DDoS", "Ransomware", "Port Scan", "SQL Injection"}
	threatSources = []string{"AbuseIPDB", "VirusTotal", "AlienVault OTX"}
	countries     = []string{"US", "RU", "CN", "BR", "IN", "DE", "KP", "IR"}
	eventSources  = []string{"Firewall", "IDS", "Web Gateway", "Antivirus", "System"}
	eventNames    = []string{"INTRUSION_ATTEMPT", "MALWARE_DETECTED", "BLOCKED_URL", "QUARANTINE", "USER_LOGIN", "PORT_SCAN"}
)

// Generator produces sample collections with timestamps relative to the
// clock. It is the fallback provider for every resource.
type Generator struct {
	scenario string
	extra    int
	now      func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator for scenario. Unknown scenarios behave
// like ScenarioBasic.
func NewGenerator(scenario string) *Generator {
	return &Generator{
		scenario: scenario,
		extra:    10,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Scenario returns the active scenario.
func (g *Generator) Scenario() string {
	return g.scenario
}

// Threats returns the threat feed sample.
func (g *Generator) Threats() []domain.Threat {
	now := g.now()
	out := []domain.Threat{
		{ID: "1", IP: "192.168.1.100", Type: "Malware", Severity: domain.SeverityHigh, Source: "AbuseIPDB",
			Timestamp: now, Country: "US", Description: "Suspicious malware activity detected", Confidence: 95},
		{ID: "2", IP: "10.0.0.50", Type: "Brute Force", Severity: domain.SeverityMedium, Source: "VirusTotal",
			Timestamp: now.Add(-time.Hour), Country: "RU", Description: "Multiple failed login attempts", Confidence: 87},
		{ID: "3", IP: "172.16.0.25", Type: "Phishing", Severity: domain.SeverityLow, Source: "AlienVault OTX",
			Timestamp: now.Add(-2 * time.Hour), Country: "CN", Description: "Potential phishing domain detected", Confidence: 72},
	}
	if g.scenario != ScenarioSurge {
		return out
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := 0; i < g.extra; i++ {
		typ := threatTypes[g.rng.Intn(len(threatTypes))]
		out = append(out, domain.Threat{
			ID:          fmt.Sprintf("surge-%d", i+1),
			IP:          g.randomIP(),
			Type:        typ,
			Severity:    domain.SeverityHigh,
			Source:      threatSources[g.rng.Intn(len(threatSources))],
			Timestamp:   now.Add(-time.Duration(g.rng.Intn(600)) * time.Second),
			Country:     countries[g.rng.Intn(len(countries))],
			Description: typ + " activity reported by feed",
			Confidence:  60 + g.rng.Intn(41),
		})
	}
	return out
}

// Devices returns the network inventory sample.
func (g *Generator) Devices() []domain.NetworkDevice {
	now := g.now()
	return []domain.NetworkDevice{
		{ID: "1", IP: "192.168.1.1", Name: "Main Router", MAC: "00:1B:44:11:3A:B7", Type: domain.DeviceRouter,
			Status: domain.StatusOnline, Risk: domain.SeverityLow, LastSeen: now, Connections: []string{"2", "3", "4"}},
		{ID: "2", IP: "192.168.1.10", Name: "Web Server", MAC: "00:1B:44:22:3A:C8", Type: domain.DeviceServer,
			Status: domain.StatusOnline, Risk: domain.SeverityMedium, LastSeen: now, Connections: []string{"1"}},
		{ID: "3", IP: "192.168.1.20", Name: "DB Server", MAC: "00:1B:44:33:3A:D9", Type: domain.DeviceServer,
			Status: domain.StatusWarning, Risk: domain.SeverityHigh, LastSeen: now.Add(-5 * time.Minute), Connections: []string{"1"}},
		{ID: "4", IP: "192.168.1.100", Name: "Admin Workstation", MAC: "00:1B:44:44:3A:EA", Type: domain.DeviceWorkstation,
			Status: domain.StatusOnline, Risk: domain.SeverityLow, LastSeen: now, Connections: []string{"1"}},
	}
}

// Events returns the SIEM event sample.
func (g *Generator) Events() []domain.SIEMEvent {
	now := g.now()
	out := []domain.SIEMEvent{
		{ID: "1", Timestamp: now, Severity: domain.EventCritical, Source: "Firewall", Event: "INTRUSION_ATTEMPT",
			Description: "Multiple failed login attempts detected", SourceIP: "192.168.1.100", DestinationIP: "10.0.0.5"},
		{ID: "2", Timestamp: now.Add(-time.Minute), Severity: domain.EventHigh, Source: "IDS", Event: "MALWARE_DETECTED",
			Description: "Suspicious file execution detected", SourceIP: "172.16.0.25"},
		{ID: "3", Timestamp: now.Add(-2 * time.Minute), Severity: domain.EventMedium, Source: "Web Gateway", Event: "BLOCKED_URL",
			Description: "Access to malicious URL blocked", SourceIP: "192.168.1.50"},
		{ID: "4", Timestamp: now.Add(-3 * time.Minute), Severity: domain.EventLow, Source: "Antivirus", Event: "QUARANTINE",
			Description: "File quarantined successfully", SourceIP: "10.0.0.15"},
		{ID: "5", Timestamp: now.Add(-4 * time.Minute), Severity: domain.EventInfo, Source: "System", Event: "USER_LOGIN",
			Description: "User logged in successfully", SourceIP: "192.168.1.75"},
	}
	if g.scenario != ScenarioSurge {
		return out
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := 0; i < g.extra; i++ {
		out = append(out, domain.SIEMEvent{
			ID:          fmt.Sprintf("surge-%d", i+1),
			Timestamp:   now.Add(-time.Duration(g.rng.Intn(300)) * time.Second),
			Severity:    domain.EventSeverities[g.rng.Intn(2)], // critical or high
			Source:      eventSources[g.rng.Intn(len(eventSources))],
			Event:       eventNames[g.rng.Intn(len(eventNames))],
			Description: "Correlated alert during activity surge",
			SourceIP:    g.randomIP(),
		})
	}
	return out
}

// Reports returns the reports list sample.
func (g *Generator) Reports() []domain.Report {
	now := g.now()
	day := 24 * time.Hour
	return []domain.Report{
		{ID: "1", Name: "Weekly Security Assessment", Type: domain.ReportSecurity, Status: domain.ReportCompleted,
			CreatedAt: now, Size: "2.4 MB", Description: "Comprehensive security assessment for the past week"},
		{ID: "2", Name: "Network Traffic Analysis", Type: domain.ReportNetwork, Status: domain.ReportCompleted,
			CreatedAt: now.Add(-day), Size: "1.8 MB", Description: "Detailed analysis of network traffic patterns"},
		{ID: "3", Name: "Compliance Audit Report", Type: domain.ReportCompliance, Status: domain.ReportPending,
			CreatedAt: now.Add(-2 * day), Size: "-", Description: "SOC 2 compliance audit results"},
		{ID: "4", Name: "Threat Intelligence Summary", Type: domain.ReportThreat, Status: domain.ReportCompleted,
			CreatedAt: now.Add(-3 * day), Size: "3.1 MB", Description: "Monthly threat intelligence summary and recommendations"},
		{ID: "5", Name: "Vulnerability Scan Results", Type: domain.ReportSecurity, Status: domain.ReportFailed,
			CreatedAt: now.Add(-4 * day), Size: "-", Description: "Automated vulnerability scan of all systems"},
	}
}

// Locations returns the threat map sample.
func (g *Generator) Locations() []domain.ThreatLocation {
	now := g.now()
	return []domain.ThreatLocation{
		{ID: "1", Country: "China", City: "Beijing", Lat: 39.9042, Lng: 116.4074, ThreatCount: 45,
			Severity: domain.SeverityHigh, LastActivity: now},
		{ID: "2", Country: "Russia", City: "Moscow", Lat: 55.7558, Lng: 37.6176, ThreatCount: 32,
			Severity: domain.SeverityHigh, LastActivity: now.Add(-5 * time.Minute)},
		{ID: "3", Country: "United States", City: "New York", Lat: 40.7128, Lng: -74.0060, ThreatCount: 28,
			Severity: domain.SeverityMedium, LastActivity: now.Add(-10 * time.Minute)},
		{ID: "4", Country: "Brazil", City: "São Paulo", Lat: -23.5505, Lng: -46.6333, ThreatCount: 19,
			Severity: domain.SeverityMedium, LastActivity: now.Add(-15 * time.Minute)},
		{ID: "5", Country: "India", City: "Mumbai", Lat: 19.0760, Lng: 72.8777, ThreatCount: 15,
			Severity: domain.SeverityLow, LastActivity: now.Add(-20 * time.Minute)},
		{ID: "6", Country: "Germany", City: "Berlin", Lat: 52.5200, Lng: 13.4050, ThreatCount: 12,
			Severity: domain.SeverityLow, LastActivity: now.Add(-25 * time.Minute)},
	}
}

// randomIP must be called with g.mu held.
func (g *Generator) randomIP() string {
	return fmt.Sprintf("%d.%d.%d.%d", 1+g.rng.Intn(223), g.rng.Intn(256), g.rng.Intn(256), 1+g.rng.Intn(254))
}
