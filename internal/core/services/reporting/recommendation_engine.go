package reporting

import (
	"fmt"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

// maxRecommendations caps how many recommendations a report carries.
const maxRecommendations = 5

// RecommendationEngine generates actionable security recommendations
type RecommendationEngine struct{}

// NewRecommendationEngine creates a new recommendation engine instance
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// GenerateRecommendations maps the top risks to remediation steps and pads
// with general practice when fewer than three apply.
func (re *RecommendationEngine) GenerateRecommendations(topRisks []domain.RiskItem, summary domain.Summary) []domain.Recommendation {
	var recommendations []domain.Recommendation

	for _, risk := range topRisks {
		recommendations = append(recommendations, re.forCategory(risk.Category, risk.Occurrences))
	}

	if summary.OfflineDevices > 0 {
		recommendations = append(recommendations, domain.Recommendation{
			Priority:    "high",
			Title:       "Restore Offline Devices",
			Description: fmt.Sprintf("%d monitored devices are offline and no longer reporting.", summary.OfflineDevices),
			Actions: []string{
				"Confirm the devices were not taken down by an incident",
				"Check power and uplink connectivity",
				"Re-enable monitoring agents once reachable",
			},
			EstimatedEffort: "1-2 hours",
		})
	}

	if len(recommendations) < 3 {
		recommendations = append(recommendations, re.getGeneralRecommendations()...)
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func (re *RecommendationEngine) forCategory(category string, count int) domain.Recommendation {
	recommendations := map[string]domain.Recommendation{
		"Malware": {
			Priority:    "critical",
			Title:       "Contain Malware Activity",
			Description: fmt.Sprintf("%d malware indicators observed. Infected hosts may be exfiltrating data.", count),
			Actions: []string{
				"Isolate hosts that contacted the flagged addresses",
				"Run a full endpoint scan on affected segments",
				"Block the indicator IPs at the perimeter firewall",
			},
			EstimatedEffort: "2-4 hours",
		},
		"Ransomware": {
			Priority:    "critical",
			Title:       "Prepare for Ransomware Containment",
			Description: fmt.Sprintf("%d ransomware indicators observed.", count),
			Actions: []string{
				"Verify offline backups are current and restorable",
				"Disable SMB and RDP exposure to the internet",
				"Isolate any host showing encryption activity",
			},
			EstimatedEffort: "4-8 hours",
		},
		"Brute Force": {
			Priority:    "high",
			Title:       "Harden Authentication Endpoints",
			Description: fmt.Sprintf("%d brute-force attempts recorded against exposed services.", count),
			Actions: []string{
				"Enforce account lockout after repeated failures",
				"Require multi-factor authentication for remote access",
				"Rate limit login endpoints",
			},
			EstimatedEffort: "1-2 hours",
		},
		"DDoS": {
			Priority:    "high",
			Title:       "Enable DDoS Mitigation",
			Description: fmt.Sprintf("%d denial-of-service indicators recorded.", count),
			Actions: []string{
				"Enable upstream scrubbing or CDN protection",
				"Set connection limits on edge devices",
			},
			EstimatedEffort: "2-3 hours",
		},
		"Phishing": {
			Priority:    "medium",
			Title:       "Reduce Phishing Exposure",
			Description: fmt.Sprintf("%d phishing indicators observed.", count),
			Actions: []string{
				"Block the reported domains at the mail gateway",
				"Run a targeted awareness reminder for staff",
			},
			EstimatedEffort: "1 hour",
		},
	}

	if rec, ok := recommendations[category]; ok {
		return rec
	}

	return domain.Recommendation{
		Priority:    "medium",
		Title:       fmt.Sprintf("Investigate %s Activity", category),
		Description: fmt.Sprintf("Found %d indicators of %s. Review and remediate.", count, category),
		Actions: []string{
			"Review the source feed entries",
			"Correlate with SIEM events for affected hosts",
			"Apply blocking rules where confirmed",
		},
		EstimatedEffort: "Varies",
	}
}

// getGeneralRecommendations returns general security best practices
func (re *RecommendationEngine) getGeneralRecommendations() []domain.Recommendation {
	return []domain.Recommendation{
		{
			Priority:    "medium",
			Title:       "Implement Network Segmentation",
			Description: "Separate guest, IoT, and corporate networks to limit attack surface and contain potential breaches.",
			Actions: []string{
				"Create separate VLANs for different device types",
				"Implement firewall rules between segments",
				"Monitor inter-segment traffic for anomalies",
			},
			EstimatedEffort: "4-8 hours",
		},
		{
			Priority:    "low",
			Title:       "Regular Security Audits",
			Description: "Schedule periodic assessments to identify new exposures and configuration drift.",
			Actions: []string{
				"Review threat feed coverage monthly",
				"Review and update security policies quarterly",
				"Document findings and track remediation",
			},
			EstimatedEffort: "Ongoing (2 hours/month)",
		},
	}
}
