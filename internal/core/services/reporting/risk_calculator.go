package reporting

import (
	"math"
	"sort"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

// RiskCalculator provides methods for calculating security risk scores
type RiskCalculator struct{}

// NewRiskCalculator creates a new risk calculator instance
func NewRiskCalculator() *RiskCalculator {
	return &RiskCalculator{}
}

// confidenceMultiplier scales 0-100 confidence into 0.5-1.0.
func confidenceMultiplier(confidence int) float64 {
	c := math.Max(0, math.Min(float64(confidence), 100))
	return 0.5 + (c/100)*0.5
}

// CalculateOverallRisk returns a 0-10 score from the threat feed and the
// number of devices that are not healthy.
func (rc *RiskCalculator) CalculateOverallRisk(threats []domain.Threat, exposedDevices int) float64 {
	if len(threats) == 0 {
		return 0.0
	}

	var totalRisk float64
	for _, t := range threats {
		totalRisk += float64(domain.SeverityScore(t.Severity)) * confidenceMultiplier(t.Confidence)
	}
	avgRisk := totalRisk / float64(len(threats))

	// 1.0 with no exposed devices, capped at 2.0 from ten upward
	deviceFactor := 1.0 + math.Min(float64(exposedDevices)/10.0, 1.0)

	return math.Min(avgRisk*deviceFactor, 10.0)
}

// ExposedDevices counts devices that are offline, in warning, or rated high risk.
func (rc *RiskCalculator) ExposedDevices(devices []domain.NetworkDevice) int {
	n := 0
	for _, d := range devices {
		if d.Status != domain.StatusOnline || d.Risk == domain.SeverityHigh {
			n++
		}
	}
	return n
}

// GetRiskLevel converts numeric score to human-readable level
func (rc *RiskCalculator) GetRiskLevel(score float64) string {
	switch {
	case score >= 8.0:
		return "Critical"
	case score >= 6.0:
		return "High"
	case score >= 4.0:
		return "Medium"
	default:
		return "Low"
	}
}

// CalculateTopRisks groups threats by type and ranks the groups.
func (rc *RiskCalculator) CalculateTopRisks(threats []domain.Threat, limit int) []domain.RiskItem {
	if limit <= 0 {
		return nil
	}

	groups := make(map[string][]domain.Threat)
	for _, t := range threats {
		groups[t.Type] = append(groups[t.Type], t)
	}

	risks := make([]domain.RiskItem, 0, len(groups))
	for category, group := range groups {
		var totalSeverity int
		var totalConfidence float64
		for _, t := range group {
			totalSeverity += domain.SeverityScore(t.Severity)
			totalConfidence += confidenceMultiplier(t.Confidence)
		}
		avgSeverity := totalSeverity / len(group)
		avgConfidence := totalConfidence / float64(len(group))

		risks = append(risks, domain.RiskItem{
			Category:    category,
			Severity:    avgSeverity,
			Occurrences: len(group),
			Impact:      rc.getImpactLevel(avgSeverity),
			Likelihood:  rc.getLikelihoodLevel(len(group)),
			RiskScore:   float64(avgSeverity) * float64(len(group)) * avgConfidence,
		})
	}

	sort.Slice(risks, func(i, j int) bool {
		if risks[i].RiskScore != risks[j].RiskScore {
			return risks[i].RiskScore > risks[j].RiskScore
		}
		return risks[i].Category < risks[j].Category
	})

	if len(risks) > limit {
		risks = risks[:limit]
	}
	for i := range risks {
		risks[i].Rank = i + 1
	}
	return risks
}

func (rc *RiskCalculator) getImpactLevel(severity int) string {
	switch {
	case severity >= 9:
		return "Severe - Compromise likely"
	case severity >= 6:
		return "Moderate - Limited exposure"
	default:
		return "Low - Minimal impact"
	}
}

func (rc *RiskCalculator) getLikelihoodLevel(occurrences int) string {
	switch {
	case occurrences >= 10:
		return "Very High - Widespread activity"
	case occurrences >= 5:
		return "High - Repeated activity"
	case occurrences >= 2:
		return "Medium - Several indicators"
	default:
		return "Low - Single indicator"
	}
}
