package reporting

import (
	"errors"
	"fmt"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

// topRiskLimit is how many threat categories a report ranks.
const topRiskLimit = 5

var ErrReportNotFound = errors.New("report not found")

// DocumentBuilder assembles exportable report documents from a state snapshot.
type DocumentBuilder struct {
	riskCalc    *RiskCalculator
	recommender *RecommendationEngine
	now         func() time.Time
}

func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{
		riskCalc:    NewRiskCalculator(),
		recommender: NewRecommendationEngine(),
		now:         time.Now,
	}
}

// Build renders the report with the given id against the current threat and
// device collections.
func (b *DocumentBuilder) Build(s store.State, reportID, generatedBy string) (*domain.ReportDocument, error) {
	var report *domain.Report
	for i := range s.Reports.Items {
		if s.Reports.Items[i].ID == reportID {
			report = &s.Reports.Items[i]
			break
		}
	}
	if report == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}

	now := b.now()
	threats := s.Threats.Items
	devices := s.Network.Items
	summary := s.Summary(now)

	riskScore := b.riskCalc.CalculateOverallRisk(threats, b.riskCalc.ExposedDevices(devices))
	topRisks := b.riskCalc.CalculateTopRisks(threats, topRiskLimit)

	return &domain.ReportDocument{
		Report:          *report,
		GeneratedAt:     now,
		GeneratedBy:     generatedBy,
		Summary:         summary,
		RiskScore:       riskScore,
		RiskLevel:       b.riskCalc.GetRiskLevel(riskScore),
		TopRisks:        topRisks,
		Recommendations: b.recommender.GenerateRecommendations(topRisks, summary),
		Threats:         threats,
		Devices:         devices,
	}, nil
}
