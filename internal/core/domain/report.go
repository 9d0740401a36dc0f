package domain

import "time"

// ReportType groups reports by subject.
type ReportType string

const (
	ReportSecurity   ReportType = "security"
	ReportNetwork    ReportType = "network"
	ReportCompliance ReportType = "compliance"
	ReportThreat     ReportType = "threat"
)

// ReportStatus is the generation state of a report.
type ReportStatus string

const (
	ReportCompleted ReportStatus = "completed"
	ReportPending   ReportStatus = "pending"
	ReportFailed    ReportStatus = "failed"
)

// Report is an entry in the reports list.
type Report struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        ReportType   `json:"type"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	Size        string       `json:"size"`
	Description string       `json:"description"`
}

// FilterFields implements Filterable.
func (Report) FilterFields() []FilterField {
	return []FilterField{FieldType, FieldStatus}
}

// FilterValue implements Filterable.
func (r Report) FilterValue(f FilterField) string {
	switch f {
	case FieldType:
		return string(r.Type)
	case FieldStatus:
		return string(r.Status)
	}
	return ""
}

// RiskItem is one ranked threat category in a report.
type RiskItem struct {
	Rank        int     `json:"rank"`
	Category    string  `json:"category"`
	Severity    int     `json:"severity"` // 0-10
	Occurrences int     `json:"occurrences"`
	Impact      string  `json:"impact"`
	Likelihood  string  `json:"likelihood"`
	RiskScore   float64 `json:"riskScore"`
}

// Recommendation is an actionable remediation step.
type Recommendation struct {
	Priority        string   `json:"priority"` // critical, high, medium, low
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Actions         []string `json:"actions"`
	EstimatedEffort string   `json:"estimatedEffort"`
}

// ReportDocument is everything rendered into an exported report.
type ReportDocument struct {
	Report          Report           `json:"report"`
	GeneratedAt     time.Time        `json:"generatedAt"`
	GeneratedBy     string           `json:"generatedBy"`
	Summary         Summary          `json:"summary"`
	RiskScore       float64          `json:"riskScore"`
	RiskLevel       string           `json:"riskLevel"`
	TopRisks        []RiskItem       `json:"topRisks"`
	Recommendations []Recommendation `json:"recommendations"`
	Threats         []Threat         `json:"threats"`
	Devices         []NetworkDevice  `json:"devices"`
}

// SeverityScore maps a severity onto the 0-10 scale used for risk scoring.
func SeverityScore(s Severity) int {
	switch s {
	case SeverityHigh:
		return 9
	case SeverityMedium:
		return 6
	case SeverityLow:
		return 3
	}
	return 0
}
