package reporting

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *domain.ReportDocument {
	threats := []domain.Threat{
		{ID: "1", IP: "192.168.1.100", Type: "Malware", Severity: domain.SeverityHigh, Source: "AbuseIPDB", Country: "Russia"},
		{ID: "2", IP: "10.0.0.50", Type: "Brute Force", Severity: domain.SeverityMedium, Source: "VirusTotal", Country: "China"},
	}
	devices := []domain.NetworkDevice{
		{ID: "1", IP: "192.168.1.1", Name: "Main Router", Vendor: "SanDisk", Type: domain.DeviceRouter, Status: domain.StatusOnline, Risk: domain.SeverityLow},
	}
	return &domain.ReportDocument{
		Report: domain.Report{
			ID: "r-123", Name: "Weekly Security Assessment", Type: domain.ReportSecurity,
			Status: domain.ReportCompleted, Description: "Comprehensive security analysis",
		},
		GeneratedAt: time.Now(),
		GeneratedBy: "analyst@example.com",
		Summary:     domain.Summarize(threats, devices, nil, nil, time.Now()),
		RiskScore:   7.2,
		RiskLevel:   "High",
		TopRisks: []domain.RiskItem{
			{Rank: 1, Category: "Malware", Severity: 9, Occurrences: 1, Impact: "Severe - Compromise likely"},
		},
		Recommendations: []domain.Recommendation{
			{Priority: "critical", Title: "Contain Malware Activity", Description: "desc", Actions: []string{"Isolate hosts"}, EstimatedEffort: "2 hours"},
		},
		Threats: threats,
		Devices: devices,
	}
}

func TestPDFExporter_Export(t *testing.T) {
	exporter := NewPDFExporter()

	data, err := exporter.Export(sampleDocument())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF")
	assert.Equal(t, "application/pdf", exporter.ContentType())
}

func TestPDFExporter_EmptyDocument(t *testing.T) {
	doc := &domain.ReportDocument{Report: domain.Report{ID: "empty", Name: "Empty"}, GeneratedAt: time.Now()}

	data, err := NewPDFExporter().Export(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFExporter_LongTables(t *testing.T) {
	doc := sampleDocument()
	for i := 0; i < 50; i++ {
		doc.Threats = append(doc.Threats, domain.Threat{ID: fmt.Sprint(i), IP: "10.1.1.1", Type: "Port Scan", Severity: domain.SeverityLow})
		doc.Devices = append(doc.Devices, domain.NetworkDevice{ID: fmt.Sprint(i), Name: "Host with a rather long descriptive name"})
	}

	data, err := NewPDFExporter().Export(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
