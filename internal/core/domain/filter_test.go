package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleThreats() []Threat {
	return []Threat{
		{ID: "1", Severity: SeverityHigh, Type: "Malware", Source: "AbuseIPDB"},
		{ID: "2", Severity: SeverityMedium, Type: "Brute Force", Source: "VirusTotal"},
		{ID: "3", Severity: SeverityLow, Type: "Phishing", Source: "AlienVault OTX"},
		{ID: "4", Severity: SeverityHigh, Type: "Phishing", Source: "VirusTotal"},
	}
}

func TestApply_AllWildcardIsIdentity(t *testing.T) {
	threats := sampleThreats()

	for _, c := range []FilterCriteria{DefaultFilters(), {}, {Severity: Wildcard}} {
		out := Apply(c, threats)
		assert.Equal(t, threats, out)
	}
}

func TestApply_SeverityOnly(t *testing.T) {
	in := []Threat{{Severity: SeverityHigh}, {Severity: SeverityLow}}
	c := FilterCriteria{Severity: "high", Type: Wildcard, Source: Wildcard}

	out := Apply(c, in)

	assert.Equal(t, []Threat{{Severity: SeverityHigh}}, out)
}

func TestApply_EveryResultMatchesEveryCriterion(t *testing.T) {
	threats := sampleThreats()
	cases := []FilterCriteria{
		{Severity: "high", Type: Wildcard, Source: Wildcard},
		{Severity: Wildcard, Type: "Phishing", Source: Wildcard},
		{Severity: "high", Type: "Phishing", Source: Wildcard},
		{Severity: Wildcard, Type: Wildcard, Source: "VirusTotal"},
		{Severity: "low", Type: "Malware", Source: Wildcard},
	}

	for _, c := range cases {
		out := Apply(c, threats)
		for _, th := range out {
			assert.True(t, c.Matches(th), "%+v should match %+v", th, c)
		}
		for _, th := range threats {
			if !c.Matches(th) {
				assert.NotContains(t, out, th)
			}
		}
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	threats := sampleThreats()
	out := Apply(FilterCriteria{Severity: "high"}, threats)

	assert.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "4", out[1].ID)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	threats := sampleThreats()
	before := append([]Threat(nil), threats...)

	_ = Apply(FilterCriteria{Source: "VirusTotal"}, threats)
	_ = Apply(FilterCriteria{Source: "VirusTotal"}, threats)

	assert.Equal(t, before, threats)
}

func TestApply_Devices(t *testing.T) {
	devices := []NetworkDevice{
		{ID: "1", Type: DeviceRouter, Status: StatusOnline, Risk: SeverityLow},
		{ID: "2", Type: DeviceServer, Status: StatusOnline, Risk: SeverityMedium},
		{ID: "3", Type: DeviceServer, Status: StatusWarning, Risk: SeverityHigh},
	}

	out := Apply(FilterCriteria{Type: "server", Status: "online"}, devices)
	assert.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)

	out = Apply(FilterCriteria{Severity: "high"}, devices)
	assert.Len(t, out, 1)
	assert.Equal(t, "3", out[0].ID)
}

func TestFilterCriteria_Merge(t *testing.T) {
	sev := "high"
	c := DefaultFilters().Merge(FilterPatch{Severity: &sev})

	assert.Equal(t, "high", c.Severity)
	assert.Equal(t, Wildcard, c.Type)
	assert.Equal(t, Wildcard, c.Source)

	c = c.Merge(ClearPatch())
	assert.Equal(t, DefaultFilters(), c)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2, Count(sampleThreats(), FieldSeverity, "high"))
	assert.Equal(t, 0, Count([]Threat{}, FieldSeverity, "high"))
}

func TestApply_IgnoresFieldsTheEntityLacks(t *testing.T) {
	threats := sampleThreats()

	out := Apply(FilterCriteria{Status: "online"}, threats)
	assert.Equal(t, threats, out)

	out = Apply(FilterCriteria{Severity: "high", Status: "online"}, threats)
	assert.Len(t, out, 2)
	assert.True(t, FilterCriteria{Status: "online"}.Matches(threats[0]))
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports[Threat](FieldSource))
	assert.False(t, Supports[Threat](FieldStatus))
	assert.True(t, Supports[ThreatLocation](FieldSeverity))
	assert.False(t, Supports[ThreatLocation](FieldType))
	assert.False(t, Supports[Report](FieldSeverity))
}
