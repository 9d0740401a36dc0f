package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/screens"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedState(t *testing.T) store.State {
	t.Helper()
	st := store.New()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.Dispatch(store.FetchFulfilled[domain.Threat]{
		Generation: st.NextGeneration(),
		Items: []domain.Threat{
			{ID: "1", IP: "1.2.3.4", Type: "Malware", Severity: domain.SeverityHigh, Source: "Feed", Country: "US", Confidence: 90, Timestamp: ts},
			{ID: "2", IP: "5.6.7.8", Type: "Phishing", Severity: domain.SeverityLow, Source: "Feed", Country: "DE", Confidence: 40, Timestamp: ts},
		},
	})
	st.Dispatch(store.FetchFulfilled[domain.NetworkDevice]{
		Generation: st.NextGeneration(),
		Items: []domain.NetworkDevice{
			{ID: "1", Name: "Router", IP: "192.168.1.1", MAC: "00:1B:44:11:3A:B7", Vendor: "SanDisk", Type: domain.DeviceRouter,
				Status: domain.StatusOnline, Risk: domain.SeverityLow, LastSeen: ts, Connections: []string{"2", "3"}},
		},
	})
	high := string(domain.SeverityHigh)
	st.Dispatch(store.SetFilters[domain.Threat]{Patch: domain.FilterPatch{Severity: &high}})
	return st.State()
}

func TestExport_CSVHonoursFilters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, loadedState(t), screens.ResourceThreats, FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, []string{"1", "1.2.3.4", "Malware", "high", "Feed", "US", "90", "2026-03-01T12:00:00Z", ""}, rows[1])
}

func TestExport_DevicesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, loadedState(t), screens.ResourceNetwork, FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SanDisk", rows[1][4])
	assert.Equal(t, "2;3", rows[1][9])
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, loadedState(t), screens.ResourceSIEM, FormatJSON))

	var out []domain.SIEMEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Empty(t, out)
	assert.Contains(t, buf.String(), "[]")
}

func TestExport_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Export(&buf, store.InitialState(), screens.ResourceThreats, "xml"), ErrUnsupportedFormat)
	assert.ErrorIs(t, Export(&buf, store.InitialState(), screens.ResourceReports, FormatCSV), ErrNotExportable)
}
