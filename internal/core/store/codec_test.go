package store

import (
	"encoding/json"
	"testing"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) (Action, error) {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	return Decode(env)
}

func TestDecode_SetFilters(t *testing.T) {
	a, err := decode(t, `{"type":"threats/setFilters","payload":{"severity":"high"}}`)
	require.NoError(t, err)

	sf, ok := a.(SetFilters[domain.Threat])
	require.True(t, ok)
	require.NotNil(t, sf.Patch.Severity)
	assert.Equal(t, "high", *sf.Patch.Severity)
	assert.Nil(t, sf.Patch.Type)
	assert.Equal(t, "threats/setFilters", Name(a))
}

func TestDecode_SetFiltersRejectsMissingField(t *testing.T) {
	_, err := decode(t, `{"type":"threats/setFilters","payload":{"status":"online"}}`)
	assert.ErrorIs(t, err, ErrUnsupportedFilter)

	_, err = decode(t, `{"type":"threatMap/setFilters","payload":{"type":"Malware"}}`)
	assert.ErrorIs(t, err, ErrUnsupportedFilter)

	// Resetting a missing field to the wildcard is harmless.
	_, err = decode(t, `{"type":"threats/setFilters","payload":{"status":"all"}}`)
	assert.NoError(t, err)
}

func TestDecode_ClearFilters(t *testing.T) {
	a, err := decode(t, `{"type":"network/clearFilters"}`)
	require.NoError(t, err)

	s := New()
	s.Dispatch(SetFilters[domain.NetworkDevice]{Patch: domain.FilterPatch{Status: ptr("online")}})
	s.Dispatch(a)
	assert.Equal(t, domain.DefaultFilters(), s.State().Network.Filters)
}

func TestDecode_RoundTripsEveryClientAction(t *testing.T) {
	for _, typ := range []string{
		"threats/clearError", "network/clearError", "siem/clearError", "reports/clearError", "threatMap/clearError",
		"siem/setFilters", "reports/setFilters", "threatMap/setFilters",
		"auth/clearError", "ui/toggleTheme", "ui/toggleSidebar", "ui/setLoading",
	} {
		a, err := Decode(Envelope{Type: typ})
		require.NoError(t, err, typ)
		assert.Equal(t, typ, Name(a))
	}
}

func TestDecode_SetLoading(t *testing.T) {
	a, err := decode(t, `{"type":"ui/setLoading","payload":{"loading":true}}`)
	require.NoError(t, err)
	assert.Equal(t, SetLoading{Loading: true}, a)
}

func TestDecode_Unknown(t *testing.T) {
	for _, typ := range []string{"", "threats/fetch/fulfilled", "auth/login", "bogus"} {
		_, err := Decode(Envelope{Type: typ})
		assert.ErrorIs(t, err, ErrUnknownAction, typ)
	}
}

func TestDecode_BadPayload(t *testing.T) {
	_, err := Decode(Envelope{Type: "threats/setFilters", Payload: json.RawMessage(`[1,2]`)})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownAction)
}

func ptr(s string) *string { return &s }
