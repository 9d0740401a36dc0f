package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CYBERDASH_DB", "/tmp/cd.db")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, ":9000", cfg.GRPCAddr)
	assert.Equal(t, "/tmp/cd.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.AllowedOrigins)
	assert.Equal(t, AuthPlaceholder, cfg.Auth())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("CYBERDASH_ADDR", ":7000")
	t.Setenv("CYBERDASH_POLL_INTERVAL", "10s")
	t.Setenv("CYBERDASH_DEBUG", "true")

	cfg, err := Load([]string{"-addr", ":7001", "-origins", "https://a.io, https://b.io"})
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("CYBERDASH_FETCH_TIMEOUT", "soon")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown auth mode", []string{"-auth", "ldap"}},
		{"zero poll interval", []string{"-poll", "0s"}},
		{"negative mock delay", []string{"-mock-delay", "-1s"}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestAuth_Resolution(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit", Config{AuthMode: AuthLocal, APIURL: "http://api"}, AuthLocal},
		{"identity", Config{IdentityURL: "http://idp", IdentityKey: "k", APIURL: "http://api"}, AuthIdentity},
		{"identity without key", Config{IdentityURL: "http://idp", APIURL: "http://api"}, AuthREST},
		{"rest", Config{APIURL: "http://api"}, AuthREST},
		{"nothing", Config{}, AuthPlaceholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Auth())
		})
	}
}
