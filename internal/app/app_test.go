package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/config"
	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/screens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(mode string) *config.Config {
	return &config.Config{
		Addr:          "127.0.0.1:0",
		AuthMode:      mode,
		DBPath:        ":memory:",
		PollInterval:  time.Hour,
		FetchTimeout:  time.Second,
		MockScenario:  "basic",
		AuthRateLimit: 5,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_PlaceholderByDefault(t *testing.T) {
	app, err := New(context.Background(), testConfig(""), quietLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	assert.Equal(t, "placeholder", app.Gate.Provider().Name())
	assert.Len(t, app.Registry.Screens(), 7)
	assert.Nil(t, app.HealthServer)
	assert.Nil(t, app.Publisher)
}

func TestNew_MockFallbackFillsSlices(t *testing.T) {
	app, err := New(context.Background(), testConfig(""), quietLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	task, err := app.Registry.Task(screens.ResourceNetwork)
	require.NoError(t, err)
	require.NoError(t, task(context.Background()))

	network := app.Store.State().Network
	require.NotEmpty(t, network.Items)
	for _, d := range network.Items {
		assert.NotEmpty(t, d.Vendor, d.MAC)
	}
}

func TestNew_LocalProviderSeedsAdmin(t *testing.T) {
	app, err := New(context.Background(), testConfig(config.AuthLocal), quietLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	res, err := app.Gate.Login(context.Background(), domain.Credentials{
		Email:    DefaultAdminEmail,
		Password: DefaultAdminPassword,
	})
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)
	assert.True(t, app.Store.State().Auth.IsAuthenticated)
	assert.NotNil(t, app.WebServer.AuthHandler)
}

func TestNew_MissingAuthEnvFallsBackToPlaceholder(t *testing.T) {
	for _, mode := range []string{config.AuthREST, config.AuthIdentity} {
		t.Run(mode, func(t *testing.T) {
			app, err := New(context.Background(), testConfig(mode), quietLogger())
			require.NoError(t, err)
			t.Cleanup(app.cleanup)

			assert.Equal(t, "placeholder", app.Gate.Provider().Name())
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	app, err := New(ctx, testConfig(""), quietLogger())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		return app.Store.State().Auth.Phase == domain.PhaseUnauthenticated
	}, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return")
	}
}
