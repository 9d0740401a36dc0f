package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"github.com/lcalzada-xor/cyberdash/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSource is a mock implementation of ports.Source
type MockSource[T any] struct {
	mock.Mock
	name string
}

func (m *MockSource[T]) Name() string { return m.name }

func (m *MockSource[T]) Fetch(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func threats(ids ...string) []domain.Threat {
	out := make([]domain.Threat, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Threat{ID: id, Severity: domain.SeverityHigh})
	}
	return out
}

func TestLoader_PrimarySuccess(t *testing.T) {
	st := store.New()
	primary := &MockSource[domain.Threat]{name: "rest"}
	fallback := &MockSource[domain.Threat]{name: "mock"}
	primary.On("Fetch", mock.Anything).Return(threats("1", "2"), nil)

	l := NewLoader(st, TwoTier[domain.Threat]{Primary: primary, Fallback: fallback}, nil)
	require.NoError(t, l.Refresh(context.Background()))

	s := st.State().Threats
	assert.Equal(t, threats("1", "2"), s.Items)
	assert.Equal(t, store.OriginPrimary, s.Origin)
	assert.False(t, s.Loading)
	fallback.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestLoader_PrimaryFailureUsesFallback(t *testing.T) {
	st := store.New()
	primary := &MockSource[domain.NetworkDevice]{name: "rest"}
	fallback := &MockSource[domain.NetworkDevice]{name: "mock"}
	primary.On("Fetch", mock.Anything).Return(nil, errors.New("connection refused"))
	fallback.On("Fetch", mock.Anything).Return([]domain.NetworkDevice{{ID: "d1"}}, nil)

	before := testutil.ToFloat64(telemetry.FallbacksTotal.WithLabelValues("network"))

	l := NewLoader(st, TwoTier[domain.NetworkDevice]{Primary: primary, Fallback: fallback}, nil)
	require.NoError(t, l.Refresh(context.Background()))

	s := st.State().Network
	assert.Equal(t, []domain.NetworkDevice{{ID: "d1"}}, s.Items)
	assert.Equal(t, store.OriginFallback, s.Origin)
	assert.Empty(t, s.Error)
	assert.Equal(t, before+1, testutil.ToFloat64(telemetry.FallbacksTotal.WithLabelValues("network")))
}

func TestLoader_InvalidPrimaryItemsUseFallback(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.Threat
	}{
		{"confidence out of range", []domain.Threat{{ID: "1", Severity: domain.SeverityHigh, Confidence: 150}}},
		{"unknown severity", []domain.Threat{{ID: "1", Severity: "critical", Confidence: 50}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			primary := &MockSource[domain.Threat]{name: "rest"}
			fallback := &MockSource[domain.Threat]{name: "mock"}
			primary.On("Fetch", mock.Anything).Return(tt.items, nil)
			fallback.On("Fetch", mock.Anything).Return(threats("sample"), nil)

			before := testutil.ToFloat64(telemetry.FallbacksTotal.WithLabelValues("threats"))

			l := NewLoader(st, TwoTier[domain.Threat]{Primary: primary, Fallback: fallback}, nil)
			require.NoError(t, l.Refresh(context.Background()))

			s := st.State().Threats
			assert.Equal(t, threats("sample"), s.Items)
			assert.Equal(t, store.OriginFallback, s.Origin)
			assert.Equal(t, before+1, testutil.ToFloat64(telemetry.FallbacksTotal.WithLabelValues("threats")))
		})
	}
}

func TestLoader_InvalidPrimaryWithoutFallbackFails(t *testing.T) {
	st := store.New()
	st.Dispatch(store.FetchFulfilled[domain.NetworkDevice]{Items: []domain.NetworkDevice{{ID: "old"}}})

	primary := &MockSource[domain.NetworkDevice]{name: "rest"}
	primary.On("Fetch", mock.Anything).Return([]domain.NetworkDevice{{ID: "d1", Type: "toaster"}}, nil)

	l := NewLoader(st, TwoTier[domain.NetworkDevice]{Primary: primary}, nil)
	err := l.Refresh(context.Background())

	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.Equal(t, []domain.NetworkDevice{{ID: "old"}}, st.State().Network.Items)
}

func TestLoader_NoPrimaryUsesFallbackWithoutCountingFallback(t *testing.T) {
	st := store.New()
	fallback := &MockSource[domain.SIEMEvent]{name: "mock"}
	fallback.On("Fetch", mock.Anything).Return([]domain.SIEMEvent{{ID: "e1"}}, nil)

	before := testutil.ToFloat64(telemetry.FallbacksTotal.WithLabelValues("siem"))

	l := NewLoader(st, TwoTier[domain.SIEMEvent]{Fallback: fallback}, nil)
	require.NoError(t, l.Refresh(context.Background()))

	assert.Equal(t, store.OriginFallback, st.State().SIEM.Origin)
	assert.Equal(t, before, testutil.ToFloat64(telemetry.FallbacksTotal.WithLabelValues("siem")))
}

func TestLoader_BothTiersFailKeepsItems(t *testing.T) {
	st := store.New()
	st.Dispatch(store.FetchFulfilled[domain.Threat]{Items: threats("old")})

	primary := &MockSource[domain.Threat]{name: "rest"}
	fallback := &MockSource[domain.Threat]{name: "mock"}
	primary.On("Fetch", mock.Anything).Return(nil, errors.New("timeout"))
	fallback.On("Fetch", mock.Anything).Return(nil, errors.New("generator down"))

	l := NewLoader(st, TwoTier[domain.Threat]{Primary: primary, Fallback: fallback}, nil)
	err := l.Refresh(context.Background())

	require.Error(t, err)
	s := st.State().Threats
	assert.Equal(t, threats("old"), s.Items)
	assert.Contains(t, s.Error, "generator down")
	assert.False(t, s.Loading)
}

func TestLoader_NoSource(t *testing.T) {
	st := store.New()
	l := NewLoader(st, TwoTier[domain.Report]{}, nil)

	err := l.Refresh(context.Background())

	assert.ErrorIs(t, err, ErrNoSource)
	assert.NotEmpty(t, st.State().Reports.Error)
}

// gatedSource blocks each fetch until its release channel is closed.
type gatedSource struct {
	mu      sync.Mutex
	calls   int
	gates   []chan struct{}
	results [][]domain.Threat
	started chan int
}

func (g *gatedSource) Name() string { return "gated" }

func (g *gatedSource) Fetch(ctx context.Context) ([]domain.Threat, error) {
	g.mu.Lock()
	i := g.calls
	g.calls++
	g.mu.Unlock()
	g.started <- i
	<-g.gates[i]
	return g.results[i], nil
}

func TestLoader_OverlappingFetchesNewestWins(t *testing.T) {
	st := store.New()
	src := &gatedSource{
		gates:   []chan struct{}{make(chan struct{}), make(chan struct{})},
		results: [][]domain.Threat{threats("first"), threats("second")},
		started: make(chan int, 2),
	}
	l := NewLoader(st, TwoTier[domain.Threat]{Fallback: src}, nil)
	staleBefore := testutil.ToFloat64(telemetry.StaleResults.WithLabelValues("threats"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { defer wg.Done(); _ = l.Refresh(context.Background()) }()
	<-src.started
	wg.Add(1)
	go func() { defer wg.Done(); _ = l.Refresh(context.Background()) }()
	<-src.started

	// The newer fetch completes first; the older one must not overwrite it.
	close(src.gates[1])
	require.Eventually(t, func() bool {
		return len(st.State().Threats.Items) == 1 && st.State().Threats.Items[0].ID == "second"
	}, timeout, tick)
	close(src.gates[0])
	wg.Wait()

	assert.Equal(t, threats("second"), st.State().Threats.Items)
	assert.Equal(t, staleBefore+1, testutil.ToFloat64(telemetry.StaleResults.WithLabelValues("threats")))
}
