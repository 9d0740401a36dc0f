package store

import (
	"sync"
	"testing"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialState(t *testing.T) {
	s := New().State()

	assert.Equal(t, domain.PhaseChecking, s.Auth.Phase)
	assert.False(t, s.Auth.IsAuthenticated)
	assert.Equal(t, domain.ThemeDark, s.UI.Theme)
	assert.Equal(t, domain.DefaultFilters(), s.Threats.Filters)
	assert.Empty(t, s.Threats.Items)
	assert.False(t, s.Network.Loading)
}

func TestStores_AreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Dispatch(ToggleTheme{})

	assert.Equal(t, domain.ThemeLight, a.State().UI.Theme)
	assert.Equal(t, domain.ThemeDark, b.State().UI.Theme)
}

func TestDispatch_FetchPendingSetsLoadingAndClearsError(t *testing.T) {
	st := New()
	st.Dispatch(FetchRejected[domain.Threat]{Message: "boom"})
	require.Equal(t, "boom", st.State().Threats.Error)

	ok := st.Dispatch(FetchPending[domain.Threat]{Generation: st.NextGeneration()})

	assert.True(t, ok)
	assert.True(t, st.State().Threats.Loading)
	assert.Empty(t, st.State().Threats.Error)
}

func TestDispatch_FetchRejectedKeepsItems(t *testing.T) {
	st := New()
	items := []domain.Threat{{ID: "1", Severity: domain.SeverityHigh}}
	gen := st.NextGeneration()
	st.Dispatch(FetchPending[domain.Threat]{Generation: gen})
	st.Dispatch(FetchFulfilled[domain.Threat]{Generation: gen, Items: items, Origin: OriginPrimary})

	gen = st.NextGeneration()
	st.Dispatch(FetchPending[domain.Threat]{Generation: gen})
	st.Dispatch(FetchRejected[domain.Threat]{Generation: gen, Message: "feed unavailable"})

	s := st.State().Threats
	assert.Equal(t, items, s.Items)
	assert.Equal(t, "feed unavailable", s.Error)
	assert.False(t, s.Loading)
}

func TestDispatch_FetchRejectedDefaultMessage(t *testing.T) {
	st := New()
	st.Dispatch(FetchRejected[domain.NetworkDevice]{})
	assert.Equal(t, "Failed to fetch network devices", st.State().Network.Error)
}

func TestDispatch_FulfilledReplacesWholesale(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	st := New(WithClock(func() time.Time { return now }))

	st.Dispatch(FetchFulfilled[domain.NetworkDevice]{Items: []domain.NetworkDevice{{ID: "1"}, {ID: "2"}}, Origin: OriginPrimary})
	st.Dispatch(FetchFulfilled[domain.NetworkDevice]{Items: []domain.NetworkDevice{{ID: "3"}}, Origin: OriginFallback})

	s := st.State().Network
	assert.Equal(t, []domain.NetworkDevice{{ID: "3"}}, s.Items)
	assert.Equal(t, OriginFallback, s.Origin)
	assert.Equal(t, now, s.UpdatedAt)
}

func TestDispatch_StaleResultIgnored(t *testing.T) {
	st := New()
	first := st.NextGeneration()
	second := st.NextGeneration()
	st.Dispatch(FetchPending[domain.Threat]{Generation: first})
	st.Dispatch(FetchPending[domain.Threat]{Generation: second})

	newer := []domain.Threat{{ID: "new"}}
	assert.True(t, st.Dispatch(FetchFulfilled[domain.Threat]{Generation: second, Items: newer}))

	before := st.State()
	assert.False(t, st.Dispatch(FetchFulfilled[domain.Threat]{Generation: first, Items: []domain.Threat{{ID: "old"}}}))
	assert.False(t, st.Dispatch(FetchRejected[domain.Threat]{Generation: first, Message: "late"}))

	assert.Equal(t, before, st.State())
	assert.Equal(t, newer, st.State().Threats.Items)
}

func TestDispatch_StaleResultKeepsLoadingWhileNewerPending(t *testing.T) {
	st := New()
	first := st.NextGeneration()
	st.Dispatch(FetchPending[domain.SIEMEvent]{Generation: first})
	second := st.NextGeneration()
	st.Dispatch(FetchPending[domain.SIEMEvent]{Generation: second})

	st.Dispatch(FetchFulfilled[domain.SIEMEvent]{Generation: first})
	assert.True(t, st.State().SIEM.Loading)
}

func TestDispatch_SetFiltersMerges(t *testing.T) {
	st := New()
	sev, src := "high", "VirusTotal"
	st.Dispatch(SetFilters[domain.Threat]{Patch: domain.FilterPatch{Severity: &sev}})
	st.Dispatch(SetFilters[domain.Threat]{Patch: domain.FilterPatch{Source: &src}})

	f := st.State().Threats.Filters
	assert.Equal(t, "high", f.Severity)
	assert.Equal(t, "VirusTotal", f.Source)
	assert.Equal(t, domain.Wildcard, f.Type)

	st.Dispatch(SetFilters[domain.Threat]{Patch: domain.ClearPatch()})
	assert.Equal(t, domain.DefaultFilters(), st.State().Threats.Filters)
}

func TestDispatch_ClearError(t *testing.T) {
	st := New()
	st.Dispatch(FetchRejected[domain.Report]{Message: "x"})
	st.Dispatch(ClearError[domain.Report]{})
	assert.Empty(t, st.State().Reports.Error)
}

func TestDispatch_RoutesToOneSlice(t *testing.T) {
	st := New()
	before := st.State()

	st.Dispatch(FetchPending[domain.ThreatLocation]{Generation: 1})
	after := st.State()

	assert.True(t, after.ThreatMap.Loading)
	assert.Equal(t, before.Threats, after.Threats)
	assert.Equal(t, before.Network, after.Network)
	assert.Equal(t, before.Auth, after.Auth)
	assert.Equal(t, before.UI, after.UI)
}

func TestDispatch_UI(t *testing.T) {
	st := New()
	st.Dispatch(ToggleSidebar{})
	st.Dispatch(SetLoading{Loading: true})
	st.Dispatch(ToggleTheme{})
	st.Dispatch(ToggleTheme{})

	ui := st.State().UI
	assert.True(t, ui.SidebarCollapsed)
	assert.True(t, ui.Loading)
	assert.Equal(t, domain.ThemeDark, ui.Theme)
}

func TestAuth_CheckFailure(t *testing.T) {
	st := New()
	require.Equal(t, domain.PhaseChecking, st.State().Auth.Phase)

	st.Dispatch(SessionCheckStarted{})
	st.Dispatch(SessionCheckFailed{Message: "No token found"})

	a := st.State().Auth
	assert.Equal(t, domain.PhaseUnauthenticated, a.Phase)
	assert.Nil(t, a.User)
	assert.Equal(t, "No token found", a.Error)
	assert.False(t, a.Loading)
}

func TestAuth_RecheckClearsAuthenticatedUser(t *testing.T) {
	st := New()
	st.Dispatch(LoginSucceeded{User: domain.User{ID: "1", Email: "a@b.com", Role: "Analyst"}})

	st.Dispatch(SessionCheckStarted{})

	a := st.State().Auth
	assert.Equal(t, domain.PhaseChecking, a.Phase)
	assert.Equal(t, a.Phase == domain.PhaseAuthenticated, a.IsAuthenticated)
	assert.Nil(t, a.User)
	assert.True(t, a.Loading)
}

func TestAuth_LoginFromUnauthenticated(t *testing.T) {
	st := New()
	st.Dispatch(SessionCheckFailed{Message: "expired"})

	st.Dispatch(LoginSucceeded{User: domain.User{ID: "1", Email: "a@b.com", Role: "Analyst"}})

	a := st.State().Auth
	assert.Equal(t, domain.PhaseAuthenticated, a.Phase)
	assert.True(t, a.IsAuthenticated)
	assert.False(t, a.Loading)
	assert.Empty(t, a.Error)
	require.NotNil(t, a.User)
	assert.Equal(t, domain.User{ID: "1", Email: "a@b.com", Role: "Analyst"}, *a.User)
}

func TestAuth_Logout(t *testing.T) {
	st := New()
	st.Dispatch(LoginSucceeded{User: domain.User{ID: "1"}})
	st.Dispatch(Logout{})

	a := st.State().Auth
	assert.Equal(t, domain.PhaseUnauthenticated, a.Phase)
	assert.False(t, a.IsAuthenticated)
	assert.Nil(t, a.User)
}

func TestSubscribe(t *testing.T) {
	st := New()
	var got []string
	unsubscribe := st.Subscribe(func(a Action, s State) {
		got = append(got, Name(a))
	})

	st.Dispatch(ToggleTheme{})
	st.Dispatch(FetchPending[domain.Threat]{Generation: 1})
	unsubscribe()
	unsubscribe()
	st.Dispatch(ToggleSidebar{})

	assert.Equal(t, []string{"ui/toggleTheme", "threats/fetch/pending"}, got)
}

func TestSubscribe_NotCalledForIgnoredAction(t *testing.T) {
	st := New()
	st.Dispatch(FetchPending[domain.Threat]{Generation: 5})

	calls := 0
	st.Subscribe(func(Action, State) { calls++ })
	st.Dispatch(FetchFulfilled[domain.Threat]{Generation: 4})

	assert.Zero(t, calls)
}

func TestDispatch_ConcurrentReadersSeeWholeStates(t *testing.T) {
	st := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			gen := st.NextGeneration()
			st.Dispatch(FetchPending[domain.Threat]{Generation: gen})
			st.Dispatch(FetchFulfilled[domain.Threat]{Generation: gen, Items: []domain.Threat{{ID: "x"}}})
		}()
		go func() {
			defer wg.Done()
			s := st.State()
			if !s.Threats.Loading && s.Threats.Generation > 0 && s.Threats.UpdatedAt.IsZero() {
				t.Errorf("observed a partially applied state: %+v", s.Threats)
			}
		}()
	}
	wg.Wait()
}

func TestSliceOf(t *testing.T) {
	assert.Equal(t, SliceThreats, SliceOf[domain.Threat]())
	assert.Equal(t, SliceNetwork, SliceOf[domain.NetworkDevice]())
	assert.Equal(t, SliceSIEM, SliceOf[domain.SIEMEvent]())
	assert.Equal(t, SliceReports, SliceOf[domain.Report]())
	assert.Equal(t, SliceThreatMap, SliceOf[domain.ThreatLocation]())
}

func TestVisible(t *testing.T) {
	c := newCollection[domain.Threat]()
	c.Items = []domain.Threat{{ID: "1", Severity: domain.SeverityHigh}, {ID: "2", Severity: domain.SeverityLow}}
	c.Filters.Severity = "low"

	assert.Equal(t, []domain.Threat{{ID: "2", Severity: domain.SeverityLow}}, Visible(c))
}
