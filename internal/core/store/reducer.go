package store

import (
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

// reduce applies a to s and reports whether anything was applied. Only the
// slice named by a.Slice() is touched.
func reduce(s State, a Action, now time.Time) (State, bool) {
	var applied bool
	switch a.Slice() {
	case SliceAuth:
		s.Auth, applied = reduceAuth(s.Auth, a)
	case SliceThreats:
		s.Threats, applied = reduceCollection(s.Threats, a, now)
	case SliceNetwork:
		s.Network, applied = reduceCollection(s.Network, a, now)
	case SliceSIEM:
		s.SIEM, applied = reduceCollection(s.SIEM, a, now)
	case SliceReports:
		s.Reports, applied = reduceCollection(s.Reports, a, now)
	case SliceThreatMap:
		s.ThreatMap, applied = reduceCollection(s.ThreatMap, a, now)
	case SliceUI:
		s.UI, applied = reduceUI(s.UI, a)
	}
	return s, applied
}

// DefaultFetchError is recorded when a rejection carries no message.
func DefaultFetchError(slice SliceID) string {
	switch slice {
	case SliceThreats:
		return "Failed to fetch threats"
	case SliceNetwork:
		return "Failed to fetch network devices"
	case SliceSIEM:
		return "Failed to fetch SIEM events"
	case SliceReports:
		return "Failed to fetch reports"
	case SliceThreatMap:
		return "Failed to fetch threat locations"
	}
	return "Request failed"
}

func reduceCollection[T Entity](c Collection[T], a Action, now time.Time) (Collection[T], bool) {
	switch a := a.(type) {
	case SetFilters[T]:
		c.Filters = c.Filters.Merge(a.Patch)
	case ClearError[T]:
		c.Error = ""
	case FetchPending[T]:
		c.Loading = true
		c.Error = ""
		if a.Generation > c.Generation {
			c.Generation = a.Generation
		}
	case FetchFulfilled[T]:
		if a.Generation < c.Generation {
			return c, false
		}
		c.Loading = false
		c.Items = a.Items
		if c.Items == nil {
			c.Items = []T{}
		}
		c.Origin = a.Origin
		c.UpdatedAt = now
	case FetchRejected[T]:
		if a.Generation < c.Generation {
			return c, false
		}
		c.Loading = false
		c.Error = a.Message
		if c.Error == "" {
			c.Error = DefaultFetchError(SliceOf[T]())
		}
	default:
		return c, false
	}
	return c, true
}

func reduceAuth(s AuthState, a Action) (AuthState, bool) {
	switch a := a.(type) {
	case SessionCheckStarted:
		// A re-check drops the current user until the provider answers.
		s = AuthState{Phase: domain.PhaseChecking, Loading: true}
	case SessionCheckSucceeded:
		s = authenticated(a.User)
	case SessionCheckFailed:
		s = AuthState{Phase: domain.PhaseUnauthenticated, Error: a.Message}
	case LoginStarted:
		s.Loading = true
		s.Error = ""
	case LoginSucceeded:
		s = authenticated(a.User)
	case LoginFailed:
		s = AuthState{Phase: domain.PhaseUnauthenticated, Error: a.Message}
	case Logout:
		s = AuthState{Phase: domain.PhaseUnauthenticated}
	case ClearAuthError:
		s.Error = ""
	default:
		return s, false
	}
	return s, true
}

func authenticated(u domain.User) AuthState {
	return AuthState{
		Phase:           domain.PhaseAuthenticated,
		IsAuthenticated: true,
		User:            &u,
	}
}

func reduceUI(s UIState, a Action) (UIState, bool) {
	switch a := a.(type) {
	case ToggleTheme:
		s.Theme = s.Theme.Toggle()
	case ToggleSidebar:
		s.SidebarCollapsed = !s.SidebarCollapsed
	case SetLoading:
		s.Loading = a.Loading
	default:
		return s, false
	}
	return s, true
}
