package store

import (
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

// Origin records which tier of a two-tier source produced a collection.
type Origin string

const (
	OriginNone     Origin = ""
	OriginPrimary  Origin = "primary"
	OriginFallback Origin = "fallback"
)

// Entity is the closed set of types held in collection slices.
type Entity interface {
	domain.Threat | domain.NetworkDevice | domain.SIEMEvent | domain.Report | domain.ThreatLocation
	domain.Filterable
}

// Collection is the state shape shared by every fetched slice.
// Generation is the newest request generation seen in a pending action;
// results from older generations are discarded.
type Collection[T Entity] struct {
	Items      []T                   `json:"items"`
	Filters    domain.FilterCriteria `json:"filters"`
	Loading    bool                  `json:"loading"`
	Error      string                `json:"error,omitempty"`
	Origin     Origin                `json:"origin,omitempty"`
	Generation uint64                `json:"generation"`
	UpdatedAt  time.Time             `json:"updatedAt,omitempty"`
}

// Visible applies the collection's own filters to its items.
func Visible[T Entity](c Collection[T]) []T {
	return domain.Apply(c.Filters, c.Items)
}

func newCollection[T Entity]() Collection[T] {
	return Collection[T]{Items: []T{}, Filters: domain.DefaultFilters()}
}

// AuthState is the authentication gate slice. IsAuthenticated mirrors
// Phase == PhaseAuthenticated; the reducer keeps them in step.
type AuthState struct {
	Phase           domain.AuthPhase `json:"phase"`
	IsAuthenticated bool             `json:"isAuthenticated"`
	User            *domain.User     `json:"user"`
	Loading         bool             `json:"loading"`
	Error           string           `json:"error,omitempty"`
}

// UIState holds session-lifetime display preferences.
type UIState struct {
	Theme            domain.Theme `json:"theme"`
	SidebarCollapsed bool         `json:"sidebarCollapsed"`
	Loading          bool         `json:"loading"`
}

// State is the full tree. Values returned by Store.State are snapshots and
// must be treated as read-only; reducers never modify item slices in place.
type State struct {
	Auth      AuthState                         `json:"auth"`
	Threats   Collection[domain.Threat]         `json:"threats"`
	Network   Collection[domain.NetworkDevice]  `json:"network"`
	SIEM      Collection[domain.SIEMEvent]      `json:"siem"`
	Reports   Collection[domain.Report]         `json:"reports"`
	ThreatMap Collection[domain.ThreatLocation] `json:"threatMap"`
	UI        UIState                           `json:"ui"`
}

// InitialState is the tree a new store starts from: auth checking, dark theme,
// empty collections with wildcard filters.
func InitialState() State {
	return State{
		Auth:      AuthState{Phase: domain.PhaseChecking},
		Threats:   newCollection[domain.Threat](),
		Network:   newCollection[domain.NetworkDevice](),
		SIEM:      newCollection[domain.SIEMEvent](),
		Reports:   newCollection[domain.Report](),
		ThreatMap: newCollection[domain.ThreatLocation](),
		UI:        UIState{Theme: domain.ThemeDark},
	}
}

// Summary derives the dashboard counters from the snapshot.
func (s State) Summary(now time.Time) domain.Summary {
	return domain.Summarize(s.Threats.Items, s.Network.Items, s.SIEM.Items, s.ThreatMap.Items, now)
}
