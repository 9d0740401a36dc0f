package screens

import (
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

// CollectionView is one resource as a screen renders it: the filtered items
// plus the fetch status of the slice.
type CollectionView struct {
	Items     any                   `json:"items"`
	Visible   int                   `json:"visible"`
	Total     int                   `json:"total"`
	Filters   domain.FilterCriteria `json:"filters"`
	Loading   bool                  `json:"loading"`
	Error     string                `json:"error,omitempty"`
	Origin    store.Origin          `json:"origin,omitempty"`
	UpdatedAt time.Time             `json:"updatedAt,omitempty"`
}

// View is what a client attached to a screen receives.
type View struct {
	Screen      Screen                    `json:"screen"`
	Auth        store.AuthState           `json:"auth"`
	UI          store.UIState             `json:"ui"`
	Summary     *domain.Summary           `json:"summary,omitempty"`
	Collections map[string]CollectionView `json:"collections"`
}

// Render projects a snapshot onto s. The dashboard also carries the summary counters.
func (s Screen) Render(st store.State, now time.Time) View {
	v := View{
		Screen:      s,
		Auth:        st.Auth,
		UI:          st.UI,
		Collections: make(map[string]CollectionView, len(s.Resources)),
	}
	for _, res := range s.Resources {
		if cv, ok := Collection(st, res); ok {
			v.Collections[res] = cv
		}
	}
	if s.Path == "/" {
		sum := st.Summary(now)
		v.Summary = &sum
	}
	return v
}

// Collection renders a single resource of the snapshot.
func Collection(st store.State, resource string) (CollectionView, bool) {
	switch resource {
	case ResourceThreats:
		return collectionView(st.Threats), true
	case ResourceNetwork:
		return collectionView(st.Network), true
	case ResourceSIEM:
		return collectionView(st.SIEM), true
	case ResourceReports:
		return collectionView(st.Reports), true
	case ResourceThreatMap:
		return collectionView(st.ThreatMap), true
	}
	return CollectionView{}, false
}

func collectionView[T store.Entity](c store.Collection[T]) CollectionView {
	visible := store.Visible(c)
	return CollectionView{
		Items:     visible,
		Visible:   len(visible),
		Total:     len(c.Items),
		Filters:   c.Filters,
		Loading:   c.Loading,
		Error:     c.Error,
		Origin:    c.Origin,
		UpdatedAt: c.UpdatedAt,
	}
}

// Watches reports whether an action on slice should refresh clients of s.
func (s Screen) Watches(slice store.SliceID) bool {
	if slice == store.SliceAuth || slice == store.SliceUI {
		return true
	}
	for _, res := range s.Resources {
		if string(slice) == res {
			return true
		}
	}
	return false
}
