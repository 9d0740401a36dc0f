package store

import (
	"fmt"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

// SliceID names a region of the state tree.
type SliceID string

const (
	SliceAuth      SliceID = "auth"
	SliceThreats   SliceID = "threats"
	SliceNetwork   SliceID = "network"
	SliceSIEM      SliceID = "siem"
	SliceReports   SliceID = "reports"
	SliceThreatMap SliceID = "threatMap"
	SliceUI        SliceID = "ui"
)

// Action is a mutation request. The set is closed: only types in this
// package implement it, and each one targets exactly one slice.
type Action interface {
	Slice() SliceID
	kind() string
}

// SliceOf returns the slice that holds entities of type T.
func SliceOf[T Entity]() SliceID {
	var zero T
	switch any(zero).(type) {
	case domain.Threat:
		return SliceThreats
	case domain.NetworkDevice:
		return SliceNetwork
	case domain.SIEMEvent:
		return SliceSIEM
	case domain.Report:
		return SliceReports
	case domain.ThreatLocation:
		return SliceThreatMap
	}
	panic(fmt.Sprintf("store: no slice for %T", zero))
}

// Name renders an action as "slice/kind" for logs, audit and events.
func Name(a Action) string {
	return string(a.Slice()) + "/" + a.kind()
}

// --- Collection actions ---

// SetFilters merges a partial criteria patch into the slice filters.
type SetFilters[T Entity] struct {
	Patch domain.FilterPatch
}

// ClearError drops the recorded fetch error.
type ClearError[T Entity] struct{}

// FetchPending marks the start of fetch Generation.
type FetchPending[T Entity] struct {
	Generation uint64
}

// FetchFulfilled replaces the items with the result of fetch Generation.
type FetchFulfilled[T Entity] struct {
	Generation uint64
	Items      []T
	Origin     Origin
}

// FetchRejected records the failure of fetch Generation.
type FetchRejected[T Entity] struct {
	Generation uint64
	Message    string
}

func (SetFilters[T]) Slice() SliceID     { return SliceOf[T]() }
func (ClearError[T]) Slice() SliceID     { return SliceOf[T]() }
func (FetchPending[T]) Slice() SliceID   { return SliceOf[T]() }
func (FetchFulfilled[T]) Slice() SliceID { return SliceOf[T]() }
func (FetchRejected[T]) Slice() SliceID  { return SliceOf[T]() }

func (SetFilters[T]) kind() string     { return "setFilters" }
func (ClearError[T]) kind() string     { return "clearError" }
func (FetchPending[T]) kind() string   { return "fetch/pending" }
func (FetchFulfilled[T]) kind() string { return "fetch/fulfilled" }
func (FetchRejected[T]) kind() string  { return "fetch/rejected" }

// --- Auth actions ---

type SessionCheckStarted struct{}

type SessionCheckSucceeded struct {
	User domain.User
}

type SessionCheckFailed struct {
	Message string
}

type LoginStarted struct{}

type LoginSucceeded struct {
	User domain.User
}

type LoginFailed struct {
	Message string
}

type Logout struct{}

type ClearAuthError struct{}

func (SessionCheckStarted) Slice() SliceID   { return SliceAuth }
func (SessionCheckSucceeded) Slice() SliceID { return SliceAuth }
func (SessionCheckFailed) Slice() SliceID    { return SliceAuth }
func (LoginStarted) Slice() SliceID          { return SliceAuth }
func (LoginSucceeded) Slice() SliceID        { return SliceAuth }
func (LoginFailed) Slice() SliceID           { return SliceAuth }
func (Logout) Slice() SliceID                { return SliceAuth }
func (ClearAuthError) Slice() SliceID        { return SliceAuth }

func (SessionCheckStarted) kind() string   { return "checkSession/pending" }
func (SessionCheckSucceeded) kind() string { return "checkSession/fulfilled" }
func (SessionCheckFailed) kind() string    { return "checkSession/rejected" }
func (LoginStarted) kind() string          { return "login/pending" }
func (LoginSucceeded) kind() string        { return "login" }
func (LoginFailed) kind() string           { return "login/rejected" }
func (Logout) kind() string                { return "logout" }
func (ClearAuthError) kind() string        { return "clearError" }

// --- UI actions ---

type ToggleTheme struct{}

type ToggleSidebar struct{}

type SetLoading struct {
	Loading bool
}

func (ToggleTheme) Slice() SliceID   { return SliceUI }
func (ToggleSidebar) Slice() SliceID { return SliceUI }
func (SetLoading) Slice() SliceID    { return SliceUI }

func (ToggleTheme) kind() string   { return "toggleTheme" }
func (ToggleSidebar) kind() string { return "toggleSidebar" }
func (SetLoading) kind() string    { return "setLoading" }
