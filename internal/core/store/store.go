package store

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/telemetry"
)

// Listener receives the state produced by a dispatch. Listeners run while the
// dispatch lock is held and must not call Dispatch themselves.
type Listener func(a Action, s State)

// Store is the single mutable state tree. All mutations go through Dispatch.
type Store struct {
	dispatchMu sync.Mutex // serializes reduce + notify
	mu         sync.RWMutex
	state      State

	generation atomic.Uint64

	subsMu  sync.Mutex
	subs    map[uint64]Listener
	nextSub uint64

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithInitialState replaces InitialState.
func WithInitialState(s State) Option {
	return func(st *Store) { st.state = s }
}

// WithClock overrides the time source used for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(st *Store) { st.logger = l }
}

// New creates an independent store.
func New(opts ...Option) *Store {
	s := &Store{
		state:  InitialState(),
		subs:   make(map[uint64]Listener),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store")
	return s
}

// State returns a snapshot of the whole tree.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// NextGeneration hands out a request generation for a fetch. Values are
// strictly increasing across the store.
func (s *Store) NextGeneration() uint64 {
	return s.generation.Add(1)
}

// Dispatch applies a to the tree and notifies listeners. It returns false when
// the action was ignored, e.g. a result from a superseded fetch.
func (s *Store) Dispatch(a Action) bool {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next, applied := reduce(s.state, a, s.now())
	if applied {
		s.state = next
	}
	s.mu.Unlock()

	name := Name(a)
	if !applied {
		telemetry.ActionsDispatched.WithLabelValues(string(a.Slice()), "ignored").Inc()
		s.logger.Debug("Action ignored", "action", name)
		return false
	}
	telemetry.ActionsDispatched.WithLabelValues(string(a.Slice()), "applied").Inc()
	s.logger.Debug("Action applied", "action", name)

	for _, l := range s.listeners() {
		l(a, next)
	}
	return true
}

// Subscribe registers l and returns a func that removes it. The returned func
// is safe to call more than once.
func (s *Store) Subscribe(l Listener) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = l
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

func (s *Store) listeners() []Listener {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	out := make([]Listener, 0, len(s.subs))
	for _, l := range s.subs {
		out = append(out, l)
	}
	return out
}
