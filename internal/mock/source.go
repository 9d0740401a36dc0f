package mock

import (
	"context"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

// Source serves a generator collection after a simulated network delay.
type Source[T any] struct {
	name  string
	delay time.Duration
	gen   func() []T
}

var _ ports.Source[struct{}] = (*Source[struct{}])(nil)

// NewSource wraps gen as a ports.Source named name.
func NewSource[T any](name string, delay time.Duration, gen func() []T) *Source[T] {
	return &Source[T]{name: name, delay: delay, gen: gen}
}

func (s *Source[T]) Name() string { return s.name }

// Fetch waits for the delay, or until ctx ends, then returns a fresh sample.
func (s *Source[T]) Fetch(ctx context.Context) ([]T, error) {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return s.gen(), nil
}
