package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"github.com/lcalzada-xor/cyberdash/internal/telemetry"
)

var (
	ErrNoSource    = errors.New("no source configured")
	ErrInvalidItem = errors.New("invalid item in feed")
)

// validator is implemented by entities that carry field invariants.
type validator interface {
	Validate() error
}

// TwoTier fetches from Primary and falls back to Fallback when Primary fails.
// A nil Primary means no remote feed is configured and Fallback answers alone.
type TwoTier[T any] struct {
	Resource string
	Primary  ports.Source[T]
	Fallback ports.Source[T]
	Logger   *slog.Logger
}

// Fetch returns the collection and which tier produced it.
func (t TwoTier[T]) Fetch(ctx context.Context) ([]T, store.Origin, error) {
	if t.Primary != nil {
		items, err := t.Primary.Fetch(ctx)
		if err == nil {
			err = validateItems(items)
		}
		if err == nil {
			return items, store.OriginPrimary, nil
		}
		if t.Fallback == nil {
			return nil, store.OriginNone, fmt.Errorf("%s: %w", t.Primary.Name(), err)
		}
		telemetry.FallbacksTotal.WithLabelValues(t.Resource).Inc()
		t.logger().Warn("Primary source failed, using fallback",
			"resource", t.Resource,
			"primary", t.Primary.Name(),
			"fallback", t.Fallback.Name(),
			"error", err)
	}
	if t.Fallback == nil {
		return nil, store.OriginNone, ErrNoSource
	}
	items, err := t.Fallback.Fetch(ctx)
	if err != nil {
		return nil, store.OriginNone, fmt.Errorf("%s: %w", t.Fallback.Name(), err)
	}
	return items, store.OriginFallback, nil
}

func (t TwoTier[T]) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// validateItems rejects the whole primary response when any item breaks its
// invariants, so a malformed feed is handled like an unreachable one.
func validateItems[T any](items []T) error {
	for i := range items {
		v, ok := any(items[i]).(validator)
		if !ok {
			return nil
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: item %d: %w", ErrInvalidItem, i, err)
		}
	}
	return nil
}
