package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"github.com/lcalzada-xor/cyberdash/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Loader runs the pending → fulfilled/rejected lifecycle of one collection
// slice against a two-tier source.
type Loader[T store.Entity] struct {
	store  *store.Store
	source TwoTier[T]
	logger *slog.Logger
}

// NewLoader creates a loader dispatching into st.
func NewLoader[T store.Entity](st *store.Store, source TwoTier[T], logger *slog.Logger) *Loader[T] {
	if logger == nil {
		logger = slog.Default()
	}
	if source.Resource == "" {
		source.Resource = string(store.SliceOf[T]())
	}
	if source.Logger == nil {
		source.Logger = logger
	}
	return &Loader[T]{
		store:  st,
		source: source,
		logger: logger.With("component", "refresh", "resource", source.Resource),
	}
}

// Resource is the slice name the loader fills.
func (l *Loader[T]) Resource() string {
	return l.source.Resource
}

// Refresh performs one fetch. The returned error is the fetch failure, if
// any; it has already been recorded in the slice by the time it is returned.
func (l *Loader[T]) Refresh(ctx context.Context) error {
	ctx, span := telemetry.Tracer().Start(ctx, "refresh."+l.source.Resource)
	defer span.End()

	gen := l.store.NextGeneration()
	span.SetAttributes(attribute.Int64("cyberdash.generation", int64(gen)))
	l.store.Dispatch(store.FetchPending[T]{Generation: gen})

	start := time.Now()
	items, origin, err := l.source.Fetch(ctx)
	telemetry.FetchDuration.WithLabelValues(l.source.Resource).Observe(time.Since(start).Seconds())

	var applied bool
	if err != nil {
		telemetry.FetchesTotal.WithLabelValues(l.source.Resource, "failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.logger.Error("Fetch failed", "generation", gen, "error", err)
		applied = l.store.Dispatch(store.FetchRejected[T]{Generation: gen, Message: err.Error()})
	} else {
		telemetry.FetchesTotal.WithLabelValues(l.source.Resource, string(origin)).Inc()
		span.SetAttributes(
			attribute.String("cyberdash.origin", string(origin)),
			attribute.Int("cyberdash.items", len(items)),
		)
		applied = l.store.Dispatch(store.FetchFulfilled[T]{Generation: gen, Items: items, Origin: origin})
	}

	if !applied {
		telemetry.StaleResults.WithLabelValues(l.source.Resource).Inc()
		l.logger.Debug("Discarded superseded fetch result", "generation", gen)
	}
	return err
}
