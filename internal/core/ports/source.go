package ports

import "context"

// Source fetches a full collection of T. Every call returns the complete set;
// callers replace what they hold rather than merging.
type Source[T any] interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Fetch retrieves the collection.
	Fetch(ctx context.Context) ([]T, error)
}
