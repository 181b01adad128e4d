package tmdb

import (
	"context"
)

// API defines the catalog operations used by the browser
type API interface {
	// Search retrieves movies matching a free-text term
	Search(ctx context.Context, term string) ([]Movie, error)

	// Category retrieves the list backing a fixed category
	Category(ctx context.Context, category Category) ([]Movie, error)
}

var _ API = (*Client)(nil)
