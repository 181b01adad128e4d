package browse

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/tmdb"
)

// CategoryFetcher loads category lists, either all at once or one at a time
type CategoryFetcher struct {
	catalog tmdb.API
	timeout time.Duration
	logger  zerolog.Logger
}

// NewCategoryFetcher creates a CategoryFetcher. A non-positive timeout
// selects DefaultRequestTimeout.
func NewCategoryFetcher(catalog tmdb.API, timeout time.Duration, logger zerolog.Logger) *CategoryFetcher {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &CategoryFetcher{
		catalog: catalog,
		timeout: timeout,
		logger:  logger,
	}
}

// LoadAll requests every category concurrently and returns once each slot
// has settled. A failed slot never affects its siblings.
func (f *CategoryFetcher) LoadAll(ctx context.Context, ticket Ticket) BulkResult {
	result := BulkResult{Ticket: ticket}
	start := time.Now()

	// slot functions always return nil, so no failure cancels the group
	var g errgroup.Group
	g.SetLimit(tmdb.NumCategories)

	for _, category := range tmdb.Categories() {
		g.Go(func() error {
			// each goroutine owns exactly one slot
			result.Slots[category] = f.fetch(ctx, Ticket{}, category)
			return nil
		})
	}
	_ = g.Wait()

	failed := result.Failed()
	for _, category := range failed {
		slot := result.Slots[category]
		f.logger.Warn().
			Str("category", category.String()).
			Str("kind", slot.Failure.Kind.String()).
			Int("status", slot.Failure.StatusCode).
			Str("error", slot.Failure.Message).
			Msg("Category load failed, showing empty section")
	}

	f.logger.Debug().
		Uint64("ticket", ticket.Seq).
		Int("failed", len(failed)).
		Dur("elapsed", time.Since(start)).
		Msg("Loaded all categories")

	return result
}

// Refresh requests a single category
func (f *CategoryFetcher) Refresh(ctx context.Context, ticket Ticket, category tmdb.Category) CategoryResult {
	result := f.fetch(ctx, ticket, category)
	if result.Outcome == tmdb.OutcomeFailed {
		f.logger.Warn().
			Str("category", category.String()).
			Uint64("ticket", ticket.Seq).
			Str("kind", result.Failure.Kind.String()).
			Str("error", result.Failure.Message).
			Msg("Category refresh failed")
	}
	return result
}

func (f *CategoryFetcher) fetch(ctx context.Context, ticket Ticket, category tmdb.Category) CategoryResult {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	movies, err := f.catalog.Category(ctx, category)
	result := CategoryResult{Ticket: ticket, Category: category}
	result.Outcome, result.Failure = tmdb.Classify(movies, err)
	if result.Outcome != tmdb.OutcomeFailed {
		result.Movies = nonNil(movies)
	}
	return result
}
