package browse

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/tmdb"
)

// DefaultRequestTimeout bounds every individual catalog request
const DefaultRequestTimeout = 10 * time.Second

// SearchFetcher issues search requests for settled terms
type SearchFetcher struct {
	catalog tmdb.API
	timeout time.Duration
	logger  zerolog.Logger
}

// NewSearchFetcher creates a SearchFetcher. A non-positive timeout selects
// DefaultRequestTimeout.
func NewSearchFetcher(catalog tmdb.API, timeout time.Duration, logger zerolog.Logger) *SearchFetcher {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &SearchFetcher{
		catalog: catalog,
		timeout: timeout,
		logger:  logger,
	}
}

// Fetch runs one search and tags the classified outcome with ticket. An
// empty term issues no request.
func (f *SearchFetcher) Fetch(ctx context.Context, ticket Ticket, term string) SearchResult {
	result := SearchResult{Ticket: ticket, Term: term}

	if strings.TrimSpace(term) == "" {
		result.Movies = []tmdb.Movie{}
		result.Outcome = tmdb.OutcomeEmpty
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	movies, err := f.catalog.Search(ctx, term)
	result.Outcome, result.Failure = tmdb.Classify(movies, err)

	switch result.Outcome {
	case tmdb.OutcomeFailed:
		f.logger.Warn().
			Err(err).
			Str("term", term).
			Uint64("ticket", ticket.Seq).
			Str("kind", result.Failure.Kind.String()).
			Msg("Search request failed")
	default:
		result.Movies = nonNil(movies)
		f.logger.Debug().
			Str("term", term).
			Uint64("ticket", ticket.Seq).
			Int("count", len(movies)).
			Msg("Search request completed")
	}

	return result
}

func nonNil(movies []tmdb.Movie) []tmdb.Movie {
	if movies == nil {
		return []tmdb.Movie{}
	}
	return movies
}
