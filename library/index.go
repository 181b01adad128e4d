package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// DefaultTimeout bounds Radarr requests
const DefaultTimeout = 30 * time.Second

// ErrNotConfigured indicates the Radarr URL or API key is missing
var ErrNotConfigured = errors.New("library: radarr url and api key are required")

// MovieLister is the part of the Radarr API the index needs
type MovieLister interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	Ping() error
}

// Entry is what the index knows about an owned movie
type Entry struct {
	RadarrID  int64
	Title     string
	HasFile   bool
	Monitored bool
}

// Index maps TMDB IDs to movies present in a Radarr library
type Index struct {
	api    MovieLister
	logger zerolog.Logger

	mu       sync.RWMutex
	entries  map[int64]Entry
	loadedAt time.Time
}

// NewIndex creates an empty index backed by api
func NewIndex(api MovieLister, logger zerolog.Logger) *Index {
	return &Index{
		api:     api,
		logger:  logger,
		entries: make(map[int64]Entry),
	}
}

// NewRadarrIndex connects to a Radarr instance
func NewRadarrIndex(url, apiKey string, timeout time.Duration, logger zerolog.Logger) (*Index, error) {
	if url == "" || apiKey == "" {
		return nil, ErrNotConfigured
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := radarr.New(starr.New(apiKey, url, timeout))
	return NewIndex(client, logger), nil
}

// Ping checks that Radarr is reachable with the configured key
func (i *Index) Ping() error {
	if err := i.api.Ping(); err != nil {
		return fmt.Errorf("failed to connect to Radarr: %w", err)
	}
	return nil
}

// Load replaces the index with the current Radarr library
func (i *Index) Load(ctx context.Context) error {
	movies, err := i.api.GetMovieContext(ctx, &radarr.GetMovie{})
	if err != nil {
		return fmt.Errorf("failed to get movies: %w", err)
	}

	entries := make(map[int64]Entry, len(movies))
	for _, movie := range movies {
		if movie == nil || movie.TmdbID == 0 {
			continue
		}
		entries[movie.TmdbID] = Entry{
			RadarrID:  movie.ID,
			Title:     movie.Title,
			HasFile:   movie.HasFile,
			Monitored: movie.Monitored,
		}
	}

	i.mu.Lock()
	i.entries = entries
	i.loadedAt = time.Now()
	i.mu.Unlock()

	i.logger.Debug().Int("movies", len(entries)).Msg("Loaded Radarr library")
	return nil
}

// Owned reports whether the TMDB ID is in the library
func (i *Index) Owned(tmdbID int64) bool {
	_, ok := i.Lookup(tmdbID)
	return ok
}

// Lookup returns the library entry for a TMDB ID
func (i *Index) Lookup(tmdbID int64) (Entry, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	entry, ok := i.entries[tmdbID]
	return entry, ok
}

// Len returns the number of indexed movies
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// LoadedAt returns when the index was last loaded, or the zero time
func (i *Index) LoadedAt() time.Time {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.loadedAt
}
