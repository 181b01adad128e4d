package browse

import (
	"fmt"
	"slices"

	"github.com/s0up4200/marquee/tmdb"
)

// Snapshot is an immutable copy of the view state handed to readers
type Snapshot struct {
	Mode        Mode
	Active      tmdb.Category
	RawTerm     string
	SettledTerm string
	Displayed   []tmdb.Movie
	Loading     bool
	Err         *tmdb.Failure
	Empty       bool

	Categories       map[tmdb.Category][]tmdb.Movie
	CategoriesLoaded bool
	BulkFailures     map[tmdb.Category]tmdb.Failure

	// Revision increases with every applied event
	Revision uint64
}

// Filter narrows the displayed list
type Filter interface {
	Match(movie tmdb.Movie) bool
}

// Section is one category preview
type Section struct {
	Category tmdb.Category
	Movies   []tmdb.Movie
}

// newSnapshot derives a snapshot from s. It copies every slice and map so
// the caller may keep it indefinitely.
func newSnapshot(s State, filter Filter, revision uint64) Snapshot {
	snap := Snapshot{
		Mode:             s.Mode(),
		Active:           s.Active,
		RawTerm:          s.Search.Raw,
		SettledTerm:      s.Search.Settled,
		Displayed:        applyFilter(s.Displayed(), filter),
		Loading:          s.Loading(),
		Empty:            s.Empty(),
		Categories:       make(map[tmdb.Category][]tmdb.Movie, len(s.Categories)),
		CategoriesLoaded: s.Loaded,
		Revision:         revision,
	}

	if err := s.Err(); err != nil {
		dup := *err
		snap.Err = &dup
	}

	// a filter that rejects a whole settled list leaves an empty state too
	if !snap.Empty && !snap.Loading && snap.Err == nil && len(snap.Displayed) == 0 && len(s.Displayed()) > 0 {
		snap.Empty = true
	}

	for category, movies := range s.Categories {
		snap.Categories[category] = slices.Clone(movies)
	}

	if len(s.BulkFailures) > 0 {
		snap.BulkFailures = make(map[tmdb.Category]tmdb.Failure, len(s.BulkFailures))
		for category, failure := range s.BulkFailures {
			snap.BulkFailures[category] = *failure
		}
	}

	return snap
}

func applyFilter(movies []tmdb.Movie, filter Filter) []tmdb.Movie {
	if filter == nil {
		return slices.Clone(movies)
	}
	out := make([]tmdb.Movie, 0, len(movies))
	for _, movie := range movies {
		if filter.Match(movie) {
			out = append(out, movie)
		}
	}
	return out
}

// Message returns the text to show instead of a list, or an empty string
// when the list should be rendered.
func (s Snapshot) Message() string {
	switch {
	case s.Loading:
		return ""
	case s.Err != nil:
		return s.Err.Error()
	case s.Empty && s.Mode == ModeSearch:
		return fmt.Sprintf("No movies found for %q", s.SettledTerm)
	case s.Empty:
		return "No movies found in this category."
	default:
		return ""
	}
}

// Featured returns up to limit movies from the displayed list
func (s Snapshot) Featured(limit int) []tmdb.Movie {
	if limit <= 0 || limit >= len(s.Displayed) {
		return s.Displayed
	}
	return s.Displayed[:limit]
}

// Previews returns up to limit movies for every non-active, non-empty
// category in category order. It is empty in search mode.
func (s Snapshot) Previews(limit int) []Section {
	if s.Mode == ModeSearch {
		return nil
	}
	var sections []Section
	for _, category := range tmdb.Categories() {
		movies := s.Categories[category]
		if category == s.Active || len(movies) == 0 {
			continue
		}
		if limit > 0 && len(movies) > limit {
			movies = movies[:limit]
		}
		sections = append(sections, Section{Category: category, Movies: movies})
	}
	return sections
}
