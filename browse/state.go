package browse

import (
	"maps"
	"strings"

	"github.com/s0up4200/marquee/tmdb"
)

// Mode is the browsing mode, derived from the settled search term
type Mode int

const (
	// ModeCategory shows the active category list
	ModeCategory Mode = iota
	// ModeSearch shows search results
	ModeSearch
)

// String returns the string representation of a Mode
func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "category"
}

// SearchState holds everything about the current search
type SearchState struct {
	Raw     string
	Settled string
	Results []tmdb.Movie
	Loading bool
	// Empty is set when the search succeeded with zero matches
	Empty bool
	Err   *tmdb.Failure
}

// CategoryState maps each category to its movies in relevance order
type CategoryState map[tmdb.Category][]tmdb.Movie

type refreshStatus struct {
	loading bool
	// fetched is set once a refresh has succeeded, even with zero movies
	fetched bool
	err     *tmdb.Failure
}

// State is the complete view state. Values are never mutated in place;
// Reduce returns a new State sharing unchanged movie slices.
type State struct {
	Active     tmdb.Category
	Search     SearchState
	Categories CategoryState
	// Loaded is set once a bulk load has merged
	Loaded       bool
	BulkPending  bool
	BulkFailures map[tmdb.Category]*tmdb.Failure

	refresh [tmdb.NumCategories]refreshStatus
	seq     Sequencer
}

// NewState returns the initial state: category mode on Trending with no data
func NewState() State {
	return State{
		Active:     tmdb.Trending,
		Categories: CategoryState{},
	}
}

// Mode derives the browsing mode from the settled term
func (s State) Mode() Mode {
	if s.Search.Settled != "" {
		return ModeSearch
	}
	return ModeCategory
}

// Displayed derives the list to show for the current mode
func (s State) Displayed() []tmdb.Movie {
	if s.Mode() == ModeSearch {
		return s.Search.Results
	}
	return s.Categories[s.Active]
}

// Loading reports whether the list for the current mode is being fetched
func (s State) Loading() bool {
	if s.Mode() == ModeSearch {
		return s.Search.Loading
	}
	if s.refresh[s.Active].loading {
		return true
	}
	return s.BulkPending && len(s.Categories[s.Active]) == 0
}

// Err returns the user-visible error for the current mode
func (s State) Err() *tmdb.Failure {
	if s.Mode() == ModeSearch {
		return s.Search.Err
	}
	return s.refresh[s.Active].err
}

// Empty reports a settled, successful, zero-item list for the current mode
func (s State) Empty() bool {
	if s.Mode() == ModeSearch {
		return s.Search.Empty && !s.Search.Loading
	}
	if s.Loading() || s.Err() != nil {
		return false
	}
	settled := s.Loaded || s.refresh[s.Active].fetched
	return settled && len(s.Categories[s.Active]) == 0
}

// Sequencer exposes the ticket counters, mainly for inspection in tests
func (s State) Sequencer() Sequencer {
	return s.seq
}

// Stale reports whether ev is a fetch result superseded by a newer request
func (s State) Stale(ev Event) bool {
	switch e := ev.(type) {
	case SearchResult:
		return !s.seq.Current(e.Ticket)
	case CategoryResult:
		return !s.seq.Current(e.Ticket)
	case BulkResult:
		return !s.seq.Current(e.Ticket)
	default:
		return false
	}
}

// Reduce applies ev to s and returns the next state together with the
// fetches to start. It has no side effects.
func Reduce(s State, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case RawTermChanged:
		s.Search.Raw = e.Term
		return s, nil

	case debounceFired:
		if e.Term != s.Search.Raw {
			return s, nil
		}
		return settle(s, e.Term)

	case SettledTermChanged:
		return settle(s, e.Term)

	case CategorySelected:
		if !e.Category.Valid() {
			return s, nil
		}
		s.Active = e.Category
		s.Search = SearchState{}
		s.seq.Invalidate(ClassSearch)
		return ensureActive(s)

	case RetryRequested:
		if s.Mode() == ModeSearch {
			return startSearch(s, s.Search.Settled, true)
		}
		return startRefresh(s, s.Active)

	case BulkRequested:
		ticket := s.seq.Issue(ClassBulk)
		s.BulkPending = true
		return s, []Command{FetchAll{Ticket: ticket}}

	case SearchResult:
		if !s.seq.Current(e.Ticket) {
			return s, nil
		}
		return applySearch(s, e), nil

	case CategoryResult:
		if !e.Category.Valid() || e.Ticket.Class != RefreshClass(e.Category) || !s.seq.Current(e.Ticket) {
			return s, nil
		}
		return applyRefresh(s, e), nil

	case BulkResult:
		if !s.seq.Current(e.Ticket) {
			return s, nil
		}
		return applyBulk(s, e), nil
	}

	return s, nil
}

func settle(s State, term string) (State, []Command) {
	term = strings.TrimSpace(term)
	if term == s.Search.Settled {
		return s, nil
	}

	if term != "" {
		return startSearch(s, term, false)
	}

	s.Search = SearchState{Raw: s.Search.Raw}
	s.seq.Invalidate(ClassSearch)
	return ensureActive(s)
}

func startSearch(s State, term string, keepResults bool) (State, []Command) {
	ticket := s.seq.Issue(ClassSearch)
	next := SearchState{
		Raw:     s.Search.Raw,
		Settled: term,
		Loading: true,
	}
	if keepResults {
		next.Results = s.Search.Results
	}
	s.Search = next
	return s, []Command{FetchSearch{Ticket: ticket, Term: term}}
}

// ensureActive refreshes the active category when it has nothing to show
// and no fetch that could fill it is outstanding.
func ensureActive(s State) (State, []Command) {
	if len(s.Categories[s.Active]) > 0 || s.refresh[s.Active].loading || s.BulkPending {
		return s, nil
	}
	return startRefresh(s, s.Active)
}

func startRefresh(s State, category tmdb.Category) (State, []Command) {
	ticket := s.seq.Issue(RefreshClass(category))
	s.refresh[category].loading = true
	s.refresh[category].err = nil
	return s, []Command{FetchCategory{Ticket: ticket, Category: category}}
}

func applySearch(s State, r SearchResult) State {
	s.Search.Loading = false
	switch r.Outcome {
	case tmdb.OutcomeFailed:
		s.Search.Results = nil
		s.Search.Empty = false
		s.Search.Err = r.Failure
	case tmdb.OutcomeEmpty:
		s.Search.Results = []tmdb.Movie{}
		s.Search.Empty = true
		s.Search.Err = nil
	default:
		s.Search.Results = r.Movies
		s.Search.Empty = false
		s.Search.Err = nil
	}
	return s
}

func applyRefresh(s State, r CategoryResult) State {
	status := &s.refresh[r.Category]
	status.loading = false

	if r.Outcome == tmdb.OutcomeFailed {
		// prior entry stays in place
		status.err = r.Failure
		return s
	}

	status.err = nil
	status.fetched = true

	s.Categories = maps.Clone(s.Categories)
	if s.Categories == nil {
		s.Categories = CategoryState{}
	}
	s.Categories[r.Category] = nonNil(r.Movies)

	if _, ok := s.BulkFailures[r.Category]; ok {
		s.BulkFailures = maps.Clone(s.BulkFailures)
		delete(s.BulkFailures, r.Category)
	}
	return s
}

// applyBulk merges every slot in one step so readers never observe a
// partially merged map.
func applyBulk(s State, r BulkResult) State {
	merged := make(CategoryState, tmdb.NumCategories)
	maps.Copy(merged, s.Categories)

	failures := make(map[tmdb.Category]*tmdb.Failure)
	for _, category := range tmdb.Categories() {
		slot := r.Slots[category]
		if slot.Outcome == tmdb.OutcomeFailed {
			failures[category] = slot.Failure
			if len(merged[category]) == 0 {
				merged[category] = []tmdb.Movie{}
			}
			continue
		}
		merged[category] = nonNil(slot.Movies)
	}

	s.Categories = merged
	s.BulkFailures = failures
	s.BulkPending = false
	s.Loaded = true
	return s
}
