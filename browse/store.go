package browse

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/tmdb"
)

// Store owns the view state. Every mutation goes through Reduce under one
// lock, so fetch results that complete in parallel are applied one at a time.
type Store struct {
	mu       sync.Mutex
	idle     *sync.Cond
	state    State
	revision uint64
	inflight int
	closed   bool

	search     *SearchFetcher
	categories *CategoryFetcher
	debouncer  *Debouncer
	filter     Filter
	logger     zerolog.Logger

	debounce       time.Duration
	requestTimeout time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	updates chan struct{}
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithDebounce sets the quiescence window for search input
func WithDebounce(d time.Duration) StoreOption {
	return func(s *Store) {
		s.debounce = d
	}
}

// WithRequestTimeout bounds each catalog request
func WithRequestTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.requestTimeout = d
	}
}

// WithFilter narrows the displayed list in snapshots
func WithFilter(f Filter) StoreOption {
	return func(s *Store) {
		s.filter = f
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store backed by catalog. Call Start to begin the bulk
// load and Close to release it.
func NewStore(catalog tmdb.API, opts ...StoreOption) *Store {
	s := &Store{
		state:          NewState(),
		debounce:       DefaultDebounce,
		requestTimeout: DefaultRequestTimeout,
		logger:         zerolog.Nop(),
		updates:        make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.idle = sync.NewCond(&s.mu)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.search = NewSearchFetcher(catalog, s.requestTimeout, s.logger)
	s.categories = NewCategoryFetcher(catalog, s.requestTimeout, s.logger)
	s.debouncer = NewDebouncer(s.debounce, func(term string) {
		s.dispatch(debounceFired{Term: term})
	})

	return s
}

// Start issues the bulk load of every category. Calling it again reloads
// everything; only the latest load is applied.
func (s *Store) Start() {
	s.dispatch(BulkRequested{})
}

// SetRawTerm records the search field contents and feeds the debouncer
func (s *Store) SetRawTerm(term string) {
	s.dispatch(RawTermChanged{Term: term})
	s.debouncer.Push(term)
}

// Submit settles the current raw term immediately, skipping the debounce
// window.
func (s *Store) Submit() {
	if s.debouncer.Flush() {
		return
	}
	s.mu.Lock()
	raw := s.state.Search.Raw
	s.mu.Unlock()
	s.dispatch(SettledTermChanged{Term: raw})
}

// Search sets the term and settles it immediately
func (s *Store) Search(term string) {
	s.SetRawTerm(term)
	s.Submit()
}

// SelectCategory activates category, clearing any search in progress
func (s *Store) SelectCategory(category tmdb.Category) {
	s.debouncer.Cancel()
	s.dispatch(CategorySelected{Category: category})
}

// Retry re-issues the fetch for the current mode
func (s *Store) Retry() {
	s.dispatch(RetryRequested{})
}

// Snapshot returns an immutable copy of the current view state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return newSnapshot(s.state, s.filter, s.revision)
}

// Updates returns a channel signalled after state changes. Signals are
// coalesced; read Snapshot for the latest state.
func (s *Store) Updates() <-chan struct{} {
	return s.updates
}

// Wait blocks until every fetch started so far has been applied
func (s *Store) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.inflight > 0 {
		s.idle.Wait()
	}
}

// Close cancels outstanding requests, stops the debouncer and waits for
// running fetches to return. Results arriving after Close are dropped.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cancel()
	s.mu.Unlock()

	s.debouncer.Stop()
	s.Wait()
}

func (s *Store) dispatch(ev Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	if s.state.Stale(ev) {
		s.mu.Unlock()
		s.logger.Debug().Str("event", eventName(ev)).Msg("Discarded stale response")
		return
	}

	next, commands := Reduce(s.state, ev)
	s.state = next
	s.revision++
	for _, cmd := range commands {
		s.inflight++
		go s.run(cmd)
	}
	s.mu.Unlock()

	s.logger.Trace().
		Str("event", eventName(ev)).
		Str("mode", next.Mode().String()).
		Str("active", next.Active.String()).
		Int("commands", len(commands)).
		Msg("Applied event")

	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func (s *Store) run(cmd Command) {
	defer func() {
		s.mu.Lock()
		s.inflight--
		if s.inflight == 0 {
			s.idle.Broadcast()
		}
		s.mu.Unlock()
	}()

	switch c := cmd.(type) {
	case FetchSearch:
		s.dispatch(s.search.Fetch(s.ctx, c.Ticket, c.Term))
	case FetchCategory:
		s.dispatch(s.categories.Refresh(s.ctx, c.Ticket, c.Category))
	case FetchAll:
		s.dispatch(s.categories.LoadAll(s.ctx, c.Ticket))
	}
}

func eventName(ev Event) string {
	switch ev.(type) {
	case RawTermChanged:
		return "raw_term_changed"
	case SettledTermChanged, debounceFired:
		return "settled_term_changed"
	case CategorySelected:
		return "category_selected"
	case RetryRequested:
		return "retry"
	case BulkRequested:
		return "bulk_requested"
	case SearchResult:
		return "search_settled"
	case CategoryResult:
		return "category_settled"
	case BulkResult:
		return "bulk_settled"
	default:
		return "unknown"
	}
}
