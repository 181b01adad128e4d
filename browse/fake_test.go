package browse

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/s0up4200/marquee/tmdb"
)

type fakeResponse struct {
	movies []tmdb.Movie
	err    error
}

// fakeCatalog serves canned responses. A request whose key has a gate
// blocks until the gate is closed or the context ends.
type fakeCatalog struct {
	mu       sync.Mutex
	search   map[string]fakeResponse
	category map[tmdb.Category]fakeResponse
	gates    map[string]chan struct{}
	calls    []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		search:   make(map[string]fakeResponse),
		category: make(map[tmdb.Category]fakeResponse),
		gates:    make(map[string]chan struct{}),
	}
}

func (f *fakeCatalog) setSearch(term string, movies []tmdb.Movie, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.search[term] = fakeResponse{movies: movies, err: err}
}

func (f *fakeCatalog) setCategory(c tmdb.Category, movies []tmdb.Movie, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.category[c] = fakeResponse{movies: movies, err: err}
}

func (f *fakeCatalog) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[key] = ch
	return ch
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCatalog) Search(ctx context.Context, term string) ([]tmdb.Movie, error) {
	key := "search:" + term
	f.mu.Lock()
	f.calls = append(f.calls, key)
	resp := f.search[term]
	gate := f.gates[key]
	f.mu.Unlock()

	return f.wait(ctx, gate, resp)
}

func (f *fakeCatalog) Category(ctx context.Context, c tmdb.Category) ([]tmdb.Movie, error) {
	key := "category:" + c.String()
	f.mu.Lock()
	f.calls = append(f.calls, key)
	resp := f.category[c]
	gate := f.gates[key]
	f.mu.Unlock()

	return f.wait(ctx, gate, resp)
}

func (f *fakeCatalog) wait(ctx context.Context, gate chan struct{}, resp fakeResponse) ([]tmdb.Movie, error) {
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp.movies, resp.err
}

// movies builds records with stable IDs derived from their titles
func movies(titles ...string) []tmdb.Movie {
	out := make([]tmdb.Movie, 0, len(titles))
	for _, title := range titles {
		h := fnv.New32a()
		h.Write([]byte(title))
		out = append(out, tmdb.Movie{ID: int64(h.Sum32()), Title: title})
	}
	return out
}

func titles(list []tmdb.Movie) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, m.Title)
	}
	return out
}
