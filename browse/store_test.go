package browse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/tmdb"
)

func newTestStore(t *testing.T, catalog *fakeCatalog, opts ...StoreOption) *Store {
	t.Helper()
	opts = append([]StoreOption{WithDebounce(20 * time.Millisecond), WithRequestTimeout(time.Second)}, opts...)
	store := NewStore(catalog, opts...)
	t.Cleanup(store.Close)
	return store
}

func seededCatalog() *fakeCatalog {
	catalog := newFakeCatalog()
	for _, c := range tmdb.Categories() {
		catalog.setCategory(c, movies(c.String()+"-1", c.String()+"-2"), nil)
	}
	return catalog
}

func countCalls(calls []string, key string) int {
	n := 0
	for _, c := range calls {
		if c == key {
			n++
		}
	}
	return n
}

func TestStore_StartLoadsEveryCategory(t *testing.T) {
	catalog := seededCatalog()
	catalog.setCategory(tmdb.NowPlaying, nil, &tmdb.APIError{StatusCode: 503, Endpoint: "/movie/now_playing"})

	store := newTestStore(t, catalog)
	store.Start()
	store.Wait()

	snap := store.Snapshot()
	assert.True(t, snap.CategoriesLoaded)
	assert.Equal(t, ModeCategory, snap.Mode)
	assert.Equal(t, tmdb.Trending, snap.Active)
	assert.Equal(t, []string{"trending-1", "trending-2"}, titles(snap.Displayed))
	assert.False(t, snap.Loading)
	assert.Nil(t, snap.Err)

	require.Len(t, snap.Categories, tmdb.NumCategories)
	assert.Empty(t, snap.Categories[tmdb.NowPlaying])
	require.Contains(t, snap.BulkFailures, tmdb.NowPlaying)
	assert.Equal(t, 503, snap.BulkFailures[tmdb.NowPlaying].StatusCode)
}

func TestStore_DebouncedSearch(t *testing.T) {
	catalog := seededCatalog()
	catalog.setSearch("bat", movies("Batman", "Batman Returns"), nil)

	store := newTestStore(t, catalog, WithDebounce(60*time.Millisecond))
	store.Start()
	store.Wait()

	for _, term := range []string{"b", "ba", "bat"} {
		store.SetRawTerm(term)
	}
	assert.Equal(t, "bat", store.Snapshot().RawTerm)
	assert.Equal(t, ModeCategory, store.Snapshot().Mode, "mode waits for the settled term")

	require.Eventually(t, func() bool {
		snap := store.Snapshot()
		return snap.Mode == ModeSearch && !snap.Loading
	}, time.Second, 5*time.Millisecond)
	store.Wait()

	snap := store.Snapshot()
	assert.Equal(t, "bat", snap.SettledTerm)
	assert.Equal(t, []string{"Batman", "Batman Returns"}, titles(snap.Displayed))

	calls := catalog.Calls()
	assert.Equal(t, 1, countCalls(calls, "search:bat"))
	assert.Zero(t, countCalls(calls, "search:b"))
	assert.Zero(t, countCalls(calls, "search:ba"))
}

func TestStore_LastIssuedWins(t *testing.T) {
	catalog := seededCatalog()
	catalog.setSearch("bat", movies("Bat Thing"), nil)
	catalog.setSearch("batman", movies("Batman Begins"), nil)
	slow := catalog.gate("search:bat")

	store := newTestStore(t, catalog)
	store.Search("bat")
	store.Search("batman")

	require.Eventually(t, func() bool {
		snap := store.Snapshot()
		return snap.SettledTerm == "batman" && !snap.Loading
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"Batman Begins"}, titles(store.Snapshot().Displayed))

	before := store.Snapshot().Revision
	close(slow)
	store.Wait()

	snap := store.Snapshot()
	assert.Equal(t, []string{"Batman Begins"}, titles(snap.Displayed))
	assert.Equal(t, before, snap.Revision, "stale response must not change state")
}

func TestStore_SelectCategoryCancelsPendingSearch(t *testing.T) {
	catalog := seededCatalog()
	catalog.setSearch("bat", movies("Batman"), nil)

	store := newTestStore(t, catalog, WithDebounce(30*time.Millisecond))
	store.Start()
	store.Wait()

	store.SetRawTerm("bat")
	store.SelectCategory(tmdb.TopRated)

	time.Sleep(90 * time.Millisecond)
	store.Wait()

	snap := store.Snapshot()
	assert.Equal(t, ModeCategory, snap.Mode)
	assert.Equal(t, tmdb.TopRated, snap.Active)
	assert.Equal(t, "", snap.RawTerm)
	assert.Equal(t, "", snap.SettledTerm)
	assert.Equal(t, []string{"topRated-1", "topRated-2"}, titles(snap.Displayed))
	assert.Zero(t, countCalls(catalog.Calls(), "search:bat"))
}

func TestStore_RefreshFailureAndRetry(t *testing.T) {
	catalog := seededCatalog()
	catalog.setCategory(tmdb.Upcoming, nil, &tmdb.APIError{StatusCode: 500, Endpoint: "/movie/upcoming"})

	store := newTestStore(t, catalog)
	store.Start()
	store.Wait()

	store.SelectCategory(tmdb.Upcoming)
	store.Wait()

	snap := store.Snapshot()
	require.NotNil(t, snap.Err)
	assert.Equal(t, tmdb.FailureHTTPStatus, snap.Err.Kind)
	assert.Equal(t, "Failed to fetch movies (Status: 500)", snap.Message())
	assert.Empty(t, snap.Displayed)

	catalog.setCategory(tmdb.Upcoming, movies("Dune: Part Three"), nil)
	store.Retry()
	store.Wait()

	snap = store.Snapshot()
	assert.Nil(t, snap.Err)
	assert.Equal(t, []string{"Dune: Part Three"}, titles(snap.Displayed))
	assert.NotContains(t, snap.BulkFailures, tmdb.Upcoming)
}

func TestStore_EmptySearchResult(t *testing.T) {
	catalog := seededCatalog()
	catalog.setSearch("qwertyuiop", []tmdb.Movie{}, nil)

	store := newTestStore(t, catalog)
	store.Search("qwertyuiop")
	store.Wait()

	snap := store.Snapshot()
	assert.Equal(t, ModeSearch, snap.Mode)
	assert.True(t, snap.Empty)
	assert.Nil(t, snap.Err)
	assert.Equal(t, `No movies found for "qwertyuiop"`, snap.Message())
}

func TestStore_RetryTwice(t *testing.T) {
	catalog := seededCatalog()
	catalog.setSearch("alien", movies("Alien"), nil)

	store := newTestStore(t, catalog)
	store.Search("alien")
	store.Wait()

	store.Retry()
	store.Retry()
	store.Wait()

	snap := store.Snapshot()
	assert.Equal(t, []string{"Alien"}, titles(snap.Displayed))
	assert.False(t, snap.Loading)
	assert.Equal(t, 3, countCalls(catalog.Calls(), "search:alien"))
}

func TestStore_FilterNarrowsDisplayed(t *testing.T) {
	catalog := seededCatalog()
	store := newTestStore(t, catalog, WithFilter(titleFilter("trending-2")))
	store.Start()
	store.Wait()

	snap := store.Snapshot()
	assert.Equal(t, []string{"trending-2"}, titles(snap.Displayed))
	assert.Len(t, snap.Categories[tmdb.Trending], 2, "category map is not filtered")
}

func TestStore_FilterRejectingEverythingIsEmpty(t *testing.T) {
	catalog := seededCatalog()
	catalog.setSearch("heat", movies("Heat", "Heat Wave"), nil)

	store := newTestStore(t, catalog, WithFilter(titleFilter("no-such-title")))
	store.Start()
	store.Wait()

	snap := store.Snapshot()
	assert.Equal(t, ModeCategory, snap.Mode)
	assert.Empty(t, snap.Displayed)
	assert.True(t, snap.Empty)
	assert.Equal(t, "No movies found in this category.", snap.Message())

	store.Search("heat")
	store.Wait()

	snap = store.Snapshot()
	assert.Equal(t, ModeSearch, snap.Mode)
	assert.Empty(t, snap.Displayed)
	assert.True(t, snap.Empty)
	assert.Nil(t, snap.Err)
	assert.Equal(t, `No movies found for "heat"`, snap.Message())
}

func TestStore_FilterKeepsFailureMessage(t *testing.T) {
	catalog := seededCatalog()
	catalog.setSearch("heat", nil, &tmdb.APIError{StatusCode: 502, Endpoint: "/search/movie"})

	store := newTestStore(t, catalog, WithFilter(titleFilter("no-such-title")))
	store.Search("heat")
	store.Wait()

	snap := store.Snapshot()
	assert.False(t, snap.Empty)
	assert.Equal(t, "Failed to fetch movies (Status: 502)", snap.Message())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := newTestStore(t, seededCatalog())
	store.Start()
	store.Wait()

	snap := store.Snapshot()
	snap.Displayed[0].Title = "mutated"
	snap.Categories[tmdb.Upcoming][0].Title = "mutated"

	fresh := store.Snapshot()
	assert.Equal(t, "trending-1", fresh.Displayed[0].Title)
	assert.Equal(t, "upcoming-1", fresh.Categories[tmdb.Upcoming][0].Title)
}

func TestStore_UpdatesSignalled(t *testing.T) {
	store := newTestStore(t, seededCatalog())
	store.Start()

	select {
	case <-store.Updates():
	case <-time.After(time.Second):
		t.Fatal("no update signalled")
	}
}

func TestStore_CloseDropsLateResults(t *testing.T) {
	catalog := seededCatalog()
	catalog.gate("search:slow")

	store := NewStore(catalog, WithRequestTimeout(5*time.Second))
	store.Search("slow")
	assert.True(t, store.Snapshot().Loading)

	done := make(chan struct{})
	go func() {
		store.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the in-flight request")
	}

	assert.True(t, store.Snapshot().Loading, "result after close is not applied")
	store.Close()
}

type titleFilter string

func (f titleFilter) Match(m tmdb.Movie) bool {
	return m.Title == string(f)
}
