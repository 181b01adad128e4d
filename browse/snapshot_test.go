package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/tmdb"
)

func TestSnapshot_Message(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{
			name: "loading hides everything",
			snap: Snapshot{Loading: true, Empty: true, Err: &tmdb.Failure{Kind: tmdb.FailureTransport}},
			want: "",
		},
		{
			name: "http failure",
			snap: Snapshot{Err: &tmdb.Failure{Kind: tmdb.FailureHTTPStatus, StatusCode: 401}},
			want: "Failed to fetch movies (Status: 401)",
		},
		{
			name: "transport failure",
			snap: Snapshot{Err: &tmdb.Failure{Kind: tmdb.FailureTransport}},
			want: "Error fetching movies. Please try again later...",
		},
		{
			name: "empty search",
			snap: Snapshot{Mode: ModeSearch, SettledTerm: "zzz", Empty: true},
			want: `No movies found for "zzz"`,
		},
		{
			name: "empty category",
			snap: Snapshot{Mode: ModeCategory, Empty: true},
			want: "No movies found in this category.",
		},
		{
			name: "populated",
			snap: Snapshot{Displayed: movies("Heat")},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.Message())
		})
	}
}

func TestSnapshot_FeaturedAndPreviews(t *testing.T) {
	s := loaded(t)
	s.Categories[tmdb.NowPlaying] = []tmdb.Movie{}
	s.Categories[tmdb.Popular] = movies("p1", "p2", "p3", "p4", "p5", "p6")

	snap := newSnapshot(s, nil, 1)

	assert.Len(t, snap.Featured(1), 1)
	assert.Equal(t, snap.Displayed, snap.Featured(0))
	assert.Equal(t, snap.Displayed, snap.Featured(100))

	sections := snap.Previews(4)
	got := make([]tmdb.Category, 0, len(sections))
	for _, section := range sections {
		got = append(got, section.Category)
		assert.LessOrEqual(t, len(section.Movies), 4)
	}
	assert.Equal(t, []tmdb.Category{tmdb.Upcoming, tmdb.TopRated, tmdb.Popular}, got)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, titles(sections[2].Movies))
}

func TestSnapshot_PreviewsEmptyInSearchMode(t *testing.T) {
	s, _ := Reduce(loaded(t), SettledTermChanged{Term: "bat"})
	snap := newSnapshot(s, nil, 2)

	assert.Equal(t, ModeSearch, snap.Mode)
	assert.Nil(t, snap.Previews(4))
}

func TestNewSnapshot_CopiesState(t *testing.T) {
	s := loaded(t)
	failure := &tmdb.Failure{Kind: tmdb.FailureHTTPStatus, StatusCode: 502}
	s.BulkFailures = map[tmdb.Category]*tmdb.Failure{tmdb.Upcoming: failure}

	snap := newSnapshot(s, nil, 9)
	require.Contains(t, snap.BulkFailures, tmdb.Upcoming)
	assert.Equal(t, uint64(9), snap.Revision)

	failure.StatusCode = 999
	snap.Categories[tmdb.Trending][0].Title = "changed"

	assert.Equal(t, 502, snap.BulkFailures[tmdb.Upcoming].StatusCode)
	assert.NotEqual(t, "changed", s.Categories[tmdb.Trending][0].Title)
}
