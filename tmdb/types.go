package tmdb

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Category identifies one of the fixed browsing lists offered by the catalog
type Category int

const (
	// Trending is the weekly trending list
	Trending Category = iota
	// Upcoming lists movies about to be released
	Upcoming
	// TopRated lists the highest rated movies
	TopRated
	// NowPlaying lists movies currently in theatres
	NowPlaying
	// Popular is discovery sorted by popularity
	Popular

	numCategories
)

// NumCategories is the size of the closed category set
const NumCategories = int(numCategories)

var categoryNames = [NumCategories]string{
	Trending:   "trending",
	Upcoming:   "upcoming",
	TopRated:   "topRated",
	NowPlaying: "nowPlaying",
	Popular:    "popular",
}

var categoryTitles = [NumCategories]string{
	Trending:   "Trending Now",
	Upcoming:   "Coming Soon",
	TopRated:   "Top Rated",
	NowPlaying: "Now Playing",
	Popular:    "Popular Movies",
}

// Categories returns every category in iteration order
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// String returns the canonical name of the category
func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryNames[c]
}

// Title returns the display heading for the category
func (c Category) Title() string {
	if !c.Valid() {
		return "Movies"
	}
	return categoryTitles[c]
}

// Valid reports whether c is a member of the closed set
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

// ParseCategory resolves a category by name. Both camelCase and snake_case
// spellings are accepted.
func ParseCategory(name string) (Category, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
	for i, n := range categoryNames {
		if strings.ToLower(n) == key {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
}

// endpoint describes the catalog path backing a category
type endpoint struct {
	path   string
	params url.Values
}

var categoryEndpoints = map[Category]endpoint{
	Trending:   {path: "/trending/movie/week"},
	Upcoming:   {path: "/movie/upcoming"},
	TopRated:   {path: "/movie/top_rated"},
	NowPlaying: {path: "/movie/now_playing"},
	Popular:    {path: "/discover/movie", params: url.Values{"sort_by": {"popularity.desc"}}},
}

const searchPath = "/search/movie"

// Movie is a single catalog record. Values are treated as immutable once
// received.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview,omitempty"`
	Adult            bool    `json:"adult"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
}

// Year returns the release year, or 0 when the release date is unknown
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// ImageBaseURL is the TMDB image CDN prefix
const ImageBaseURL = "https://image.tmdb.org/t/p/"

// PosterURL builds an absolute poster URL for the given size (e.g. "w500").
// It returns an empty string when the movie has no poster.
func (m Movie) PosterURL(size string) string {
	if m.PosterPath == "" {
		return ""
	}
	if size == "" {
		size = "w500"
	}
	return ImageBaseURL + size + m.PosterPath
}

// ListResponse is the envelope returned by every list endpoint
type ListResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}
