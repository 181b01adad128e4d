package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/library"
	"github.com/s0up4200/marquee/tmdb"
)

func printMovie(w io.Writer, movie tmdb.Movie) {
	fmt.Fprintf(w, "• %s", movie.Title)
	if year := movie.Year(); year > 0 {
		fmt.Fprintf(w, " (%d)", year)
	}
	if movie.VoteCount > 0 {
		fmt.Fprintf(w, " ★ %.1f", movie.VoteAverage)
	}
	if libraryIndex != nil {
		if entry, ok := libraryIndex.Lookup(movie.ID); ok {
			fmt.Fprintf(w, " [%s]", libraryTag(entry))
		}
	}
	fmt.Fprintln(w)
}

// libraryTag describes an owned movie's state in Radarr
func libraryTag(entry library.Entry) string {
	switch {
	case entry.HasFile:
		return "IN LIBRARY"
	case entry.Monitored:
		return "IN LIBRARY, wanted"
	default:
		return "IN LIBRARY, no file"
	}
}

func printMovies(w io.Writer, movies []tmdb.Movie) {
	for _, movie := range movies {
		printMovie(w, movie)
	}
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title)
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

func movieCount(n int) string {
	if n == 1 {
		return "Found 1 movie"
	}
	return fmt.Sprintf("Found %d movies", n)
}

// printSnapshot renders the displayed list, or the message that replaces it
func printSnapshot(w io.Writer, snap browse.Snapshot, featured, preview int) {
	if snap.Mode == browse.ModeSearch {
		heading(w, fmt.Sprintf("Results for %q", snap.SettledTerm))
		if msg := snap.Message(); msg != "" {
			fmt.Fprintln(w, msg)
			return
		}
		fmt.Fprintln(w, movieCount(len(snap.Displayed)))
		printMovies(w, snap.Displayed)
		return
	}

	heading(w, snap.Active.Title())
	if msg := snap.Message(); msg != "" {
		fmt.Fprintln(w, msg)
	} else {
		printMovies(w, snap.Featured(featured))
	}

	for _, section := range snap.Previews(preview) {
		heading(w, section.Category.Title())
		printMovies(w, section.Movies)
	}
}
