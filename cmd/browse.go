package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/tmdb"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive browsing session",
	Long: `Start an interactive session. Typed lines update the search term and are
searched once typing pauses. An empty line returns to the selected category.

Commands:
  /cat <name>   switch category (trending, upcoming, topRated, nowPlaying, popular)
  /submit       search the current term immediately
  /retry        repeat the last request
  /quit         leave the session`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	store := newStore()
	defer store.Close()

	prompt := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	s := &session{
		store:    store,
		out:      cmd.OutOrStdout(),
		prompt:   prompt,
		featured: cfg.Browse.Featured,
		preview:  cfg.Browse.Preview,
	}
	return s.run(cmd.InOrStdin())
}

// session drives a store from line input. Snapshots are printed when the
// visible result changes and no request is pending.
type session struct {
	store    *browse.Store
	out      io.Writer
	prompt   bool
	featured int
	preview  int

	mu      sync.Mutex
	lastKey string
}

func (s *session) run(in io.Reader) error {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.watch(ctx)
	}()

	s.store.Start()
	err := s.readLoop(in)

	cancel()
	wg.Wait()
	s.store.Wait()
	s.show(s.store.Snapshot())
	return err
}

func (s *session) watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.store.Updates():
			s.show(s.store.Snapshot())
		}
	}
}

func (s *session) readLoop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if s.prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := scanner.Text()
		if !strings.HasPrefix(line, "/") {
			s.store.SetRawTerm(line)
			continue
		}

		name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
		switch name {
		case "quit", "q":
			return nil
		case "submit":
			s.store.Submit()
		case "retry":
			s.store.Retry()
		case "cat":
			category, err := tmdb.ParseCategory(arg)
			if err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			s.store.SelectCategory(category)
		default:
			fmt.Fprintf(s.out, "unknown command /%s\n", name)
		}
	}
}

// show prints snap unless it is loading or already shown
func (s *session) show(snap browse.Snapshot) {
	if snap.Loading {
		return
	}
	if snap.Mode == browse.ModeCategory && !snap.CategoriesLoaded && snap.Err == nil {
		return
	}

	key := viewKey(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	if key == s.lastKey {
		return
	}
	s.lastKey = key
	printSnapshot(s.out, snap, s.featured, s.preview)
}

func viewKey(snap browse.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%d|%s|%s|%d", snap.Mode, snap.Active, snap.SettledTerm, snap.Message(), len(snap.Displayed))
	for _, movie := range snap.Displayed {
		fmt.Fprintf(&b, "|%d", movie.ID)
	}
	return b.String()
}
