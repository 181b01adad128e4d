package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the catalog by title",
	Long:  `Search the whole catalog for movies matching the given term.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := strings.TrimSpace(strings.Join(args, " "))
	if term == "" {
		return fmt.Errorf("search term cannot be empty")
	}

	store := newStore()
	defer store.Close()

	logger.Info().Str("term", term).Msg("Searching movies")

	store.Search(term)
	store.Wait()

	snap := store.Snapshot()
	printSnapshot(cmd.OutOrStdout(), snap, cfg.Browse.Featured, cfg.Browse.Preview)

	if snap.Err != nil {
		return fmt.Errorf("search failed: %w", snap.Err)
	}
	return nil
}
