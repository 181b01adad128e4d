package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/tmdb"
)

var activeCategory string

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Load and print every category",
	Long: `Load all five category lists concurrently and print the featured movies of
the selected category followed by a preview of the others.`,
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().StringVarP(&activeCategory, "category", "c", tmdb.Trending.String(),
		"category to feature (trending, upcoming, topRated, nowPlaying, popular)")
}

func runCategories(cmd *cobra.Command, args []string) error {
	category, err := tmdb.ParseCategory(activeCategory)
	if err != nil {
		return err
	}

	store := newStore()
	defer store.Close()

	logger.Info().Str("category", category.String()).Msg("Loading categories")

	store.Start()
	store.Wait()
	store.SelectCategory(category)
	store.Wait()

	snap := store.Snapshot()
	for c, failure := range snap.BulkFailures {
		logger.Warn().Str("category", c.String()).Str("error", failure.Error()).Msg("Category failed to load")
	}

	out := cmd.OutOrStdout()
	printSnapshot(out, snap, cfg.Browse.Featured, cfg.Browse.Preview)

	if snap.Err != nil {
		return fmt.Errorf("failed to load %s: %w", category, snap.Err)
	}
	return nil
}
