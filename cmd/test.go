package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/tmdb"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to TMDB",
	Long:  `Test the connection to the TMDB API and, when enabled, to Radarr.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := context.Background()

	fmt.Fprintf(out, "Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)
	if err := tmdbClient.TestConnection(ctx); err != nil {
		var apiErr *tmdb.APIError
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.IsUnauthorized():
				fmt.Fprintln(out, "Hint: check tmdb.access_token or tmdb.api_key")
			case apiErr.IsNotFound():
				fmt.Fprintln(out, "Hint: check tmdb.base_url")
			}
		}
		return fmt.Errorf("TMDB connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	fmt.Fprintf(out, "\nSettings:\n")
	fmt.Fprintf(out, "- Language: %s\n", cfg.TMDB.Language)
	if cfg.TMDB.Region != "" {
		fmt.Fprintf(out, "- Region: %s\n", cfg.TMDB.Region)
	}
	fmt.Fprintf(out, "- Search debounce: %s\n", cfg.Browse.Debounce)
	fmt.Fprintf(out, "- Display filter: %s\n", boolToStatus(displayFilter != nil))

	if !cfg.Radarr.Enabled {
		fmt.Fprintln(out, "\nRadarr integration: Disabled")
		return nil
	}

	fmt.Fprintf(out, "\nTesting connection to Radarr at %s...\n", cfg.Radarr.URL)
	if libraryIndex == nil {
		return fmt.Errorf("radarr is enabled but the library could not be loaded")
	}
	if err := libraryIndex.Ping(); err != nil {
		return err
	}
	fmt.Fprintln(out, "✓ Radarr connection successful!")
	fmt.Fprintf(out, "- Library movies: %d (loaded %s)\n", libraryIndex.Len(), libraryIndex.LoadedAt().Format(time.DateTime))

	return nil
}
