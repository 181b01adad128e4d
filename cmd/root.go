package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/library"
	"github.com/s0up4200/marquee/tmdb"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	logCloser     io.Closer
	catalog       tmdb.API
	tmdbClient    *tmdb.Client
	libraryIndex  *library.Index
	displayFilter *filter.Filter

	// Command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse and search the TMDB movie catalog from the terminal",
	Long: `marquee fetches movie lists from The Movie Database and lets you browse
the trending, upcoming, top rated, now playing and popular categories or
search the whole catalog. Results can be narrowed with filter expressions
and matched against a Radarr library.`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
	SilenceUsage:       true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to displayed movies")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")

	// Add subcommands
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, logCloser = setupLogger(cfg.Logging)

	// Create TMDB client
	tmdbClient, err = tmdb.NewClient(cfg.TMDB.BaseURL, logger,
		tmdb.WithAccessToken(cfg.TMDB.AccessToken),
		tmdb.WithAPIKey(cfg.TMDB.APIKey),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithRegion(cfg.TMDB.Region),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithUserAgent("marquee/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}
	catalog = tmdbClient

	// Load the Radarr library if enabled
	if cfg.Radarr.Enabled {
		idx, err := library.NewRadarrIndex(cfg.Radarr.URL, cfg.Radarr.APIKey, cfg.Radarr.Timeout, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create Radarr client, continuing without library matching")
		} else if err := idx.Load(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("Failed to load Radarr library, continuing without library matching")
		} else {
			libraryIndex = idx
			logger.Info().Int("movies", idx.Len()).Msg("Radarr integration enabled")
		}
	}

	// Compile the display filter
	expr, err := getFilterExpression()
	if err != nil {
		return err
	}
	if expr != "" {
		opts := []filter.CompilerOption{filter.WithCache(16)}
		if libraryIndex != nil {
			opts = append(opts, filter.WithOwnership(libraryIndex))
		}
		displayFilter, err = filter.NewCompiler(opts...).Compile(expr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Debug().Str("filter", displayFilter.Expression()).Msg("Display filter active")
	}

	return nil
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// skipInit replaces initializeApp for commands that need no configuration
func skipInit(cmd *cobra.Command, args []string) error {
	return nil
}

// newStore creates a browse store wired to the configured catalog
func newStore() *browse.Store {
	opts := []browse.StoreOption{
		browse.WithDebounce(cfg.Browse.Debounce),
		browse.WithRequestTimeout(cfg.Browse.RequestTimeout),
		browse.WithLogger(logger),
	}
	if displayFilter != nil {
		opts = append(opts, browse.WithFilter(displayFilter))
	}
	return browse.NewStore(catalog, opts...)
}

// getFilterExpression determines the filter expression to use. An empty
// result means no filtering.
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Filter.Presets[preset]; ok {
			return presetFilter.Expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.Default, nil
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
