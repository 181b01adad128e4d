package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/marquee/config"
)

// parseLevel maps a config level name onto zerolog, defaulting to info
func parseLevel(name string) zerolog.Level {
	switch strings.ToLower(name) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// setupLogger configures the zerolog logger. The returned closer releases
// the log file and is nil when no file is configured.
func setupLogger(cfg config.LoggingConfig) (zerolog.Logger, io.Closer) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var console io.Writer = os.Stderr
	if cfg.Format != "json" {
		color := cfg.Color && (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
		console = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !color,
		}
	}

	if cfg.File == "" {
		return zerolog.New(console).With().Timestamp().Logger(), nil
	}

	// the file always receives JSON so it stays machine readable
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	return zerolog.New(zerolog.MultiLevelWriter(console, rotator)).With().Timestamp().Logger(), rotator
}
