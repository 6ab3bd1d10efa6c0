package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"svw.info/gridsolve/internal/config"
)

var (
	cfg      *config.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "gridsolve",
	Short: "Constraint-based solver for Sudoku-family grid puzzles",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		lvl := logLevel
		if lvl == "" {
			lvl = cfg.LogLevel
		}
		zerolog.SetGlobalLevel(parseLevel(lvl))
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides env)")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
