// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mediagrab/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagJSON      bool
	flagDebug     bool
	flagTimeout   time.Duration
	flagCreator   string
	flagNoHistory bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

// logger writes human-readable events to stderr.
var logger = zerolog.Nop()

// errExtractionFailed marks a run whose envelope was printed with status
// false. Execute exits 1 without printing it again.
var errExtractionFailed = errors.New("extraction failed")

var rootCmd = &cobra.Command{
	Use:   "mediagrab [url]",
	Short: "Resolve direct media links for social and file-hosting URLs",
	Long: `mediagrab asks public downloader services for the direct media links
behind a TikTok, Facebook, Instagram, YouTube or sfile.mobi URL and prints
them as a JSON envelope. The provider is picked from the URL unless a
subcommand names one.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              detectRun,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errExtractionFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Print the raw JSON envelope even on a terminal")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout (default from config, 30s)")
	rootCmd.PersistentFlags().StringVar(&flagCreator, "creator", "", "Creator tag stamped on the envelope")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Do not record this run in the history")

	for _, cmd := range extractorCommands() {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < env < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagTimeout > 0 {
		cfg.Timeout.Duration = flagTimeout
	}
	if flagCreator != "" {
		cfg.Creator = flagCreator
	}
	if flagNoHistory {
		cfg.History = false
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(cfg.Level()).
		With().Timestamp().Logger()

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "mediagrab", Version)
	},
}
