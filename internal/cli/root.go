// Package cli provides the voxvault command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/birkelund/voxvault/internal/config"
)

// Version is the release version, overridden at build time via
// -ldflags "-X github.com/birkelund/voxvault/internal/cli.Version=...".
var Version = "0.1.0-dev"

var (
	// Persistent flags.
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string

	// Populated by PersistentPreRunE for all commands except version
	// and help.
	cfg        *config.Config
	logLevel   *slog.LevelVar
	logCleanup func() error
)

var rootCmd = &cobra.Command{
	Use:   "voxvault",
	Short: "Voice journal for your markdown vault",
	Long: `Voxvault turns voice recordings into structured journal notes.

A recording is transcribed locally (or via a configured service), the
transcript is cleaned and annotated with topics, dates and a mood
estimate, and the result is written as a dated markdown note into your
vault, cross-linked to the previous days' entries.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		path := flagConfig
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded

		// Flag overrides beat the config file.
		if flagLogLevel != "" {
			cfg.Logging.Level = config.LogLevel(flagLogLevel)
			if !cfg.Logging.Level.IsValid() {
				return fmt.Errorf("invalid --log-level %q", flagLogLevel)
			}
		}
		if flagLogFormat != "" {
			cfg.Logging.Format = config.LogFormat(flagLogFormat)
			if !cfg.Logging.Format.IsValid() {
				return fmt.Errorf("invalid --log-format %q", flagLogFormat)
			}
		}

		logger, level, cleanup, err := config.SetupLogger(cfg.Logging)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		logLevel = level
		logCleanup = cleanup

		slog.Debug("config loaded", "path", path, "vault", cfg.Vault.Path)
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: closing log file: %v\n", err)
			}
		}
	},
}

// Execute runs the root command. It returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to the YAML config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "override log format (text|json)")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(versionCmd)
}
