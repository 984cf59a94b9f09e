package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/birkelund/voxvault/internal/config"
	"github.com/birkelund/voxvault/internal/health"
	"github.com/birkelund/voxvault/internal/journal"
	"github.com/birkelund/voxvault/internal/observe"
	"github.com/birkelund/voxvault/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a drop folder and journal new recordings",
	Long: `Watch runs as a daemon: audio files placed into the configured drop
folder are processed sequentially into journal notes. When an HTTP
address is configured the daemon also serves Prometheus metrics and
health probes. The config file is polled for changes; log level
adjustments apply without a restart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Watch.Folder == "" {
			return errors.New("watch.folder is not configured")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
			ServiceVersion: Version,
		})
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer func() {
			if err := shutdown(cmd.Context()); err != nil {
				slog.Warn("telemetry shutdown", "error", err)
			}
		}()

		metrics, err := observe.NewMetrics(otel.GetMeterProvider())
		if err != nil {
			return err
		}

		provider, err := newProvider(cfg)
		if err != nil {
			return err
		}
		defer closeProvider(provider)

		j, err := journal.New(cfg, provider, journal.WithMetrics(metrics))
		if err != nil {
			return err
		}
		defer j.Close()

		daemon, err := watch.New(cfg.Watch, j, watch.WithMetrics(metrics))
		if err != nil {
			return err
		}

		// Hot reload: only the log level is safe to apply live; the
		// diff reports everything else so the operator knows a restart
		// is needed.
		watcher, err := config.NewWatcher(configPath(), func(old, new *config.Config) {
			applyReload(old, new)
		})
		if err != nil {
			slog.Warn("config hot reload disabled", "error", err)
		} else {
			defer watcher.Stop()
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return daemon.Run(gctx) })

		if cfg.Watch.HTTPAddr != "" {
			server := watch.NewServer(cfg.Watch.HTTPAddr, metrics,
				health.PathWritable("vault", cfg.Vault.Path),
				health.PathWritable("drop_folder", cfg.Watch.Folder),
			)
			g.Go(func() error { return server.Run(gctx) })
		}

		slog.Info("voxvault watch daemon ready", "version", Version)
		return g.Wait()
	},
}

// configPath resolves the effective config file path for the hot
// reload watcher.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	path, err := config.DefaultPath()
	if err != nil {
		return ""
	}
	return path
}

// applyReload handles a config file change while the daemon runs.
func applyReload(old, new *config.Config) {
	diff := config.Diff(old, new)
	if diff.LogLevelChanged && logLevel != nil {
		logLevel.Set(levelFor(diff.NewLogLevel))
		slog.Info("log level changed", "level", diff.NewLogLevel)
	}
	if diff.AmbientChanged || diff.EnrichmentChanged {
		// The journal snapshots these at construction.
		slog.Warn("ambient/enrichment changes apply after restart")
	}
	for _, section := range diff.RequiresRestart {
		slog.Warn("config change requires restart to take effect", "section", section)
	}
}

// levelFor maps the config enum to slog.Level. Mirrors the mapping in
// config.SetupLogger.
func levelFor(l config.LogLevel) slog.Level {
	switch l {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// attachmentsDir resolves the absolute attachments folder from config.
func attachmentsDir(cfg *config.Config) string {
	return filepath.Join(cfg.Vault.Path, cfg.Vault.AttachmentsFolder)
}
