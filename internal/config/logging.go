package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// slogLevel maps the config enum to a slog.Level.
func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger builds the process logger from cfg: a human-readable
// handler on stderr plus, when cfg.File is set, a JSON copy fanned out
// to that file. The returned LevelVar adjusts verbosity live (the watch
// daemon applies reloaded log levels through it); the cleanup function
// closes the file sink.
func SetupLogger(cfg LoggingConfig) (*slog.Logger, *slog.LevelVar, func() error, error) {
	level := new(slog.LevelVar)
	level.Set(cfg.Level.slogLevel())

	stderrHandler := newHandler(os.Stderr, cfg.Format, level)

	if cfg.File == "" {
		return slog.New(stderrHandler), level, func() error { return nil }, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config: open log file: %w", err)
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})

	logger := slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
	return logger, level, file.Close, nil
}

// newHandler builds a single slog handler for the given format.
func newHandler(w io.Writer, format LogFormat, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == LogJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
