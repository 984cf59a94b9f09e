// Package watch runs the drop-folder daemon: new recordings placed in
// a watched directory are picked up, stability-checked, and fed through
// the journal pipeline one at a time.
//
// Processing is deliberately sequential. CreateNote has last-writer-wins
// semantics for same-day notes, so a single worker is the serialisation
// point the vault contract asks callers to provide.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/birkelund/voxvault/internal/config"
	"github.com/birkelund/voxvault/internal/journal"
	"github.com/birkelund/voxvault/internal/observe"
)

// queueSize bounds the number of files waiting for the worker. A human
// dropping voice memos never gets close; a bulk import that does will
// block the watcher goroutine until the worker catches up.
const queueSize = 64

// settlePollInterval is how often a candidate file's size is re-checked
// while waiting for it to stop growing.
const settlePollInterval = 250 * time.Millisecond

// audioExtensions lists the recording formats picked up from the drop
// folder, lowercase with leading dot.
var audioExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
	".m4a": true,
}

// Processor is the journal surface the daemon needs. *journal.Journal
// implements it; tests substitute fakes.
type Processor interface {
	ProcessFile(ctx context.Context, audioPath string) (*journal.Result, error)
}

// Daemon watches a drop folder and processes new recordings.
type Daemon struct {
	cfg       config.WatchConfig
	processor Processor
	metrics   *observe.Metrics

	mu       sync.Mutex
	inFlight map[string]bool
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithMetrics injects a metrics instance instead of the package default.
func WithMetrics(m *observe.Metrics) Option {
	return func(d *Daemon) { d.metrics = m }
}

// New creates a Daemon over cfg. The drop folder must be configured;
// it is created if missing.
func New(cfg config.WatchConfig, processor Processor, opts ...Option) (*Daemon, error) {
	if cfg.Folder == "" {
		return nil, errors.New("watch: no drop folder configured")
	}
	if processor == nil {
		return nil, errors.New("watch: processor must not be nil")
	}
	if err := os.MkdirAll(cfg.Folder, 0o755); err != nil {
		return nil, fmt.Errorf("watch: create drop folder: %w", err)
	}
	d := &Daemon{
		cfg:       cfg,
		processor: processor,
		inFlight:  make(map[string]bool),
	}
	for _, o := range opts {
		o(d)
	}
	if d.metrics == nil {
		d.metrics = observe.DefaultMetrics()
	}
	return d, nil
}

// Run watches the drop folder until ctx is cancelled. Files already
// present at startup are processed first, then filesystem events drive
// the queue. Returns nil on clean shutdown.
func (d *Daemon) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(d.cfg.Folder); err != nil {
		return fmt.Errorf("watch: watch %s: %w", d.cfg.Folder, err)
	}

	queue := make(chan string, queueSize)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.worker(gctx, queue)
	})
	g.Go(func() error {
		defer close(queue)
		if err := d.scanExisting(gctx, queue); err != nil {
			return err
		}
		return d.watchLoop(gctx, watcher, queue)
	})

	slog.Info("watch: daemon running",
		"folder", d.cfg.Folder,
		"settle", d.cfg.Settle.Std(),
		"move_processed", d.cfg.MoveProcessed,
	)

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// scanExisting enqueues recordings that were dropped while the daemon
// was not running.
func (d *Daemon) scanExisting(ctx context.Context, queue chan<- string) error {
	entries, err := os.ReadDir(d.cfg.Folder)
	if err != nil {
		return fmt.Errorf("watch: scan drop folder: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !isRecording(e.Name()) {
			continue
		}
		if err := d.enqueue(ctx, queue, filepath.Join(d.cfg.Folder, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// watchLoop turns filesystem events into queue entries until ctx ends.
func (d *Daemon) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, queue chan<- string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watch: events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isRecording(event.Name) {
				continue
			}
			if err := d.enqueue(ctx, queue, event.Name); err != nil {
				return err
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watch: errors channel closed")
			}
			slog.Error("watch: watcher error", "error", werr)
		}
	}
}

// enqueue adds path to the queue unless it is already queued or being
// processed. Create followed by Write events for the same file collapse
// into one job.
func (d *Daemon) enqueue(ctx context.Context, queue chan<- string, path string) error {
	d.mu.Lock()
	if d.inFlight[path] {
		d.mu.Unlock()
		return nil
	}
	d.inFlight[path] = true
	d.mu.Unlock()

	select {
	case queue <- path:
		d.metrics.QueueDepth.Add(ctx, 1)
		slog.Debug("watch: queued recording", "file", filepath.Base(path))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// worker drains the queue sequentially. Each file settles, processes,
// and is moved aside; a failure never stops the daemon.
func (d *Daemon) worker(ctx context.Context, queue <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-queue:
			if !ok {
				return nil
			}
			d.metrics.QueueDepth.Add(ctx, -1)
			d.handle(ctx, path)
		}
	}
}

// handle processes one dropped recording end to end.
func (d *Daemon) handle(ctx context.Context, path string) {
	defer func() {
		d.mu.Lock()
		delete(d.inFlight, path)
		d.mu.Unlock()
	}()

	settled, err := d.waitSettled(ctx, path)
	if err != nil {
		slog.Warn("watch: settle check failed", "file", filepath.Base(path), "error", err)
		return
	}
	if !settled {
		// File vanished before it settled; nothing to process.
		return
	}

	res, err := d.processor.ProcessFile(ctx, path)
	if err != nil {
		slog.Error("watch: processing failed", "file", filepath.Base(path), "error", err)
		d.moveAside(path, "failed")
		return
	}

	slog.Info("watch: recording processed",
		"file", filepath.Base(path),
		"note", res.NotePath,
		"date", res.DateKey,
	)
	if !res.SourceDeleted {
		d.moveAside(path, "done")
	}
}

// waitSettled blocks until the file's size is stable across the settle
// window, meaning the producer has finished writing it. Reports false
// without error when the file disappeared.
func (d *Daemon) waitSettled(ctx context.Context, path string) (bool, error) {
	settle := d.cfg.Settle.Std()
	if settle <= 0 {
		settle = 2 * time.Second
	}

	var (
		lastSize   int64 = -1
		stableFor  time.Duration
		pollTicker = time.NewTicker(settlePollInterval)
	)
	defer pollTicker.Stop()

	for {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, err
		}

		if info.Size() == lastSize {
			stableFor += settlePollInterval
			if stableFor >= settle {
				return true, nil
			}
		} else {
			lastSize = info.Size()
			stableFor = 0
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-pollTicker.C:
		}
	}
}

// moveAside relocates a handled file into the named subfolder when
// move_processed is enabled. Best effort: a failed move leaves the file
// in place and is only logged, because the note (if any) already exists.
func (d *Daemon) moveAside(path, subfolder string) {
	if !d.cfg.MoveProcessed {
		return
	}
	destDir := filepath.Join(d.cfg.Folder, subfolder)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		slog.Warn("watch: create subfolder failed", "dir", destDir, "error", err)
		return
	}
	dest := filepath.Join(destDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		slog.Warn("watch: move failed", "from", path, "to", dest, "error", err)
	}
}

// isRecording reports whether the filename has a recognised recording
// extension. Files inside done/ and failed/ never match because events
// for them carry the subfolder in the path and the watcher is not
// recursive.
func isRecording(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}
