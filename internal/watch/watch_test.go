package watch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/birkelund/voxvault/internal/config"
	"github.com/birkelund/voxvault/internal/journal"
	"github.com/birkelund/voxvault/internal/watch"
)

// fakeProcessor records processed paths and optionally fails.
type fakeProcessor struct {
	mu        sync.Mutex
	processed []string
	err       error
	done      chan string
}

func newFakeProcessor(err error) *fakeProcessor {
	return &fakeProcessor{err: err, done: make(chan string, 8)}
}

func (f *fakeProcessor) ProcessFile(_ context.Context, path string) (*journal.Result, error) {
	f.mu.Lock()
	f.processed = append(f.processed, path)
	f.mu.Unlock()
	f.done <- path
	if f.err != nil {
		return nil, f.err
	}
	return &journal.Result{
		NotePath: "/vault/diary/2024-03-10.md",
		DateKey:  "2024-03-10",
	}, nil
}

func (f *fakeProcessor) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.processed...)
}

func watchConfig(folder string) config.WatchConfig {
	return config.WatchConfig{
		Folder:        folder,
		Settle:        config.Duration(50 * time.Millisecond),
		MoveProcessed: true,
	}
}

// runDaemon starts d in the background and returns a stop function that
// cancels it and waits for Run to return.
func runDaemon(t *testing.T, d *watch.Daemon) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("daemon did not stop")
		}
	}
}

func waitProcessed(t *testing.T, p *fakeProcessor) string {
	t.Helper()
	select {
	case path := <-p.done:
		return path
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for processing")
		return ""
	}
}

// waitMoved polls until path exists or the deadline passes.
func waitMoved(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("file never appeared at %s", path)
}

func TestDaemon_ProcessesPreexistingRecording(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "memo.wav")
	if err := os.WriteFile(src, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	proc := newFakeProcessor(nil)
	d, err := watch.New(watchConfig(dir), proc)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runDaemon(t, d)
	defer stop()

	if got := waitProcessed(t, proc); got != src {
		t.Errorf("processed %q, want %q", got, src)
	}
	waitMoved(t, filepath.Join(dir, "done", "memo.wav"))
}

func TestDaemon_PicksUpDroppedRecording(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	proc := newFakeProcessor(nil)
	d, err := watch.New(watchConfig(dir), proc)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runDaemon(t, d)
	defer stop()

	// Give the watcher a moment to arm before dropping the file.
	time.Sleep(100 * time.Millisecond)
	src := filepath.Join(dir, "evening.m4a")
	if err := os.WriteFile(src, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := waitProcessed(t, proc); got != src {
		t.Errorf("processed %q, want %q", got, src)
	}
}

func TestDaemon_MovesFailedRecordingAside(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(src, []byte("not really audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	proc := newFakeProcessor(errors.New("decode failed"))
	d, err := watch.New(watchConfig(dir), proc)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runDaemon(t, d)
	defer stop()

	waitProcessed(t, proc)
	waitMoved(t, filepath.Join(dir, "failed", "broken.wav"))
}

func TestDaemon_IgnoresNonAudioFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	proc := newFakeProcessor(nil)
	d, err := watch.New(watchConfig(dir), proc)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runDaemon(t, d)
	defer stop()

	time.Sleep(300 * time.Millisecond)
	if calls := proc.calls(); len(calls) != 0 {
		t.Errorf("processed %v, want none", calls)
	}
}

func TestNew_RequiresFolderAndProcessor(t *testing.T) {
	t.Parallel()

	if _, err := watch.New(config.WatchConfig{}, newFakeProcessor(nil)); err == nil {
		t.Error("New() without folder should fail")
	}
	if _, err := watch.New(watchConfig(t.TempDir()), nil); err == nil {
		t.Error("New() without processor should fail")
	}
}
