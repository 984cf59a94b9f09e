// Package retention deletes archived audio that has outlived the
// configured retention window. It only ever touches files under the
// vault's attachments folder matching the diary artifact naming
// pattern; notes are never candidates.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// artifactPattern matches archived recordings by their naming scheme.
// Anything else in the attachments tree is left alone.
const artifactPattern = "**/diary_*"

// Report summarises one cleanup run.
type Report struct {
	// Scanned is the number of artifacts that matched the pattern.
	Scanned int

	// Deleted lists the removed files, relative to the attachments
	// folder. In dry-run mode these are the files that would have been
	// removed.
	Deleted []string

	// FreedBytes is the total size of the deleted files.
	FreedBytes int64

	// Skipped counts artifacts still inside the retention window.
	Skipped int
}

// Cleaner removes expired audio artifacts.
type Cleaner struct {
	dir           string
	retentionDays int
	now           func() time.Time
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithClock overrides the time source. Tests use it to age files
// deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Cleaner) { c.now = now }
}

// New creates a Cleaner over the given attachments directory.
// retentionDays bounds how long artifacts are kept; 0 disables deletion
// entirely (keep forever).
func New(attachmentsDir string, retentionDays int, opts ...Option) (*Cleaner, error) {
	if attachmentsDir == "" {
		return nil, fmt.Errorf("retention: attachments directory must not be empty")
	}
	if retentionDays < 0 {
		return nil, fmt.Errorf("retention: retention days must not be negative, got %d", retentionDays)
	}
	c := &Cleaner{dir: attachmentsDir, retentionDays: retentionDays, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Clean walks the attachments folder and removes artifacts whose
// modification time is older than the retention window. With dryRun set
// nothing is deleted; the report lists what a real run would remove.
// A missing attachments folder is not an error: there is nothing to
// clean.
func (c *Cleaner) Clean(ctx context.Context, dryRun bool) (*Report, error) {
	report := &Report{}

	if c.retentionDays == 0 {
		slog.Debug("retention: disabled, keeping artifacts forever")
		return report, nil
	}
	if _, err := os.Stat(c.dir); err != nil {
		if os.IsNotExist(err) {
			return report, nil
		}
		return nil, fmt.Errorf("retention: stat %s: %w", c.dir, err)
	}

	cutoff := c.now().AddDate(0, 0, -c.retentionDays)

	root := os.DirFS(c.dir)
	matches, err := doublestar.Glob(root, artifactPattern)
	if err != nil {
		return nil, fmt.Errorf("retention: glob %s: %w", c.dir, err)
	}

	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		full := filepath.Join(c.dir, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil {
			// Raced with an external delete; nothing to do.
			if os.IsNotExist(err) {
				continue
			}
			return report, fmt.Errorf("retention: stat %s: %w", full, err)
		}
		if info.IsDir() {
			continue
		}

		report.Scanned++
		if !info.ModTime().Before(cutoff) {
			report.Skipped++
			continue
		}

		if !dryRun {
			if err := os.Remove(full); err != nil {
				return report, fmt.Errorf("retention: remove %s: %w", full, err)
			}
		}
		report.Deleted = append(report.Deleted, rel)
		report.FreedBytes += info.Size()
		slog.Debug("retention: expired artifact",
			"file", rel,
			"age_days", int(c.now().Sub(info.ModTime()).Hours()/24),
			"dry_run", dryRun,
		)
	}

	slog.Info("retention: cleanup finished",
		"scanned", report.Scanned,
		"deleted", len(report.Deleted),
		"freed_bytes", report.FreedBytes,
		"dry_run", dryRun,
	)
	return report, nil
}
