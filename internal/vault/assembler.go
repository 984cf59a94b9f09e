package vault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"
	"time"
)

// Assembler writes enriched entries into a vault as date-keyed notes.
// It is stateless between calls apart from the vault directory itself
// and provides no locking: concurrent same-day calls end with the last
// writer's note.
type Assembler struct {
	vaultPath    string
	diaryFolder  string
	attachments  string
	templateText string
	tmpl         *template.Template
	now          func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithDiaryFolder sets the diary subdirectory name (default "diary").
func WithDiaryFolder(name string) Option {
	return func(a *Assembler) {
		a.diaryFolder = name
	}
}

// WithAttachmentsFolder sets the vault-relative audio archive directory
// (default "attachments/audio").
func WithAttachmentsFolder(rel string) Option {
	return func(a *Assembler) {
		a.attachments = rel
	}
}

// WithTemplate replaces the built-in note template.
func WithTemplate(text string) Option {
	return func(a *Assembler) {
		a.templateText = text
	}
}

// WithClock overrides the clock that keys notes and names audio
// artifacts. Tests use this.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		a.now = now
	}
}

// New builds an Assembler rooted at vaultPath. The note template is
// parsed here so a broken custom template is a startup error.
func New(vaultPath string, opts ...Option) (*Assembler, error) {
	if vaultPath == "" {
		return nil, errors.New("vault: path must not be empty")
	}
	a := &Assembler{
		vaultPath:    vaultPath,
		diaryFolder:  "diary",
		attachments:  filepath.Join("attachments", "audio"),
		templateText: DefaultTemplate,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	tmpl, err := template.New("note").Parse(a.templateText)
	if err != nil {
		return nil, fmt.Errorf("vault: parse note template: %w", err)
	}
	a.tmpl = tmpl
	return a, nil
}

// CreateNote renders and writes the note for the current calendar day,
// archiving the source audio when one is supplied. A same-day note is
// overwritten. A failed audio copy does not abort the note; it is
// reported through [NoteResult.ArtifactErr].
func (a *Assembler) CreateNote(ctx context.Context, req CreateRequest) (*NoteResult, error) {
	if req.Entry == nil {
		return nil, errors.New("vault: entry must not be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := a.now()
	key := now.Format(dateKeyLayout)
	diaryDir := a.diaryDir()
	if err := os.MkdirAll(diaryDir, 0o755); err != nil {
		return nil, &StorageError{Path: diaryDir, Err: err}
	}

	related := a.relatedKeys(now)

	var (
		audioName   string
		artifactErr error
	)
	if req.AudioPath != "" {
		audioName, artifactErr = a.archiveAudio(req.AudioPath, now)
		if artifactErr != nil {
			slog.Warn("vault: audio archive failed, writing note without it",
				"src", req.AudioPath, "err", artifactErr)
		}
	}

	var body bytes.Buffer
	if err := a.tmpl.Execute(&body, a.templateFields(req, key, now, related, audioName)); err != nil {
		return nil, fmt.Errorf("vault: render note: %w", err)
	}

	notePath := filepath.Join(diaryDir, key+".md")
	if err := writeFileAtomic(notePath, body.Bytes(), 0o644); err != nil {
		return nil, &StorageError{Path: notePath, Err: err}
	}

	slog.Info("vault: note written",
		"path", notePath,
		"related", len(related),
		"audio", audioName != "",
		"words", req.Entry.Stats.WordCount,
	)
	return &NoteResult{
		NotePath:    notePath,
		DateKey:     key,
		AudioFile:   audioName,
		RelatedKeys: related,
		ArtifactErr: artifactErr,
	}, nil
}

func (a *Assembler) diaryDir() string {
	return filepath.Join(a.vaultPath, a.diaryFolder)
}

// archiveAudio copies the source recording into the attachments folder
// under a millisecond-epoch name. Collisions within the same
// millisecond are accepted as negligible, not prevented.
func (a *Assembler) archiveAudio(src string, now time.Time) (string, error) {
	dir := filepath.Join(a.vaultPath, a.attachments)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &ArtifactCopyError{Source: src, Dest: dir, Err: err}
	}
	name := fmt.Sprintf("diary_%d%s", now.UnixMilli(), filepath.Ext(src))
	dest := filepath.Join(dir, name)
	if err := copyFile(src, dest); err != nil {
		return "", &ArtifactCopyError{Source: src, Dest: dest, Err: err}
	}
	return name, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
