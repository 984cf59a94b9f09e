package journal_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/birkelund/voxvault/internal/config"
	"github.com/birkelund/voxvault/internal/enrich"
	"github.com/birkelund/voxvault/internal/journal"
	"github.com/birkelund/voxvault/internal/nlp"
	"github.com/birkelund/voxvault/internal/vault"
	"github.com/birkelund/voxvault/internal/vocab"
	"github.com/birkelund/voxvault/pkg/audio"
	"github.com/birkelund/voxvault/pkg/provider/stt"
	"github.com/birkelund/voxvault/pkg/provider/stt/mock"
)

// fakeTagger returns scripted entities and noun chunks.
type fakeTagger struct {
	ents   []nlp.Entity
	chunks []string
}

func (f *fakeTagger) Entities(string) ([]nlp.Entity, error) { return f.ents, nil }
func (f *fakeTagger) NounChunks(string) ([]string, error)   { return f.chunks, nil }

// fakeResolver never resolves anything.
type fakeResolver struct{}

func (fakeResolver) Resolve(string, time.Time) (time.Time, bool) {
	return time.Time{}, false
}

var testClock = func() time.Time {
	return time.Date(2024, time.March, 10, 8, 30, 0, 0, time.UTC)
}

// newJournal builds a Journal over a temp vault with fake NLP
// collaborators, so no models load and no real provider runs.
func newJournal(t *testing.T, p stt.Provider, opts ...journal.Option) (*journal.Journal, *config.Config) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Vault.Path = t.TempDir()
	cfg.Vault.DiaryFolder = "diary"
	cfg.Vault.AttachmentsFolder = "attachments/audio"
	cfg.Transcription.Language = "en"

	splitter, err := nlp.NewPunktSplitter()
	if err != nil {
		t.Fatalf("NewPunktSplitter() error = %v", err)
	}
	pipeline := enrich.NewPipeline(splitter, &fakeTagger{}, fakeResolver{},
		enrich.WithClock(testClock))

	assembler, err := vault.New(cfg.Vault.Path,
		vault.WithDiaryFolder(cfg.Vault.DiaryFolder),
		vault.WithAttachmentsFolder(cfg.Vault.AttachmentsFolder),
		vault.WithClock(testClock))
	if err != nil {
		t.Fatalf("vault.New() error = %v", err)
	}

	opts = append([]journal.Option{
		journal.WithPipeline(pipeline),
		journal.WithAssembler(assembler),
	}, opts...)

	j, err := journal.New(cfg, p, opts...)
	if err != nil {
		t.Fatalf("journal.New() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j, cfg
}

// writeTestWAV writes one second of 44.1kHz silence and returns its path.
func writeTestWAV(t *testing.T) string {
	t.Helper()
	clip := &audio.Clip{
		Data:   make([]byte, 44100*2),
		Format: audio.Format{SampleRate: 44100, Channels: 1},
	}
	path := filepath.Join(t.TempDir(), "recording.wav")
	if err := audio.WriteWAVFile(path, clip); err != nil {
		t.Fatalf("WriteWAVFile() error = %v", err)
	}
	return path
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	if _, err := journal.New(nil, &mock.Provider{}); err == nil {
		t.Error("New(nil config) returned nil error")
	}
	if _, err := journal.New(&config.Config{}, nil); err == nil {
		t.Error("New(nil provider) returned nil error")
	}
}

func TestJournal_ProcessFile(t *testing.T) {
	t.Parallel()

	p := &mock.Provider{Result: &stt.Result{
		Text:     "went for a long walk in the park today.",
		Duration: 42 * time.Second,
		Language: "en",
		Model:    "base.en",
	}}
	j, cfg := newJournal(t, p)

	res, err := j.ProcessFile(context.Background(), writeTestWAV(t))
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if res.DateKey != "2024-03-10" {
		t.Errorf("DateKey = %q, want %q", res.DateKey, "2024-03-10")
	}
	note, err := os.ReadFile(res.NotePath)
	if err != nil {
		t.Fatalf("reading note: %v", err)
	}
	if !strings.Contains(string(note), "Went for a long walk in the park today.") {
		t.Errorf("note does not contain the cleaned transcript:\n%s", note)
	}
	if res.AudioFile == "" {
		t.Error("AudioFile empty, want archived recording name")
	}
	archived := filepath.Join(cfg.Vault.Path, cfg.Vault.AttachmentsFolder, res.AudioFile)
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("archived audio missing: %v", err)
	}
	if res.SourceDeleted {
		t.Error("SourceDeleted = true, want source kept by default")
	}

	if len(p.Calls) != 1 {
		t.Fatalf("Transcribe calls = %d, want 1", len(p.Calls))
	}
	req := p.Calls[0].Req
	if req.SampleRate != 16000 {
		t.Errorf("Request.SampleRate = %d, want 16000", req.SampleRate)
	}
	if req.Language != "en" {
		t.Errorf("Request.Language = %q, want %q", req.Language, "en")
	}
}

func TestJournal_ProcessFile_MissingInput(t *testing.T) {
	t.Parallel()

	j, _ := newJournal(t, &mock.Provider{})
	_, err := j.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, journal.ErrInputNotFound) {
		t.Errorf("ProcessFile() error = %v, want ErrInputNotFound", err)
	}
}

func TestJournal_ProcessFile_TranscribeError(t *testing.T) {
	t.Parallel()

	boom := errors.New("model not loaded")
	j, _ := newJournal(t, &mock.Provider{Err: boom})
	_, err := j.ProcessFile(context.Background(), writeTestWAV(t))
	if !errors.Is(err, boom) {
		t.Errorf("ProcessFile() error = %v, want wrapped %v", err, boom)
	}
}

func TestJournal_ProcessFile_DeletesSource(t *testing.T) {
	t.Parallel()

	p := &mock.Provider{Result: &stt.Result{Text: "short note.", Language: "en"}}
	j, cfg := newJournal(t, p)
	cfg.Privacy.DeleteAudioAfterProcessing = true

	path := writeTestWAV(t)
	res, err := j.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if !res.SourceDeleted {
		t.Error("SourceDeleted = false, want true")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("source still present after processing: %v", err)
	}
}

func TestJournal_ProcessText(t *testing.T) {
	t.Parallel()

	j, _ := newJournal(t, &mock.Provider{})
	res, err := j.ProcessText(context.Background(), "wrote this one by hand today.")
	if err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	if res.AudioFile != "" {
		t.Errorf("AudioFile = %q, want empty for text entries", res.AudioFile)
	}
	if res.Entry.Model != "text-input" {
		t.Errorf("Entry.Model = %q, want %q", res.Entry.Model, "text-input")
	}
	if _, err := os.Stat(res.NotePath); err != nil {
		t.Errorf("note missing: %v", err)
	}
}

func TestJournal_VocabularyBiasesPrompt(t *testing.T) {
	t.Parallel()

	p := &mock.Provider{Result: &stt.Result{Text: "met anja for coffee.", Language: "en"}}
	voc := &vocab.Vocabulary{Terms: []string{"Anja", "Grünerløkka"}}
	j, _ := newJournal(t, p, journal.WithVocabulary(voc))

	if _, err := j.ProcessFile(context.Background(), writeTestWAV(t)); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if len(p.Calls) != 1 {
		t.Fatalf("Transcribe calls = %d, want 1", len(p.Calls))
	}
	prompt := p.Calls[0].Req.InitialPrompt
	for _, term := range voc.Terms {
		if !strings.Contains(prompt, term) {
			t.Errorf("InitialPrompt = %q, missing term %q", prompt, term)
		}
	}
}
