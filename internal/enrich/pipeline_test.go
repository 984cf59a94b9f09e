package enrich_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/birkelund/voxvault/internal/enrich"
	"github.com/birkelund/voxvault/internal/nlp"
	"github.com/birkelund/voxvault/pkg/provider/stt"
)

func newPipeline(t *testing.T, tagger nlp.Tagger) *enrich.Pipeline {
	t.Helper()
	splitter, err := nlp.NewPunktSplitter()
	if err != nil {
		t.Fatalf("NewPunktSplitter() error = %v", err)
	}
	return enrich.NewPipeline(splitter, tagger, &fakeResolver{},
		enrich.WithClock(fixedClock(time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC))))
}

func TestPipeline_Enrich(t *testing.T) {
	t.Parallel()

	tagger := &fakeTagger{
		ents:   []nlp.Entity{{Text: "Sarah", Label: nlp.LabelPerson}},
		chunks: []string{"a wonderful hike"},
	}
	p := newPipeline(t, tagger)

	raw := &stt.Result{
		Text:     "i went hiking with sarah today.  it was a wonderful day. we got very sore feet. next time we bring poles.",
		Duration: 42 * time.Second,
		Language: "en",
		Model:    "base.en",
	}
	entry, err := p.Enrich(context.Background(), raw)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}

	if entry.OriginalText != raw.Text {
		t.Errorf("OriginalText mutated")
	}
	if !strings.HasPrefix(entry.CleanedText, "I went hiking") {
		t.Errorf("CleanedText = %q, want sentence-initial capital", entry.CleanedText)
	}
	if entry.Stats.SentenceCount != 4 {
		t.Errorf("SentenceCount = %d, want 4", entry.Stats.SentenceCount)
	}
	if entry.Stats.ParagraphCount != 2 {
		t.Errorf("ParagraphCount = %d, want 2 (ceil(4/3))", entry.Stats.ParagraphCount)
	}
	if len(entry.Paragraphs) != entry.Stats.ParagraphCount {
		t.Errorf("len(Paragraphs) = %d, Stats.ParagraphCount = %d", len(entry.Paragraphs), entry.Stats.ParagraphCount)
	}
	if entry.Stats.WordCount != len(strings.Fields(entry.CleanedText)) {
		t.Errorf("WordCount = %d, want %d", entry.Stats.WordCount, len(strings.Fields(entry.CleanedText)))
	}
	if entry.Duration != raw.Duration || entry.Language != "en" || entry.Model != "base.en" {
		t.Errorf("transcription fields not carried through: %+v", entry)
	}
	if len(entry.Topics) == 0 {
		t.Errorf("Topics empty, want at least the tagged entity")
	}
	if entry.Emotion.Positive <= 0 {
		t.Errorf("Emotion.Positive = %v, want > 0 for text containing %q", entry.Emotion.Positive, "wonderful")
	}
}

func TestPipeline_EnrichEmptyText(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, &fakeTagger{})
	entry, err := p.Enrich(context.Background(), &stt.Result{Text: "   "})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if entry.CleanedText != "" {
		t.Errorf("CleanedText = %q, want empty", entry.CleanedText)
	}
	if len(entry.Paragraphs) != 0 || entry.Stats.WordCount != 0 {
		t.Errorf("empty input produced non-empty entry: %+v", entry)
	}
	if entry.Emotion.Neutral != 1 {
		t.Errorf("Emotion = %+v, want fully neutral", entry.Emotion)
	}
}

func TestPipeline_EnrichNilResult(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, &fakeTagger{})
	if _, err := p.Enrich(context.Background(), nil); err == nil {
		t.Fatal("Enrich(nil) returned nil error")
	}
}

func TestPipeline_CollaboratorFaultCarriesCleanedText(t *testing.T) {
	t.Parallel()

	boom := errors.New("tagger offline")
	p := newPipeline(t, &fakeTagger{entErr: boom})

	_, err := p.Enrich(context.Background(), &stt.Result{Text: "  hello,  world!  "})
	if err == nil {
		t.Fatal("Enrich() returned nil error, want enrichment failure")
	}

	var enrichErr *enrich.EnrichmentError
	if !errors.As(err, &enrichErr) {
		t.Fatalf("Enrich() error = %T, want *enrich.EnrichmentError", err)
	}
	if enrichErr.CleanedText != "Hello, world!" {
		t.Errorf("CleanedText = %q, want %q", enrichErr.CleanedText, "Hello, world!")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error chain lost the cause: %v", err)
	}
}

func TestPipeline_CancelledContext(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, &fakeTagger{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Enrich(ctx, &stt.Result{Text: "hello"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Enrich() error = %v, want context.Canceled", err)
	}
}
