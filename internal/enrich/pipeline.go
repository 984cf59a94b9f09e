package enrich

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/birkelund/voxvault/internal/nlp"
	"github.com/birkelund/voxvault/pkg/provider/stt"
)

// Pipeline orchestrates clean → segment → annotate over one transcript.
// It is stateless between calls and safe for sequential reuse.
type Pipeline struct {
	splitter  nlp.SentenceSplitter
	cleaner   *Cleaner
	segmenter *Segmenter
	annotator *Annotator

	lexicon *Lexicon
	now     func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLexicon replaces the built-in emotion lexicon.
func WithLexicon(lex *Lexicon) Option {
	return func(p *Pipeline) {
		p.lexicon = lex
	}
}

// WithClock overrides the reference clock that anchors relative date
// mentions. Tests use this.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// NewPipeline builds a Pipeline around the given NLP collaborators.
func NewPipeline(splitter nlp.SentenceSplitter, tagger nlp.Tagger, resolver nlp.DateResolver, opts ...Option) *Pipeline {
	p := &Pipeline{splitter: splitter}
	for _, opt := range opts {
		opt(p)
	}
	p.cleaner = NewCleaner(splitter)
	p.segmenter = NewSegmenter(splitter)
	p.annotator = NewAnnotator(tagger, resolver, p.lexicon, p.now)
	return p
}

// Enrich turns a transcription result into an [Entry]. Empty or
// malformed text degrades to an entry with empty annotations; only a
// collaborator fault fails the call, surfaced as [*EnrichmentError]
// with the cleaned text preserved.
func (p *Pipeline) Enrich(ctx context.Context, raw *stt.Result) (*Entry, error) {
	if raw == nil {
		return nil, errors.New("enrich: transcription result must not be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := p.cleaner.Clean(raw.Text)
	sentences := p.splitter.Sentences(cleaned)
	paragraphs := p.segmenter.Group(sentences)

	ann, err := p.annotator.Annotate(cleaned)
	if err != nil {
		return nil, &EnrichmentError{CleanedText: cleaned, Err: err}
	}

	entry := &Entry{
		OriginalText: raw.Text,
		CleanedText:  cleaned,
		Paragraphs:   paragraphs,
		Dates:        ann.Dates,
		Topics:       ann.Topics,
		Emotion:      ann.Emotion,
		Stats: Stats{
			WordCount:      len(strings.Fields(cleaned)),
			SentenceCount:  len(sentences),
			ParagraphCount: len(paragraphs),
		},
		Duration: raw.Duration,
		Language: raw.Language,
		Model:    raw.Model,
	}

	slog.Debug("enrich: entry enriched",
		"words", entry.Stats.WordCount,
		"sentences", entry.Stats.SentenceCount,
		"paragraphs", entry.Stats.ParagraphCount,
		"topics", len(entry.Topics),
		"dates", len(entry.Dates),
		"mood", entry.Emotion.Dominant(),
	)
	return entry, nil
}
