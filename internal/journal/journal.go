// Package journal wires the capture-to-note pipeline into one orchestrator.
//
// Journal owns the full flow for a single recording: decode the WAV, run
// speech-to-text, apply vocabulary corrections, enrich the transcript,
// assemble the markdown note, and index it in the catalog. New creates real
// collaborators from the config; functional options inject test doubles.
package journal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/birkelund/voxvault/internal/config"
	"github.com/birkelund/voxvault/internal/enrich"
	"github.com/birkelund/voxvault/internal/nlp"
	"github.com/birkelund/voxvault/internal/observe"
	"github.com/birkelund/voxvault/internal/vault"
	"github.com/birkelund/voxvault/internal/vault/catalog"
	"github.com/birkelund/voxvault/internal/vocab"
	"github.com/birkelund/voxvault/pkg/audio"
	"github.com/birkelund/voxvault/pkg/provider/ambient"
	"github.com/birkelund/voxvault/pkg/provider/stt"
)

// ErrInputNotFound is returned by ProcessFile when the audio file does not
// exist.
var ErrInputNotFound = errors.New("journal: input file not found")

// whisperSampleRate is the rate whisper models expect. All input audio is
// resampled to it before transcription.
const whisperSampleRate = 16000

// Result summarises one processed recording.
type Result struct {
	// NotePath is the absolute path of the written note.
	NotePath string

	// DateKey is the note's date key (YYYY-MM-DD).
	DateKey string

	// AudioFile is the archived recording's filename inside the vault.
	// Empty when no audio was archived.
	AudioFile string

	// Entry is the enriched entry the note was rendered from.
	Entry *enrich.Entry

	// Corrections lists the vocabulary corrections applied to the
	// transcript.
	Corrections []vocab.Correction

	// ArtifactErr reports a non-fatal audio archive failure. The note was
	// still written.
	ArtifactErr error

	// SourceDeleted reports whether the source recording was removed per
	// the privacy config.
	SourceDeleted bool
}

// Journal orchestrates the full voice-to-note pipeline.
type Journal struct {
	cfg *config.Config

	stt        stt.Provider
	vocabulary *vocab.Vocabulary
	corrector  *vocab.Corrector
	pipeline   *enrich.Pipeline
	assembler  *vault.Assembler
	catalog    *catalog.Catalog
	ambient    ambient.Provider
	metrics    *observe.Metrics

	// closers are called in order by Close; only resources New opened
	// itself end up here.
	closers  []func() error
	stopOnce sync.Once
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*Journal)

// WithVocabulary injects a vocabulary instead of loading one from the
// configured path.
func WithVocabulary(v *vocab.Vocabulary) Option {
	return func(j *Journal) { j.vocabulary = v }
}

// WithPipeline injects an enrichment pipeline instead of building one.
func WithPipeline(p *enrich.Pipeline) Option {
	return func(j *Journal) { j.pipeline = p }
}

// WithAssembler injects a vault assembler instead of creating one from
// config.
func WithAssembler(a *vault.Assembler) Option {
	return func(j *Journal) { j.assembler = a }
}

// WithCatalog injects a catalog instead of opening the default one. The
// caller keeps ownership and must close it.
func WithCatalog(c *catalog.Catalog) Option {
	return func(j *Journal) { j.catalog = c }
}

// WithAmbient injects an ambient conditions provider.
func WithAmbient(p ambient.Provider) Option {
	return func(j *Journal) { j.ambient = p }
}

// WithMetrics injects a metrics instance instead of the package default.
func WithMetrics(m *observe.Metrics) Option {
	return func(j *Journal) { j.metrics = m }
}

// New creates a Journal by wiring all collaborators together. The stt
// provider comes from the caller (populated via the config registry). Use
// Option functions to inject test doubles for any collaborator.
func New(cfg *config.Config, provider stt.Provider, opts ...Option) (*Journal, error) {
	if cfg == nil {
		return nil, errors.New("journal: config must not be nil")
	}
	if provider == nil {
		return nil, errors.New("journal: stt provider must not be nil")
	}

	j := &Journal{cfg: cfg, stt: provider}
	for _, o := range opts {
		o(j)
	}

	// ── 1. Vocabulary + corrector ────────────────────────────────────────
	if j.vocabulary == nil && cfg.Enrichment.VocabularyPath != "" {
		v, err := vocab.LoadVocabulary(cfg.Enrichment.VocabularyPath)
		if err != nil {
			return nil, fmt.Errorf("journal: load vocabulary: %w", err)
		}
		j.vocabulary = v
	}
	if j.corrector == nil && j.vocabulary != nil {
		j.corrector = vocab.NewCorrector(j.vocabulary)
	}

	// ── 2. Enrichment pipeline ───────────────────────────────────────────
	if j.pipeline == nil {
		p, err := buildPipeline(cfg)
		if err != nil {
			return nil, fmt.Errorf("journal: init enrichment: %w", err)
		}
		j.pipeline = p
	}

	// ── 3. Vault assembler ───────────────────────────────────────────────
	if j.assembler == nil {
		a, err := buildAssembler(cfg)
		if err != nil {
			return nil, fmt.Errorf("journal: init vault: %w", err)
		}
		j.assembler = a
	}

	// ── 4. Catalog ───────────────────────────────────────────────────────
	if j.catalog == nil {
		path := filepath.Join(cfg.Vault.Path, catalog.DefaultRelPath)
		c, err := catalog.Open(path)
		if err != nil {
			slog.Warn("journal: catalog unavailable, history disabled", "path", path, "error", err)
		} else {
			j.catalog = c
			j.closers = append(j.closers, c.Close)
		}
	}

	// ── 5. Ambient conditions ────────────────────────────────────────────
	if j.ambient == nil {
		j.ambient = ambient.NewStatic(cfg.Ambient.Weather, cfg.Ambient.Location)
	}

	// ── 6. Metrics ───────────────────────────────────────────────────────
	if j.metrics == nil {
		j.metrics = observe.DefaultMetrics()
	}

	return j, nil
}

// buildPipeline assembles the NLP collaborators and the enrichment pipeline
// from config.
func buildPipeline(cfg *config.Config) (*enrich.Pipeline, error) {
	splitter, err := nlp.NewPunktSplitter()
	if err != nil {
		return nil, err
	}
	tagger, err := nlp.NewTagger()
	if err != nil {
		return nil, err
	}
	resolver := nlp.NewDateResolver()

	var opts []enrich.Option
	if cfg.Enrichment.LexiconPath != "" {
		lex, err := enrich.LoadLexicon(cfg.Enrichment.LexiconPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, enrich.WithLexicon(lex))
	}

	return enrich.NewPipeline(splitter, tagger, resolver, opts...), nil
}

// buildAssembler creates the vault assembler from config.
func buildAssembler(cfg *config.Config) (*vault.Assembler, error) {
	opts := []vault.Option{
		vault.WithDiaryFolder(cfg.Vault.DiaryFolder),
		vault.WithAttachmentsFolder(cfg.Vault.AttachmentsFolder),
	}
	if cfg.Vault.TemplatePath != "" {
		text, err := vault.LoadTemplate(cfg.Vault.TemplatePath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, vault.WithTemplate(text))
	}
	return vault.New(cfg.Vault.Path, opts...)
}

// ProcessFile runs the full pipeline on an existing recording: decode,
// transcribe, correct, enrich, write the note, index it. The transcription
// error is surfaced verbatim and is fatal for this invocation; nothing is
// retried.
func (j *Journal) ProcessFile(ctx context.Context, audioPath string) (*Result, error) {
	start := time.Now()
	j.metrics.InFlightJobs.Add(ctx, 1)
	defer j.metrics.InFlightJobs.Add(ctx, -1)

	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, audioPath)
		}
		return nil, fmt.Errorf("journal: stat input: %w", err)
	}

	clip, err := audio.ReadWAVFile(audioPath)
	if err != nil {
		j.metrics.RecordStageFailure(ctx, "decode")
		return nil, fmt.Errorf("journal: read audio %s: %w", audioPath, err)
	}
	clip = clip.Resampled(whisperSampleRate)

	req := stt.Request{
		Samples:       clip.Samples(),
		SampleRate:    whisperSampleRate,
		Language:      j.cfg.Transcription.Language,
		Temperature:   j.cfg.Transcription.Temperature,
		InitialPrompt: j.initialPrompt(),
	}

	tTranscribe := time.Now()
	res, err := j.stt.Transcribe(ctx, req)
	elapsed := time.Since(tTranscribe).Seconds()
	if err != nil {
		j.metrics.RecordTranscription(ctx, j.stt.Name(), "error", elapsed)
		j.metrics.RecordStageFailure(ctx, "transcribe")
		return nil, fmt.Errorf("journal: transcribe %s: %w", audioPath, err)
	}
	j.metrics.RecordTranscription(ctx, j.stt.Name(), "ok", elapsed)
	slog.Info("journal: transcript ready",
		"provider", j.stt.Name(),
		"chars", len(res.Text),
		"audio", res.Duration,
	)

	result, err := j.processTranscript(ctx, res, audioPath)
	if err != nil {
		return nil, err
	}

	if j.cfg.Privacy.DeleteAudioAfterProcessing {
		if err := os.Remove(audioPath); err != nil {
			slog.Warn("journal: failed to delete source audio", "path", audioPath, "error", err)
		} else {
			result.SourceDeleted = true
			slog.Debug("journal: source audio deleted", "path", audioPath)
		}
	}

	j.metrics.ProcessingDuration.Record(ctx, time.Since(start).Seconds())
	return result, nil
}

// ProcessText runs the pipeline on already-transcribed text, skipping
// capture and speech-to-text. Used for manual entries and debugging.
func (j *Journal) ProcessText(ctx context.Context, text string) (*Result, error) {
	start := time.Now()
	j.metrics.InFlightJobs.Add(ctx, 1)
	defer j.metrics.InFlightJobs.Add(ctx, -1)

	res := &stt.Result{
		Text:     text,
		Language: j.cfg.Transcription.Language,
		Model:    "text-input",
	}
	result, err := j.processTranscript(ctx, res, "")
	if err != nil {
		return nil, err
	}

	j.metrics.ProcessingDuration.Record(ctx, time.Since(start).Seconds())
	return result, nil
}

// processTranscript runs the shared correct → enrich → write → index tail
// of the pipeline. audioPath may be empty for text-only entries.
func (j *Journal) processTranscript(ctx context.Context, res *stt.Result, audioPath string) (*Result, error) {
	var corrections []vocab.Correction
	if j.corrector != nil {
		corrected, cs := j.corrector.Correct(res.Text)
		if len(cs) > 0 {
			res.Text = corrected
			corrections = cs
			j.metrics.RecordCorrections(ctx, int64(len(cs)))
		}
	}

	tEnrich := time.Now()
	entry, err := j.pipeline.Enrich(ctx, res)
	if err != nil {
		j.metrics.RecordStageFailure(ctx, "enrich")
		return nil, fmt.Errorf("journal: enrich transcript: %w", err)
	}
	j.metrics.EnrichmentDuration.Record(ctx, time.Since(tEnrich).Seconds())

	cond, err := j.ambient.Conditions(ctx)
	if err != nil {
		slog.Warn("journal: ambient lookup failed", "error", err)
		cond = ambient.Conditions{}
	}

	tNote := time.Now()
	noteRes, err := j.assembler.CreateNote(ctx, vault.CreateRequest{
		Entry:     entry,
		AudioPath: audioPath,
		Weather:   cond.Weather,
		Location:  cond.Location,
	})
	if err != nil {
		j.metrics.RecordStageFailure(ctx, "note")
		return nil, fmt.Errorf("journal: write note: %w", err)
	}
	j.metrics.NoteWriteDuration.Record(ctx, time.Since(tNote).Seconds())
	j.metrics.RecordNoteWritten(ctx, entry.Emotion.Dominant())

	if noteRes.ArtifactErr != nil {
		slog.Warn("journal: audio archive failed, note written without recording", "error", noteRes.ArtifactErr)
	}

	j.recordCatalog(ctx, entry, noteRes)

	slog.Info("journal: note written",
		"path", noteRes.NotePath,
		"date", noteRes.DateKey,
		"words", entry.Stats.WordCount,
		"mood", entry.Emotion.Dominant(),
		"corrections", len(corrections),
	)

	return &Result{
		NotePath:    noteRes.NotePath,
		DateKey:     noteRes.DateKey,
		AudioFile:   noteRes.AudioFile,
		Entry:       entry,
		Corrections: corrections,
		ArtifactErr: noteRes.ArtifactErr,
	}, nil
}

// recordCatalog indexes the note. Catalog failures never fail the pipeline;
// the vault file scan stays authoritative.
func (j *Journal) recordCatalog(ctx context.Context, entry *enrich.Entry, note *vault.NoteResult) {
	if j.catalog == nil {
		return
	}
	err := j.catalog.Record(ctx, catalog.Entry{
		DateKey:   note.DateKey,
		NotePath:  note.NotePath,
		WordCount: entry.Stats.WordCount,
		Mood:      entry.Emotion.Dominant(),
		Topics:    strings.Join(entry.Topics, ", "),
		Duration:  entry.Duration,
		AudioFile: note.AudioFile,
	})
	if err != nil {
		slog.Warn("journal: catalog record failed", "error", err)
	}
}

// initialPrompt combines the configured prompt with the personal vocabulary
// so the recogniser is biased towards expected terms.
func (j *Journal) initialPrompt() string {
	prompt := j.cfg.Transcription.InitialPrompt
	if j.vocabulary == nil || len(j.vocabulary.Terms) == 0 {
		return prompt
	}
	terms := strings.Join(j.vocabulary.Terms, ", ")
	if prompt == "" {
		return terms
	}
	return prompt + " " + terms
}

// Close releases resources the constructor opened. Injected collaborators
// belong to the caller and are left open.
func (j *Journal) Close() error {
	var errs []error
	j.stopOnce.Do(func() {
		for _, closer := range j.closers {
			if err := closer(); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}
