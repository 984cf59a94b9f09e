// This file contains the NativeProvider implementation backed by the
// whisper.cpp CGO bindings. The whisper.cpp static library (libwhisper.a)
// and headers (whisper.h) must be available at link time via LIBRARY_PATH
// and C_INCLUDE_PATH environment variables.

package whisper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/birkelund/voxvault/pkg/provider/stt"
)

// Compile-time assertion that NativeProvider satisfies stt.Provider.
var _ stt.Provider = (*NativeProvider)(nil)

// NativeProvider implements stt.Provider using whisper.cpp Go bindings
// (CGO), eliminating server round trips entirely. The GGML model is loaded
// once in NewNative and shared by all Transcribe calls; each call creates a
// fresh whisper context because contexts are not thread-safe while the
// model is.
type NativeProvider struct {
	model     whisperlib.Model
	modelPath string
	language  string
}

// NativeOption is a functional option for configuring a NativeProvider.
type NativeOption func(*NativeProvider)

// WithNativeLanguage sets the default recognition language used when a
// request does not specify one (e.g., "en", "de", "fr"). Defaults to "en".
func WithNativeLanguage(lang string) NativeOption {
	return func(p *NativeProvider) { p.language = lang }
}

// NewNative creates a NativeProvider that loads the whisper.cpp model from
// the given file path. A missing or unreadable model file fails here, at
// startup, never mid-pipeline. The caller must call Close when the provider
// is no longer needed.
func NewNative(modelPath string, opts ...NativeOption) (*NativeProvider, error) {
	if modelPath == "" {
		return nil, errors.New("whisper: modelPath must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: load model %q: %w", modelPath, err)
	}

	p := &NativeProvider{
		model:     model,
		modelPath: modelPath,
		language:  defaultLanguage,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Name implements stt.Provider.
func (p *NativeProvider) Name() string { return "whisper-native" }

// Close releases the whisper model. Must be called when the provider is no
// longer needed.
func (p *NativeProvider) Close() error {
	if p.model != nil {
		return p.model.Close()
	}
	return nil
}

// Transcribe implements stt.Provider. It runs the full buffer through
// whisper.cpp in one pass and concatenates the recognised segments.
func (p *NativeProvider) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("whisper: context already cancelled: %w", err)
	}
	if len(req.Samples) == 0 {
		return nil, errors.New("whisper: no audio samples")
	}

	lang := req.Language
	if lang == "" {
		lang = p.language
	}

	// Each inference gets its own context; the model is the shared part.
	wctx, err := p.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("whisper: create context: %w", err)
	}

	if err := wctx.SetLanguage(lang); err != nil {
		slog.Warn("whisper: failed to set language, using default", "language", lang, "error", err)
	}
	if req.InitialPrompt != "" {
		wctx.SetInitialPrompt(req.InitialPrompt)
	}
	if req.Temperature > 0 {
		wctx.SetTemperature(req.Temperature)
	}

	if err := wctx.Process(req.Samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("whisper: process audio: %w", err)
	}

	var (
		parts    []string
		segments []stt.Segment
	)
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("whisper: read segment: %w", err)
		}
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		segments = append(segments, stt.Segment{
			Start: segment.Start,
			End:   segment.End,
			Text:  text,
		})
	}

	return &stt.Result{
		Text:     strings.Join(parts, " "),
		Segments: segments,
		Duration: req.AudioDuration(),
		Language: lang,
		Model:    filepath.Base(p.modelPath),
	}, nil
}
