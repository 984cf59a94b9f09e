// Package openai provides an stt.Provider backed by the OpenAI audio
// transcription API.
package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/birkelund/voxvault/pkg/audio"
	"github.com/birkelund/voxvault/pkg/provider/stt"
)

// Compile-time assertion that Provider satisfies stt.Provider.
var _ stt.Provider = (*Provider)(nil)

// Provider implements stt.Provider using OpenAI's hosted transcription
// endpoint. Audio is WAV-encoded and uploaded per request; nothing is
// retained locally.
type Provider struct {
	client oai.Client
	model  string
}

// config holds optional configuration for the provider.
type config struct {
	baseURL string
	timeout time.Duration
}

// Option is a functional option for Provider.
type Option func(*config)

// WithBaseURL overrides the default OpenAI API base URL, e.g. for an
// API-compatible proxy.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// New constructs an OpenAI transcription Provider. model is the hosted
// model identifier, e.g. "whisper-1".
func New(apiKey string, model string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai: model must not be empty")
	}

	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{
			Timeout: cfg.timeout,
		}))
	}

	client := oai.NewClient(reqOpts...)
	return &Provider{client: client, model: model}, nil
}

// Name implements stt.Provider.
func (p *Provider) Name() string { return "openai" }

// Transcribe implements stt.Provider.
func (p *Provider) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	if len(req.Samples) == 0 {
		return nil, errors.New("openai: no audio samples")
	}

	pcm := audio.Float32ToPCM(req.Samples)
	wav := audio.EncodeWAV(pcm, req.SampleRate, 1)

	params := oai.AudioTranscriptionNewParams{
		File:  oai.File(bytes.NewReader(wav), "audio.wav", "audio/wav"),
		Model: oai.AudioModel(p.model),
	}
	if req.Language != "" {
		params.Language = oai.String(req.Language)
	}
	if req.Temperature > 0 {
		params.Temperature = oai.Float(float64(req.Temperature))
	}
	if req.InitialPrompt != "" {
		params.Prompt = oai.String(req.InitialPrompt)
	}

	resp, err := p.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: transcribe: %w", err)
	}

	return &stt.Result{
		Text:     strings.TrimSpace(resp.Text),
		Duration: req.AudioDuration(),
		Language: req.Language,
		Model:    p.model,
	}, nil
}
