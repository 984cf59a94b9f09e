// Package whisper provides stt.Provider implementations backed by
// whisper.cpp: NativeProvider runs the model in-process through the CGO
// bindings, ServerProvider talks to a running whisper.cpp server over HTTP.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/birkelund/voxvault/pkg/audio"
	"github.com/birkelund/voxvault/pkg/provider/stt"
)

const (
	defaultLanguage = "en"

	// defaultTimeout bounds one inference round trip. Long clips on slow
	// hardware can take a while, so this is generous.
	defaultTimeout = 5 * time.Minute
)

// Compile-time assertion that ServerProvider satisfies stt.Provider.
var _ stt.Provider = (*ServerProvider)(nil)

// ServerProvider implements stt.Provider against the whisper.cpp server's
// /inference endpoint. Audio is WAV-encoded and uploaded as
// multipart/form-data; the server's JSON response carries the transcript.
type ServerProvider struct {
	serverURL  string
	model      string
	language   string
	httpClient *http.Client
}

// ServerOption is a functional option for configuring a ServerProvider.
type ServerOption func(*ServerProvider)

// WithServerModel sets the model hint forwarded to the server. Servers
// running a single fixed model ignore it.
func WithServerModel(model string) ServerOption {
	return func(p *ServerProvider) { p.model = model }
}

// WithServerLanguage sets the default recognition language used when a
// request does not specify one. Defaults to "en".
func WithServerLanguage(lang string) ServerOption {
	return func(p *ServerProvider) { p.language = lang }
}

// WithServerHTTPClient replaces the HTTP client used for inference calls,
// e.g. to adjust the timeout.
func WithServerHTTPClient(c *http.Client) ServerOption {
	return func(p *ServerProvider) { p.httpClient = c }
}

// NewServer creates a ServerProvider for the whisper.cpp server at
// serverURL, e.g. "http://localhost:8080". A trailing slash is trimmed.
func NewServer(serverURL string, opts ...ServerOption) (*ServerProvider, error) {
	if serverURL == "" {
		return nil, errors.New("whisper: serverURL must not be empty")
	}

	p := &ServerProvider{
		serverURL:  strings.TrimRight(serverURL, "/"),
		language:   defaultLanguage,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Name implements stt.Provider.
func (p *ServerProvider) Name() string { return "whisper-server" }

// Transcribe implements stt.Provider. It encodes req.Samples as a WAV file
// and POSTs it to the /inference endpoint as multipart/form-data.
func (p *ServerProvider) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	if len(req.Samples) == 0 {
		return nil, errors.New("whisper: no audio samples")
	}

	lang := req.Language
	if lang == "" {
		lang = p.language
	}

	pcm := audio.Float32ToPCM(req.Samples)
	wav := audio.EncodeWAV(pcm, req.SampleRate, 1)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	// Primary audio field.
	fw, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, fmt.Errorf("whisper: create form file: %w", err)
	}
	if _, err := fw.Write(wav); err != nil {
		return nil, fmt.Errorf("whisper: write wav data: %w", err)
	}

	// Hint fields.
	if err := mw.WriteField("response_format", "json"); err != nil {
		return nil, fmt.Errorf("whisper: write response_format field: %w", err)
	}
	if lang != "" {
		if err := mw.WriteField("language", lang); err != nil {
			return nil, fmt.Errorf("whisper: write language field: %w", err)
		}
	}
	if p.model != "" {
		if err := mw.WriteField("model", p.model); err != nil {
			return nil, fmt.Errorf("whisper: write model field: %w", err)
		}
	}
	if req.Temperature > 0 {
		temp := strconv.FormatFloat(float64(req.Temperature), 'f', -1, 32)
		if err := mw.WriteField("temperature", temp); err != nil {
			return nil, fmt.Errorf("whisper: write temperature field: %w", err)
		}
	}
	if req.InitialPrompt != "" {
		if err := mw.WriteField("prompt", req.InitialPrompt); err != nil {
			return nil, fmt.Errorf("whisper: write prompt field: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("whisper: close multipart writer: %w", err)
	}

	endpoint := p.serverURL + "/inference"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("whisper: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("whisper: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper: server returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("whisper: read response body: %w", err)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("whisper: parse JSON response: %w", err)
	}

	model := p.model
	if model == "" {
		model = "whisper-server"
	}
	return &stt.Result{
		Text:     strings.TrimSpace(result.Text),
		Duration: req.AudioDuration(),
		Language: lang,
		Model:    model,
	}, nil
}
