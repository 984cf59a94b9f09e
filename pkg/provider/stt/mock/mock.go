// Package mock provides a test double for the stt.Provider interface.
//
// Script the provider by setting Result or Err, then inspect Calls to
// verify what the caller sent:
//
//	p := &mock.Provider{Result: &stt.Result{Text: "hello"}}
//	res, _ := p.Transcribe(ctx, req)
package mock

import (
	"context"
	"sync"

	"github.com/birkelund/voxvault/pkg/provider/stt"
)

// TranscribeCall records a single invocation of Provider.Transcribe.
type TranscribeCall struct {
	// Ctx is the context passed to Transcribe.
	Ctx context.Context
	// Req is the request passed to Transcribe.
	Req stt.Request
}

// Provider is a mock implementation of stt.Provider.
type Provider struct {
	mu sync.Mutex

	// ProviderName is returned by Name. Defaults to "mock".
	ProviderName string

	// Result is returned from Transcribe when Err is nil. If nil, a
	// minimal Result echoing the request's language and duration is
	// returned instead.
	Result *stt.Result

	// Err, if non-nil, is returned as the error from Transcribe.
	Err error

	// Calls records every call to Transcribe.
	Calls []TranscribeCall
}

// Name implements stt.Provider.
func (p *Provider) Name() string {
	if p.ProviderName == "" {
		return "mock"
	}
	return p.ProviderName
}

// Transcribe records the call and returns Result, Err.
func (p *Provider) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls = append(p.Calls, TranscribeCall{Ctx: ctx, Req: req})
	if p.Err != nil {
		return nil, p.Err
	}
	if p.Result != nil {
		return p.Result, nil
	}
	return &stt.Result{
		Duration: req.AudioDuration(),
		Language: req.Language,
		Model:    p.Name(),
	}, nil
}

// Reset clears all recorded calls. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls = nil
}

// Ensure Provider implements stt.Provider at compile time.
var _ stt.Provider = (*Provider)(nil)
