package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/birkelund/voxvault/pkg/provider/stt"
)

// ErrProviderNotRegistered is returned by [Registry.CreateSTT] when no
// factory has been registered under the requested provider name.
var ErrProviderNotRegistered = errors.New("config: provider not registered")

// Registry maps transcription provider names to their constructor functions.
// Factories are registered by the CLI at startup; the registry itself stays
// free of concrete provider imports. It is safe for concurrent use.
type Registry struct {
	mu  sync.RWMutex
	stt map[string]func(TranscriptionConfig) (stt.Provider, error)
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{
		stt: make(map[string]func(TranscriptionConfig) (stt.Provider, error)),
	}
}

// RegisterSTT registers a transcription provider factory under name.
// Subsequent calls with the same name overwrite the previous registration.
func (r *Registry) RegisterSTT(name string, factory func(TranscriptionConfig) (stt.Provider, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stt[name] = factory
}

// CreateSTT instantiates the transcription provider selected by cfg.Provider.
// Returns [ErrProviderNotRegistered] if no factory has been registered for
// that name.
func (r *Registry) CreateSTT(cfg TranscriptionConfig) (stt.Provider, error) {
	r.mu.RLock()
	factory, ok := r.stt[string(cfg.Provider)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: stt/%q", ErrProviderNotRegistered, cfg.Provider)
	}
	return factory(cfg)
}
