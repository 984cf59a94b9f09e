package cli

import (
	"errors"
	"testing"

	"github.com/birkelund/voxvault/internal/config"
)

func TestNewRegistry_CoversConfiguredProviders(t *testing.T) {
	t.Parallel()

	reg := newRegistry()

	// whisper-server is the only provider constructible without a model
	// file or API key on disk.
	p, err := reg.CreateSTT(config.TranscriptionConfig{
		Provider:  config.ProviderWhisperServer,
		ServerURL: "http://localhost:8080",
		Language:  "en",
	})
	if err != nil {
		t.Fatalf("CreateSTT(whisper-server) error = %v", err)
	}
	if got := p.Name(); got != "whisper-server" {
		t.Errorf("Name() = %q, want whisper-server", got)
	}
}

func TestNewRegistry_UnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := newRegistry().CreateSTT(config.TranscriptionConfig{Provider: "siri"})
	if !errors.Is(err, config.ErrProviderNotRegistered) {
		t.Errorf("CreateSTT(siri) error = %v, want ErrProviderNotRegistered", err)
	}
}

func TestRenderMood_UnknownLabelPassesThrough(t *testing.T) {
	t.Parallel()

	if got := renderMood("Ambivalent"); got != "Ambivalent" {
		t.Errorf("renderMood() = %q, want unstyled passthrough", got)
	}
}
