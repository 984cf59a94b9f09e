package cli

import (
	"io"
	"log/slog"

	"github.com/birkelund/voxvault/internal/config"
	"github.com/birkelund/voxvault/pkg/provider/stt"
	openaistt "github.com/birkelund/voxvault/pkg/provider/stt/openai"
	"github.com/birkelund/voxvault/pkg/provider/stt/whisper"
)

// newRegistry wires the built-in transcription providers into a fresh
// registry. Provider constructors fail fast on missing models or keys,
// so a bad config surfaces here rather than mid-pipeline.
func newRegistry() *config.Registry {
	reg := config.NewRegistry()

	reg.RegisterSTT(string(config.ProviderWhisperNative), func(tc config.TranscriptionConfig) (stt.Provider, error) {
		var opts []whisper.NativeOption
		if tc.Language != "" {
			opts = append(opts, whisper.WithNativeLanguage(tc.Language))
		}
		return whisper.NewNative(tc.Model, opts...)
	})

	reg.RegisterSTT(string(config.ProviderWhisperServer), func(tc config.TranscriptionConfig) (stt.Provider, error) {
		opts := []whisper.ServerOption{}
		if tc.Model != "" {
			opts = append(opts, whisper.WithServerModel(tc.Model))
		}
		if tc.Language != "" {
			opts = append(opts, whisper.WithServerLanguage(tc.Language))
		}
		return whisper.NewServer(tc.ServerURL, opts...)
	})

	reg.RegisterSTT(string(config.ProviderOpenAI), func(tc config.TranscriptionConfig) (stt.Provider, error) {
		return openaistt.New(tc.APIKey, tc.Model)
	})

	return reg
}

// newProvider instantiates the transcription provider the config
// selects.
func newProvider(cfg *config.Config) (stt.Provider, error) {
	return newRegistry().CreateSTT(cfg.Transcription)
}

// closeProvider releases provider resources for implementations that
// hold any, such as the native whisper model.
func closeProvider(p stt.Provider) {
	if c, ok := p.(io.Closer); ok {
		if err := c.Close(); err != nil {
			slog.Warn("cli: closing provider", "error", err)
		}
	}
}
