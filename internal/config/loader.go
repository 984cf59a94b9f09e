package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// envOpenAIKey is consulted when transcription.api_key is empty, so the
// secret can stay out of the config file.
const envOpenAIKey = "OPENAI_API_KEY"

// DefaultPath returns the per-user config file location,
// e.g. ~/.config/voxvault/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "voxvault", "config.yaml"), nil
}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, fills the
// API key from the environment when absent, and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	applyDefaults(cfg)

	if cfg.Transcription.Provider == ProviderOpenAI && cfg.Transcription.APIKey == "" {
		cfg.Transcription.APIKey = os.Getenv(envOpenAIKey)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Transcription
	if !cfg.Transcription.Provider.IsValid() {
		errs = append(errs, fmt.Errorf("transcription.provider %q is invalid; valid values: whisper-native, whisper-server, openai", cfg.Transcription.Provider))
	}
	switch cfg.Transcription.Provider {
	case ProviderWhisperNative:
		if cfg.Transcription.Model == "" {
			errs = append(errs, errors.New("transcription.model is required for the whisper-native provider (path to a GGML model file)"))
		}
	case ProviderWhisperServer:
		if cfg.Transcription.ServerURL == "" {
			errs = append(errs, errors.New("transcription.server_url is required for the whisper-server provider"))
		}
	case ProviderOpenAI:
		if cfg.Transcription.APIKey == "" {
			errs = append(errs, fmt.Errorf("transcription.api_key is required for the openai provider (or set %s)", envOpenAIKey))
		}
	}

	// Vault
	if cfg.Vault.Path == "" {
		errs = append(errs, errors.New("vault.path is required"))
	}

	// Audio
	if cfg.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate %d must be positive", cfg.Audio.SampleRate))
	}
	if cfg.Audio.Channels != 1 && cfg.Audio.Channels != 2 {
		errs = append(errs, fmt.Errorf("audio.channels %d is invalid; valid values: 1, 2", cfg.Audio.Channels))
	}
	if cfg.Audio.MaxDuration < 0 {
		errs = append(errs, fmt.Errorf("audio.max_duration %s must not be negative", cfg.Audio.MaxDuration))
	}
	if cfg.Audio.SilenceThreshold < 0 || cfg.Audio.SilenceThreshold >= 1 {
		errs = append(errs, fmt.Errorf("audio.silence_threshold %.3f is out of range [0, 1)", cfg.Audio.SilenceThreshold))
	}

	// Privacy
	if cfg.Privacy.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("privacy.retention_days %d must not be negative", cfg.Privacy.RetentionDays))
	}

	// Watch
	if cfg.Watch.Settle < 0 {
		errs = append(errs, fmt.Errorf("watch.settle %s must not be negative", cfg.Watch.Settle))
	}
	if cfg.Watch.Folder != "" && cfg.Watch.HTTPAddr == "" {
		slog.Warn("watch.http_addr is empty; the watch daemon will run without health and metrics endpoints")
	}
	if cfg.Watch.Folder != "" && cfg.Watch.MoveProcessed && cfg.Privacy.DeleteAudioAfterProcessing {
		slog.Warn("privacy.delete_audio_after_processing is set; processed files are deleted rather than moved to done/")
	}

	// Logging
	if !cfg.Logging.Level.IsValid() {
		errs = append(errs, fmt.Errorf("logging.level %q is invalid; valid values: debug, info, warn, error", cfg.Logging.Level))
	}
	if !cfg.Logging.Format.IsValid() {
		errs = append(errs, fmt.Errorf("logging.format %q is invalid; valid values: text, json", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
