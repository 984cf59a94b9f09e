// Package config provides the configuration schema, loader, and provider
// registry for the Voxvault journaling pipeline.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// LogFormat selects the log output encoding.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// IsValid reports whether f is a recognised log format.
func (f LogFormat) IsValid() bool {
	return f == LogText || f == LogJSON
}

// STTProvider selects the speech-to-text backend.
type STTProvider string

const (
	// ProviderWhisperNative runs whisper.cpp in-process via CGO bindings.
	ProviderWhisperNative STTProvider = "whisper-native"

	// ProviderWhisperServer talks to a whisper.cpp server over HTTP.
	ProviderWhisperServer STTProvider = "whisper-server"

	// ProviderOpenAI uses the hosted OpenAI transcription API.
	ProviderOpenAI STTProvider = "openai"
)

// IsValid reports whether p is a recognised transcription provider.
func (p STTProvider) IsValid() bool {
	switch p {
	case ProviderWhisperNative, ProviderWhisperServer, ProviderOpenAI:
		return true
	}
	return false
}

// Duration wraps [time.Duration] so YAML values like "300s" or "2m" decode
// via [time.ParseDuration].
type Duration time.Duration

// UnmarshalYAML implements [yaml.Unmarshaler].
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns d as a standard [time.Duration].
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// Config is the root configuration structure for Voxvault.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Vault         VaultConfig         `yaml:"vault"`
	Audio         AudioConfig         `yaml:"audio"`
	Enrichment    EnrichmentConfig    `yaml:"enrichment"`
	Ambient       AmbientConfig       `yaml:"ambient"`
	Privacy       PrivacyConfig       `yaml:"privacy"`
	Watch         WatchConfig         `yaml:"watch"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// TranscriptionConfig selects and parameterises the speech-to-text backend.
type TranscriptionConfig struct {
	// Provider selects the transcription backend.
	Provider STTProvider `yaml:"provider"`

	// Model is the GGML model file path for whisper-native, or the model
	// identifier for hosted providers (e.g., "whisper-1").
	Model string `yaml:"model"`

	// Language is the expected speech language as an ISO 639-1 code.
	Language string `yaml:"language"`

	// Temperature controls decoding randomness. 0 is deterministic.
	Temperature float32 `yaml:"temperature"`

	// InitialPrompt biases recognition towards expected vocabulary. The
	// personal vocabulary terms are appended to it automatically.
	InitialPrompt string `yaml:"initial_prompt"`

	// ServerURL is the whisper.cpp server endpoint. Required for the
	// whisper-server provider, ignored otherwise.
	ServerURL string `yaml:"server_url"`

	// APIKey authenticates against hosted providers. When empty the
	// OPENAI_API_KEY environment variable is consulted at load time.
	APIKey string `yaml:"api_key"`
}

// VaultConfig locates the markdown vault the journal writes into.
type VaultConfig struct {
	// Path is the vault root directory. Required.
	Path string `yaml:"path"`

	// DiaryFolder is the subfolder for diary notes, relative to Path.
	DiaryFolder string `yaml:"diary_folder"`

	// TemplatePath optionally points to a custom note template file.
	// Empty means the built-in template.
	TemplatePath string `yaml:"template_path"`

	// AttachmentsFolder is the subfolder for archived audio, relative to
	// Path.
	AttachmentsFolder string `yaml:"attachments_folder"`
}

// AudioConfig holds microphone capture settings.
type AudioConfig struct {
	// SampleRate is the capture sample rate in Hz.
	SampleRate int `yaml:"sample_rate"`

	// Channels is the capture channel count (1 or 2).
	Channels int `yaml:"channels"`

	// MaxDuration caps a single recording.
	MaxDuration Duration `yaml:"max_duration"`

	// SilenceThreshold is the RMS level below which audio counts as
	// silence, in [0, 1).
	SilenceThreshold float64 `yaml:"silence_threshold"`
}

// EnrichmentConfig points at optional enrichment data files.
type EnrichmentConfig struct {
	// VocabularyPath is an optional personal vocabulary YAML for
	// transcript correction.
	VocabularyPath string `yaml:"vocabulary_path"`

	// LexiconPath is an optional emotion lexicon YAML overriding the
	// built-in word lists.
	LexiconPath string `yaml:"lexicon_path"`
}

// AmbientConfig holds static context recorded into each note's metadata.
// Empty values render as "Unknown".
type AmbientConfig struct {
	Weather  string `yaml:"weather"`
	Location string `yaml:"location"`
}

// PrivacyConfig controls what happens to audio after processing.
type PrivacyConfig struct {
	// DeleteAudioAfterProcessing removes the source recording once its
	// note is written. The archived vault copy is kept.
	DeleteAudioAfterProcessing bool `yaml:"delete_audio_after_processing"`

	// RetentionDays bounds how long archived audio is kept by the cleanup
	// command. 0 keeps it forever.
	RetentionDays int `yaml:"retention_days"`
}

// WatchConfig configures the drop-folder daemon.
type WatchConfig struct {
	// Folder is the directory watched for new recordings. Empty disables
	// the watch command.
	Folder string `yaml:"folder"`

	// Settle is how long a file's size must stay unchanged before it is
	// considered fully written.
	Settle Duration `yaml:"settle"`

	// MoveProcessed moves handled files into done/ and failed/ subfolders
	// instead of leaving them in place.
	MoveProcessed bool `yaml:"move_processed"`

	// HTTPAddr is the listen address for the health and metrics endpoint.
	// Empty disables the HTTP server.
	HTTPAddr string `yaml:"http_addr"`
}

// LoggingConfig controls the structured log output.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`

	// File is an optional path receiving a JSON copy of all log records
	// in addition to stderr.
	File string `yaml:"file"`
}

// applyDefaults fills zero values with the documented defaults. Called by
// the loader before validation.
func applyDefaults(cfg *Config) {
	if cfg.Transcription.Provider == "" {
		cfg.Transcription.Provider = ProviderWhisperNative
	}
	if cfg.Transcription.Language == "" {
		cfg.Transcription.Language = "en"
	}
	if cfg.Vault.DiaryFolder == "" {
		cfg.Vault.DiaryFolder = "diary"
	}
	if cfg.Vault.AttachmentsFolder == "" {
		cfg.Vault.AttachmentsFolder = "attachments/audio"
	}
	if cfg.Audio.SampleRate == 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels == 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Audio.MaxDuration == 0 {
		cfg.Audio.MaxDuration = Duration(5 * time.Minute)
	}
	if cfg.Watch.Settle == 0 {
		cfg.Watch.Settle = Duration(2 * time.Second)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogText
	}
}
