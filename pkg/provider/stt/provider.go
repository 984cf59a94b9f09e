// Package stt defines the Provider interface for speech-to-text backends.
//
// An STT provider wraps a transcription engine (a local whisper.cpp model,
// a whisper.cpp server, or a hosted API) behind a uniform batch contract:
// a complete buffer of audio samples in, a transcript with timing out.
// Providers do not retry; a transcription error is surfaced verbatim and
// the caller decides what to do with it.
//
// Implementations must be safe for concurrent use. One Transcribe call is
// independent of any other.
package stt

import "context"

// Provider is the abstraction over any speech-to-text backend.
type Provider interface {
	// Name returns the provider's registry name, e.g. "whisper-native".
	Name() string

	// Transcribe runs speech recognition over the complete audio buffer in
	// req and blocks until the transcript is ready or ctx is cancelled.
	// The returned Result is never nil on a nil error.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}
