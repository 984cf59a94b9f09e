package stt

import "time"

// Request carries one complete utterance to a Provider.
type Request struct {
	// Samples is mono float32 PCM normalised to [-1, 1]. Use
	// audio.Clip.Samples or audio.PCMToFloat32Mono to produce it.
	Samples []float32

	// SampleRate is the rate of Samples in Hz. Whisper models expect 16000.
	SampleRate int

	// Language is the ISO 639-1 recognition language (e.g. "en"). Empty
	// lets the provider auto-detect where supported.
	Language string

	// Temperature adjusts decoding randomness. 0 selects the provider's
	// deterministic default.
	Temperature float32

	// InitialPrompt biases recognition towards the given vocabulary or
	// style. Providers without prompt support ignore it.
	InitialPrompt string
}

// AudioDuration returns the play time represented by Samples.
func (r Request) AudioDuration() time.Duration {
	if r.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(r.Samples)) * time.Second / time.Duration(r.SampleRate)
}

// Segment is one recognised span of speech with its timing relative to the
// start of the audio.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Result is the outcome of one Transcribe call.
type Result struct {
	// Text is the full transcript with segments joined by single spaces.
	Text string

	// Segments holds per-span timing when the backend provides it. May be
	// empty for backends that only return flat text.
	Segments []Segment

	// Duration is the length of the transcribed audio.
	Duration time.Duration

	// Language is the language the backend recognised or was told to use.
	Language string

	// Model identifies the model that produced the transcript.
	Model string
}
