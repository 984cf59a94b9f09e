// Package audio provides the PCM plumbing for the recording and
// transcription path: a RIFF/WAV codec, format converters, silence
// trimming, and a microphone recorder.
//
// All PCM buffers in this package are 16-bit signed little-endian unless
// a function says otherwise. Speech-to-text providers consume mono
// float32 samples in [-1, 1]; Clip.Samples produces them.
package audio

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoAudio is returned when a capture or decode produced zero samples.
var ErrNoAudio = errors.New("audio: no audio data")

const bitsPerSample = 16

// Format describes the sample rate and channel count of a PCM buffer.
type Format struct {
	SampleRate int
	Channels   int
}

// String returns a human-readable form such as "16000Hz mono".
func (f Format) String() string {
	ch := "mono"
	if f.Channels == 2 {
		ch = "stereo"
	} else if f.Channels > 2 {
		ch = fmt.Sprintf("%dch", f.Channels)
	}
	return fmt.Sprintf("%dHz %s", f.SampleRate, ch)
}

// Clip is a complete buffer of 16-bit signed little-endian PCM audio.
type Clip struct {
	Data   []byte
	Format Format
}

// Duration returns the play time of the clip. Returns 0 for invalid formats.
func (c *Clip) Duration() time.Duration {
	if c.Format.SampleRate <= 0 || c.Format.Channels <= 0 {
		return 0
	}
	bytesPerSec := c.Format.SampleRate * c.Format.Channels * (bitsPerSample / 8)
	return time.Duration(len(c.Data)) * time.Second / time.Duration(bytesPerSec)
}

// Samples converts the clip to mono float32 samples normalised to [-1, 1],
// the input format expected by speech-to-text providers. Multi-channel
// clips are down-mixed by averaging.
func (c *Clip) Samples() []float32 {
	return PCMToFloat32Mono(c.Data, c.Format.Channels)
}

// Resampled returns a mono clip at the given rate, converting channels and
// sample rate as needed. The receiver is returned unchanged when it already
// matches.
func (c *Clip) Resampled(rate int) *Clip {
	if c.Format.SampleRate == rate && c.Format.Channels == 1 {
		return c
	}
	pcm := c.Data
	if c.Format.Channels == 2 {
		pcm = StereoToMono(pcm)
	}
	pcm = ResampleMono16(pcm, c.Format.SampleRate, rate)
	return &Clip{Data: pcm, Format: Format{SampleRate: rate, Channels: 1}}
}
