package audio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

// MicRecorder captures microphone audio through the platform's default
// input device via miniaudio. One Record call owns the device for its full
// duration; concurrent calls contend for the hardware and are not
// supported.
type MicRecorder struct {
	format Format
	log    *slog.Logger
}

var _ Recorder = (*MicRecorder)(nil)

// NewMicRecorder creates a recorder producing 16-bit PCM in the given
// format. The device itself is opened lazily per Record call.
func NewMicRecorder(format Format) *MicRecorder {
	return &MicRecorder{
		format: format,
		log:    slog.With("component", "mic"),
	}
}

// Record implements [Recorder].
func (r *MicRecorder) Record(ctx context.Context, maxDuration time.Duration) (*Clip, error) {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		r.log.Debug("miniaudio", "message", strings.TrimSpace(message))
	})
	if err != nil {
		return nil, fmt.Errorf("audio: init capture context: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatS16
	cfg.Capture.Channels = uint32(r.format.Channels)
	cfg.SampleRate = uint32(r.format.SampleRate)
	cfg.Alsa.NoMMap = 1

	var (
		mu  sync.Mutex
		buf []byte
	)
	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			mu.Lock()
			buf = append(buf, input...)
			mu.Unlock()
		},
	}

	device, err := malgo.InitDevice(mctx.Context, cfg, callbacks)
	if err != nil {
		return nil, fmt.Errorf("audio: open capture device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return nil, fmt.Errorf("audio: start capture: %w", err)
	}
	r.log.Info("recording started", "format", r.format.String())

	if maxDuration > 0 {
		timer := time.NewTimer(maxDuration)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			r.log.Info("max recording duration reached", "max", maxDuration)
		}
	} else {
		<-ctx.Done()
	}

	if err := device.Stop(); err != nil {
		r.log.Warn("stopping capture device", "error", err)
	}

	mu.Lock()
	pcm := buf
	mu.Unlock()
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}

	clip := &Clip{Data: pcm, Format: r.format}
	r.log.Info("recording finished", "duration", clip.Duration().Round(time.Millisecond), "bytes", len(pcm))
	return clip, nil
}
