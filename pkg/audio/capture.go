package audio

import (
	"context"
	"time"
)

// Recorder captures audio from an input device into a complete Clip.
// Implementations block until capture finishes; cancel ctx to stop early.
type Recorder interface {
	// Record captures until ctx is cancelled or maxDuration elapses,
	// whichever comes first. maxDuration <= 0 means no time limit, in
	// which case ctx cancellation is the only way to stop.
	Record(ctx context.Context, maxDuration time.Duration) (*Clip, error)
}
