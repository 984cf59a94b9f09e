// Package vault assembles journal notes into a file-based knowledge
// vault. Notes are date-keyed markdown files, one per calendar day;
// creating a second note on the same day overwrites the first. That is
// the documented policy, not an accident: callers wanting multiple
// same-day entries must key by timestamp at a higher level.
//
// The package owns the audio-archive copy step. It never deletes
// source recordings; privacy-driven deletion belongs to the caller.
package vault

import (
	"time"

	"github.com/birkelund/voxvault/internal/enrich"
)

// dateKeyLayout formats a note's identity key.
const dateKeyLayout = time.DateOnly

// CreateRequest carries the inputs for one note.
type CreateRequest struct {
	Entry *enrich.Entry

	// AudioPath is an optional source recording to archive next to the
	// note. The file is copied, never moved.
	AudioPath string

	// Weather and Location are opaque strings from ambient providers.
	// Empty values render as a placeholder.
	Weather  string
	Location string
}

// NoteResult reports a written note.
type NoteResult struct {
	NotePath string
	DateKey  string

	// AudioFile is the base name of the archived recording, empty when
	// no audio was supplied or the copy failed.
	AudioFile string

	// RelatedKeys are the date keys of preceding entries linked from
	// the note, most recent first.
	RelatedKeys []string

	// ArtifactErr is a *ArtifactCopyError when audio archiving failed.
	// The note itself was still written.
	ArtifactErr error
}
