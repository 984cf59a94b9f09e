package vault

import "fmt"

// StorageError reports a failed note write. Fatal for the call.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("vault: storage failure at %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ArtifactCopyError reports a failed audio archive copy. Non-fatal: the
// note is written regardless and the error is carried in
// [NoteResult.ArtifactErr].
type ArtifactCopyError struct {
	Source string
	Dest   string
	Err    error
}

func (e *ArtifactCopyError) Error() string {
	return fmt.Sprintf("vault: copy audio %s to %s: %v", e.Source, e.Dest, e.Err)
}

func (e *ArtifactCopyError) Unwrap() error {
	return e.Err
}
