package enrich

import "fmt"

// EnrichmentError reports a failed NLP sub-step. CleanedText preserves
// the normalised input so callers can retry enrichment without paying
// for transcription again.
type EnrichmentError struct {
	CleanedText string
	Err         error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrich: pipeline failed: %v", e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}
