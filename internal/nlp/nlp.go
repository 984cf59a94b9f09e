// Package nlp wraps the natural-language collaborators the enrichment
// pipeline depends on: sentence segmentation, entity tagging, noun-phrase
// chunking, and fuzzy date resolution.
//
// Everything here is exposed behind narrow interfaces so the pipeline can
// be tested with fakes. The real implementations are explicitly
// constructed service objects; a missing or broken model surfaces as a
// constructor error at startup, never mid-pipeline.
package nlp

import "time"

// Label identifies the semantic category of a recognised entity span.
type Label string

const (
	LabelDate         Label = "date"
	LabelPerson       Label = "person"
	LabelOrganization Label = "organization"
	LabelLocation     Label = "location"
	LabelEvent        Label = "event"
)

// Entity is a span of text tagged with a semantic category.
type Entity struct {
	Text  string
	Label Label
}

// SentenceSplitter segments text into sentences. Implementations never
// fail on malformed text; worst case is a single-sentence result.
type SentenceSplitter interface {
	// Sentences returns the trimmed, non-empty sentences of text in
	// order. Empty input yields an empty slice.
	Sentences(text string) []string
}

// Tagger recognises entity spans and noun phrases in text. Errors indicate
// collaborator failure (a broken model), not malformed input.
type Tagger interface {
	// Entities returns all recognised entity spans, including date-like
	// spans tagged LabelDate. Order follows text position per source but
	// is not guaranteed across sources.
	Entities(text string) ([]Entity, error)

	// NounChunks returns the maximal noun-phrase spans of text.
	NounChunks(text string) ([]string, error)
}

// DateResolver turns a natural-language date mention into a concrete time.
type DateResolver interface {
	// Resolve parses mention relative to ref (for expressions like
	// "yesterday"). ok is false when the mention cannot be parsed; the
	// caller decides whether to keep the unresolved mention.
	Resolve(mention string, ref time.Time) (t time.Time, ok bool)
}
