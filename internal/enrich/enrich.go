// Package enrich turns raw speech-to-text transcripts into structured
// journal entries: normalised text, paragraph structure, date mentions,
// topic phrases and a coarse emotion estimate.
//
// Topic and emotion extraction are deliberately bounded heuristics
// (lexicon counting and part-of-speech patterns), not classifiers.
// All NLP collaborators are injected so the pipeline can run against
// fakes in tests.
package enrich

import (
	"time"
)

// DateMention is a date-like span found in the text. Mentions whose
// fuzzy parse fails are kept with Resolved false rather than dropped,
// so the mention set always reflects what was said.
type DateMention struct {
	Text     string
	When     time.Time
	Resolved bool
}

// Emotion is a lexicon-based mood estimate. Positive, Negative and
// Neutral each lie in [0,1] and sum to 1 whenever the scored text has
// at least one word.
type Emotion struct {
	Positive float64
	Negative float64
	Neutral  float64
}

// Dominant returns "Positive", "Negative" or "Neutral" for the highest
// scoring class. Ties resolve to Neutral.
func (e Emotion) Dominant() string {
	if e.Positive > e.Negative && e.Positive > e.Neutral {
		return "Positive"
	}
	if e.Negative > e.Positive && e.Negative > e.Neutral {
		return "Negative"
	}
	return "Neutral"
}

// Stats holds word, sentence and paragraph counts of the cleaned text.
type Stats struct {
	WordCount      int
	SentenceCount  int
	ParagraphCount int
}

// Entry is the enriched form of one transcript. It is immutable once
// produced by the pipeline.
type Entry struct {
	OriginalText string
	CleanedText  string
	Paragraphs   []string
	Dates        []DateMention
	Topics       []string
	Emotion      Emotion
	Stats        Stats

	// Carried through from the transcription result.
	Duration time.Duration
	Language string
	Model    string
}
