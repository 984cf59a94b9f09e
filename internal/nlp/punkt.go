package nlp

import (
	"fmt"
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// Compile-time assertion that PunktSplitter satisfies SentenceSplitter.
var _ SentenceSplitter = (*PunktSplitter)(nil)

// PunktSplitter segments text with a Punkt sentence tokenizer trained on
// English. Punkt handles abbreviations ("Dr.", "e.g.") and decimal points
// far better than naive punctuation splitting.
type PunktSplitter struct {
	tok *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter loads the embedded English training data. The load
// happens once; the returned splitter is safe for concurrent use.
func NewPunktSplitter() (*PunktSplitter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("nlp: load punkt training data: %w", err)
	}
	return &PunktSplitter{tok: tok}, nil
}

// Sentences implements SentenceSplitter.
func (s *PunktSplitter) Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw := s.tok.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, sent := range raw {
		t := strings.TrimSpace(sent.Text)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
