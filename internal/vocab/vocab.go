// Package vocab corrects misheard domain words in transcripts against a
// user-supplied vocabulary of canonical terms (names, places, jargon).
//
// Matching is two-stage: Double Metaphone codes filter phonetic
// candidates, then Jaro-Winkler similarity ranks them against a
// threshold. Multi-word terms are matched through n-gram windows over
// the transcript, longest window first. Replacement preserves the
// surrounding punctuation of the original tokens.
package vocab

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary is a list of canonical terms the corrector may substitute
// into a transcript.
type Vocabulary struct {
	Terms []string `yaml:"terms"`
}

// LoadVocabulary reads a vocabulary YAML file from disk.
func LoadVocabulary(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: open vocabulary file %q: %w", path, err)
	}
	defer f.Close()

	v, err := LoadVocabularyFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("vocab: parse vocabulary file %q: %w", path, err)
	}
	return v, nil
}

// LoadVocabularyFromReader parses vocabulary YAML from an [io.Reader].
// The reader is consumed entirely; the caller is responsible for closing it.
func LoadVocabularyFromReader(r io.Reader) (*Vocabulary, error) {
	var v Vocabulary
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown keys to catch typos
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("vocab: decode vocabulary yaml: %w", err)
	}

	var terms []string
	for _, t := range v.Terms {
		if strings.TrimSpace(t) != "" {
			terms = append(terms, strings.TrimSpace(t))
		}
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("vocab: vocabulary has no terms")
	}
	v.Terms = terms
	return &v, nil
}
