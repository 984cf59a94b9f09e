package enrich

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the positive and negative word sets used for emotion
// scoring. Matching is case-insensitive over whitespace tokens.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// NewLexicon builds a Lexicon from word lists. Words are lower-cased;
// empty strings are ignored.
func NewLexicon(positive, negative []string) *Lexicon {
	return &Lexicon{
		positive: wordSet(positive),
		negative: wordSet(negative),
	}
}

// DefaultLexicon returns the built-in word sets.
func DefaultLexicon() *Lexicon {
	return NewLexicon(
		[]string{"happy", "joy", "excited", "great", "wonderful", "love"},
		[]string{"sad", "angry", "upset", "terrible", "hate", "awful"},
	)
}

// Score counts lexicon hits over the whitespace tokens of text.
// Positive and Negative are hit fractions of the total word count,
// Neutral is the remainder, so the three always sum to 1. Text with no
// words scores {0, 0, 1}.
//
// This is a coarse counting heuristic, not a sentiment classifier.
func (l *Lexicon) Score(text string) Emotion {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return Emotion{Neutral: 1}
	}
	var pos, neg int
	for _, w := range words {
		if _, ok := l.positive[w]; ok {
			pos++
			continue
		}
		if _, ok := l.negative[w]; ok {
			neg++
		}
	}
	total := float64(len(words))
	p := float64(pos) / total
	n := float64(neg) / total
	return Emotion{Positive: p, Negative: n, Neutral: 1 - p - n}
}

// lexiconFile is the YAML shape of a custom lexicon.
type lexiconFile struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// LoadLexicon reads a custom lexicon from a YAML file with `positive`
// and `negative` word lists. Returns a descriptive error if the file
// cannot be opened or parsed.
func LoadLexicon(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("enrich: open lexicon file %q: %w", path, err)
	}
	defer f.Close()

	lex, err := LoadLexiconFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("enrich: parse lexicon file %q: %w", path, err)
	}
	return lex, nil
}

// LoadLexiconFromReader parses lexicon YAML from an [io.Reader].
// The reader is consumed entirely; the caller is responsible for closing it.
func LoadLexiconFromReader(r io.Reader) (*Lexicon, error) {
	var file lexiconFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown keys to catch typos
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("enrich: decode lexicon yaml: %w", err)
	}
	if len(file.Positive) == 0 && len(file.Negative) == 0 {
		return nil, fmt.Errorf("enrich: lexicon has no words")
	}
	return NewLexicon(file.Positive, file.Negative), nil
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
