package enrich

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/birkelund/voxvault/internal/nlp"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?])`)
	spaceAfterPunct  = regexp.MustCompile(`([.,!?])\s+`)
)

// Cleaner normalises transcript whitespace, punctuation spacing and
// sentence-initial capitalisation.
type Cleaner struct {
	splitter nlp.SentenceSplitter
}

// NewCleaner returns a Cleaner using the given sentence splitter.
func NewCleaner(splitter nlp.SentenceSplitter) *Cleaner {
	return &Cleaner{splitter: splitter}
}

// Clean collapses whitespace runs, strips whitespace before .,!? and
// capitalises the first letter of every sentence. Spacing after
// punctuation is only normalised where whitespace already follows, so
// decimals like 3.14 keep their shape. Best effort: malformed
// punctuation never fails.
func (c *Cleaner) Clean(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = spaceAfterPunct.ReplaceAllString(text, "$1 ")

	sentences := c.splitter.Sentences(text)
	if len(sentences) == 0 {
		return text
	}
	for i, s := range sentences {
		sentences[i] = capitalize(s)
	}
	return strings.Join(sentences, " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
