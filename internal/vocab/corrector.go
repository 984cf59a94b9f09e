package vocab

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Option is a functional option for configuring a [Corrector].
type Option func(*Corrector)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for
// a phonetically-matched term to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(c *Corrector) {
		c.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when
// no phonetic match is found and matching falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(c *Corrector) {
		c.fuzzyThreshold = threshold
	}
}

// Correction records one substitution made in a transcript.
type Correction struct {
	Original   string
	Corrected  string
	Confidence float64
}

// Corrector replaces misheard words in a transcript with canonical
// vocabulary terms. Safe for concurrent use after construction.
type Corrector struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
	matcher           *matcher
}

// NewCorrector builds a Corrector over the vocabulary's terms.
func NewCorrector(vocab *Vocabulary, opts ...Option) *Corrector {
	c := &Corrector{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(c)
	}
	var terms []string
	if vocab != nil {
		terms = vocab.Terms
	}
	c.matcher = newMatcher(terms, c.phoneticThreshold, c.fuzzyThreshold)
	return c
}

// Correct tokenises text into whitespace words and tests n-gram windows
// (up to the longest vocabulary term, longest window first) against the
// vocabulary. Matched windows are replaced by the canonical term with
// the original window's leading and trailing punctuation re-attached;
// an all-lowercase term inherits a leading capital from the original.
// The untouched text and no corrections are returned when the
// vocabulary is empty.
func (c *Corrector) Correct(text string) (string, []Correction) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 || c.matcher.maxWords == 0 {
		return text, nil
	}

	var (
		output      []string
		corrections []Correction
	)

	i := 0
	for i < len(tokens) {
		maxN := min(c.matcher.maxWords, len(tokens)-i)

		matched := false
		for n := maxN; n >= 1; n-- {
			window := tokens[i : i+n]
			lead, core, trail := stripWindow(window)
			if core == "" {
				continue
			}

			term, conf, ok := c.matcher.match(core)
			if !ok {
				continue
			}

			replacement := lead + applyCase(core, term) + trail
			original := strings.Join(window, " ")
			output = append(output, strings.Fields(replacement)...)
			if replacement != original {
				corrections = append(corrections, Correction{
					Original:   original,
					Corrected:  replacement,
					Confidence: conf,
				})
			}
			i += n
			matched = true
			break
		}

		if !matched {
			output = append(output, tokens[i])
			i++
		}
	}

	if len(corrections) > 0 {
		slog.Debug("vocab: transcript corrected", "corrections", len(corrections))
	}
	return strings.Join(output, " "), corrections
}

// stripWindow splits an n-gram window into the leading punctuation of
// its first token, the inner phrase, and the trailing punctuation of
// its last token. Inner tokens are left untouched; punctuation inside
// the window simply fails to match.
func stripWindow(window []string) (lead, core, trail string) {
	first := window[0]
	last := window[len(window)-1]

	firstCore := first
	for firstCore != "" {
		r, size := utf8.DecodeRuneInString(firstCore)
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			break
		}
		lead += firstCore[:size]
		firstCore = firstCore[size:]
	}

	lastCore := last
	for lastCore != "" {
		r, size := utf8.DecodeLastRuneInString(lastCore)
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			break
		}
		trail = lastCore[len(lastCore)-size:] + trail
		lastCore = lastCore[:len(lastCore)-size]
	}

	if len(window) == 1 {
		// Single token: both trims apply to the same string.
		core = firstCore
		if len(trail) > 0 && len(core) >= len(trail) && strings.HasSuffix(core, trail) {
			core = core[:len(core)-len(trail)]
		}
		return lead, core, trail
	}

	parts := make([]string, len(window))
	parts[0] = firstCore
	copy(parts[1:], window[1:])
	parts[len(parts)-1] = lastCore
	return lead, strings.Join(parts, " "), trail
}

// applyCase keeps canonical capitalization except when the term is all
// lowercase and the spoken word opened with a capital (sentence start).
func applyCase(original, term string) string {
	if term != strings.ToLower(term) {
		return term
	}
	r, _ := utf8.DecodeRuneInString(original)
	if !unicode.IsUpper(r) {
		return term
	}
	first, size := utf8.DecodeRuneInString(term)
	if first == utf8.RuneError {
		return term
	}
	return string(unicode.ToUpper(first)) + term[size:]
}
