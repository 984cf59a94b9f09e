package vocab

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// term is one prepared vocabulary entry: the canonical spelling plus
// precomputed lower-cased tokens and phonetic codes.
type term struct {
	canonical string
	lower     string
	tokens    []string
	codes     map[string]struct{}
}

// matcher ranks vocabulary terms against a spoken phrase. It is
// read-only after construction and safe for concurrent use.
type matcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
	terms             []term
	maxWords          int
}

func newMatcher(canonical []string, phoneticThreshold, fuzzyThreshold float64) *matcher {
	m := &matcher{
		phoneticThreshold: phoneticThreshold,
		fuzzyThreshold:    fuzzyThreshold,
	}
	for _, c := range canonical {
		lower := strings.ToLower(strings.TrimSpace(c))
		if lower == "" {
			continue
		}
		tokens := strings.Fields(lower)
		m.terms = append(m.terms, term{
			canonical: strings.TrimSpace(c),
			lower:     lower,
			tokens:    tokens,
			codes:     codesForTokens(tokens),
		})
		if len(tokens) > m.maxWords {
			m.maxWords = len(tokens)
		}
	}
	return m
}

// match finds the vocabulary term most phonetically similar to phrase.
// phrase may be a single word or a space-separated n-gram. When matched
// is false, corrected equals phrase unchanged and confidence is 0.
//
// Phonetic candidates (Double Metaphone code overlap) are ranked by
// Jaro-Winkler and accepted above phoneticThreshold; a pure similarity
// fallback applies the stricter fuzzyThreshold when no phonetic
// candidate exists.
func (m *matcher) match(phrase string) (corrected string, confidence float64, matched bool) {
	phraseLower := strings.ToLower(strings.TrimSpace(phrase))
	if phraseLower == "" || len(m.terms) == 0 {
		return phrase, 0, false
	}
	phraseTokens := strings.Fields(phraseLower)
	phraseCodes := codesForTokens(phraseTokens)

	type candidate struct {
		term     string
		score    float64
		phonetic bool
	}
	var best candidate

	for _, t := range m.terms {
		jwScore := bestJWScore(phraseTokens, t.tokens, phraseLower, t.lower)

		if codesOverlap(phraseCodes, t.codes) {
			if jwScore >= m.phoneticThreshold {
				if !best.phonetic || jwScore > best.score {
					best = candidate{term: t.canonical, score: jwScore, phonetic: true}
				}
			}
		} else if !best.phonetic {
			if jwScore >= m.fuzzyThreshold && jwScore > best.score {
				best = candidate{term: t.canonical, score: jwScore, phonetic: false}
			}
		}
	}

	if best.term != "" {
		return best.term, best.score, true
	}
	return phrase, 0, false
}

// codesForTokens returns the union of the Double Metaphone codes of the
// given tokens. Empty codes are excluded.
func codesForTokens(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

// codesOverlap reports whether the two code sets share at least one code.
func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// bestJWScore computes the highest Jaro-Winkler similarity between the
// phrase and the term: full strings, space-stripped strings, and the
// best pairwise token score. The last strategy covers one spoken word
// standing in for one word of a multi-word term.
func bestJWScore(phraseTokens, termTokens []string, phraseFull, termFull string) float64 {
	score := matchr.JaroWinkler(phraseFull, termFull, false)

	if len(phraseTokens) > 1 || len(termTokens) > 1 {
		concatPhrase := strings.Join(phraseTokens, "")
		concatTerm := strings.Join(termTokens, "")
		if s := matchr.JaroWinkler(concatPhrase, concatTerm, false); s > score {
			score = s
		}
	}

	for _, pt := range phraseTokens {
		for _, tt := range termTokens {
			if s := matchr.JaroWinkler(pt, tt, false); s > score {
				score = s
			}
		}
	}
	return score
}
