package nlp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/mingrammer/commonregex"
)

// Compile-time assertion that ProseTagger satisfies Tagger.
var _ Tagger = (*ProseTagger)(nil)

// ProseTagger implements Tagger with a statistical POS/NER model plus
// pattern-based date spans and cue-word heuristics for organisations and
// events. The model's native labels cover people (PERSON) and geopolitical
// places (GPE); the rest is bounded heuristics, not ML.
type ProseTagger struct{}

// NewTagger constructs the tagger and runs one probe document through the
// embedded model so a broken installation fails here, at startup, not
// mid-pipeline.
func NewTagger() (*ProseTagger, error) {
	if _, err := prose.NewDocument("probe"); err != nil {
		return nil, fmt.Errorf("nlp: init tagging model: %w", err)
	}
	return &ProseTagger{}, nil
}

// Entities implements Tagger.
func (t *ProseTagger) Entities(text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("nlp: analyse text: %w", err)
	}

	var ents []Entity
	for _, e := range doc.Entities() {
		switch e.Label {
		case "PERSON":
			ents = append(ents, Entity{Text: e.Text, Label: LabelPerson})
		case "GPE":
			ents = append(ents, Entity{Text: e.Text, Label: LabelLocation})
		}
	}
	ents = append(ents, properNounSpans(doc.Tokens())...)
	ents = append(ents, dateSpans(text)...)
	return ents, nil
}

// NounChunks implements Tagger. Chunking is a light grammar over the POS
// stream: optional determiner or possessive, adjectives, then one or more
// nouns. Trailing modifiers without a head noun are discarded.
func (t *ProseTagger) NounChunks(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("nlp: analyse text: %w", err)
	}

	var (
		chunks  []string
		current []prose.Token
	)
	flush := func() {
		for len(current) > 0 && !isNounTag(current[len(current)-1].Tag) {
			current = current[:len(current)-1]
		}
		if len(current) == 0 {
			return
		}
		words := make([]string, len(current))
		for i, tok := range current {
			words[i] = tok.Text
		}
		chunks = append(chunks, strings.Join(words, " "))
		current = nil
	}

	for _, tok := range doc.Tokens() {
		switch {
		case isNounTag(tok.Tag):
			current = append(current, tok)
		case isModifierTag(tok.Tag):
			// A determiner after a completed noun head starts a new chunk
			// ("the dog the bone" is two chunks, not one).
			if (tok.Tag == "DT" || tok.Tag == "PRP$") &&
				len(current) > 0 && isNounTag(current[len(current)-1].Tag) {
				flush()
			}
			current = append(current, tok)
		default:
			flush()
		}
	}
	flush()
	return chunks, nil
}

func isNounTag(tag string) bool { return strings.HasPrefix(tag, "NN") }

func isModifierTag(tag string) bool {
	switch tag {
	case "DT", "PRP$", "JJ", "JJR", "JJS", "CD":
		return true
	}
	return false
}

// orgSuffixes are lower-cased final words that mark a proper-noun run as
// an organisation.
var orgSuffixes = map[string]struct{}{
	"inc": {}, "corp": {}, "ltd": {}, "llc": {}, "gmbh": {},
	"company": {}, "technologies": {}, "labs": {}, "university": {},
	"institute": {}, "bank": {}, "group": {},
}

// eventCues are lower-cased words anywhere in a proper-noun run that mark
// it as an event.
var eventCues = map[string]struct{}{
	"conference": {}, "festival": {}, "summit": {}, "expo": {},
	"marathon": {}, "olympics": {}, "fair": {}, "meetup": {},
	"hackathon": {}, "concert": {},
}

// properNounSpans extracts organisation and event entities from runs of
// proper-noun tokens using cue words. People and places come from the
// statistical model instead.
func properNounSpans(tokens []prose.Token) []Entity {
	var (
		ents []Entity
		run  []string
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		span := strings.Join(run, " ")
		last := strings.ToLower(strings.Trim(run[len(run)-1], ".,"))
		if _, ok := orgSuffixes[last]; ok {
			ents = append(ents, Entity{Text: span, Label: LabelOrganization})
			run = nil
			return
		}
		for _, w := range run {
			if _, ok := eventCues[strings.ToLower(w)]; ok {
				ents = append(ents, Entity{Text: span, Label: LabelEvent})
				break
			}
		}
		run = nil
	}

	for _, tok := range tokens {
		if strings.HasPrefix(tok.Tag, "NNP") {
			run = append(run, tok.Text)
			continue
		}
		flush()
	}
	flush()
	return ents
}

// relativeDatePattern catches conversational date references the pattern
// library has no entry for.
var relativeDatePattern = regexp.MustCompile(`(?i)\b(?:today|yesterday|tomorrow|tonight|` +
	`(?:last|next|this)\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|week|weekend|month|year)|` +
	`(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)|` +
	`(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?(?:,\s*\d{4})?)\b`)

// dateSpans collects date-like spans from the common pattern library plus
// the relative-date patterns, deduplicated case-insensitively.
func dateSpans(text string) []Entity {
	seen := make(map[string]struct{})
	var ents []Entity
	add := func(matches []string) {
		for _, m := range matches {
			m = strings.TrimSpace(m)
			key := strings.ToLower(m)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			ents = append(ents, Entity{Text: m, Label: LabelDate})
		}
	}
	add(commonregex.DateRegex.FindAllString(text, -1))
	add(relativeDatePattern.FindAllString(text, -1))
	return ents
}
