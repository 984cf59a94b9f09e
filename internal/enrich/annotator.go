package enrich

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/birkelund/voxvault/internal/nlp"
)

// Annotator extracts date mentions, topic phrases and an emotion
// estimate from cleaned text.
type Annotator struct {
	tagger   nlp.Tagger
	resolver nlp.DateResolver
	lexicon  *Lexicon
	now      func() time.Time
}

// NewAnnotator builds an Annotator around the given NLP collaborators.
// A nil lexicon falls back to [DefaultLexicon]; a nil clock falls back
// to [time.Now]. The clock anchors relative date mentions such as
// "yesterday".
func NewAnnotator(tagger nlp.Tagger, resolver nlp.DateResolver, lexicon *Lexicon, now func() time.Time) *Annotator {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	if now == nil {
		now = time.Now
	}
	return &Annotator{tagger: tagger, resolver: resolver, lexicon: lexicon, now: now}
}

// Annotation is the result of one Annotate call.
type Annotation struct {
	Dates   []DateMention
	Topics  []string
	Emotion Emotion
}

// Annotate runs date, topic and emotion extraction over cleaned text.
// Malformed text degrades to empty results; only collaborator faults
// return an error.
func (a *Annotator) Annotate(text string) (*Annotation, error) {
	ents, err := a.tagger.Entities(text)
	if err != nil {
		return nil, fmt.Errorf("enrich: tag entities: %w", err)
	}
	chunks, err := a.tagger.NounChunks(text)
	if err != nil {
		return nil, fmt.Errorf("enrich: extract noun chunks: %w", err)
	}

	ref := a.now()
	var dates []DateMention
	seen := make(map[string]struct{})
	for _, e := range ents {
		if e.Label != nlp.LabelDate {
			continue
		}
		if _, dup := seen[e.Text]; dup {
			continue
		}
		seen[e.Text] = struct{}{}
		when, ok := a.resolver.Resolve(e.Text, ref)
		dates = append(dates, DateMention{Text: e.Text, When: when, Resolved: ok})
	}

	return &Annotation{
		Dates:   dates,
		Topics:  collectTopics(chunks, ents),
		Emotion: a.lexicon.Score(text),
	}, nil
}

// collectTopics keeps noun chunks containing at least one non-stopword
// and adds person, organisation, location and event entities. Duplicates
// are removed by exact string match and the result is sorted so note
// rendering is deterministic.
func collectTopics(chunks []string, ents []nlp.Entity) []string {
	seen := make(map[string]struct{})
	var topics []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		topics = append(topics, s)
	}

	for _, chunk := range chunks {
		if allStopWords(chunk) {
			continue
		}
		add(chunk)
	}
	for _, e := range ents {
		switch e.Label {
		case nlp.LabelPerson, nlp.LabelOrganization, nlp.LabelLocation, nlp.LabelEvent:
			add(e.Text)
		}
	}
	sort.Strings(topics)
	return topics
}

func allStopWords(chunk string) bool {
	words := strings.Fields(chunk)
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		if !nlp.IsStopWord(w) {
			return false
		}
	}
	return true
}
