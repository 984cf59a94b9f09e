package enrich_test

import (
	"errors"
	"testing"
	"time"

	"github.com/birkelund/voxvault/internal/enrich"
	"github.com/birkelund/voxvault/internal/nlp"
)

// fakeTagger returns scripted entities and noun chunks.
type fakeTagger struct {
	ents      []nlp.Entity
	chunks    []string
	entErr    error
	chunksErr error
}

func (f *fakeTagger) Entities(string) ([]nlp.Entity, error) {
	return f.ents, f.entErr
}

func (f *fakeTagger) NounChunks(string) ([]string, error) {
	return f.chunks, f.chunksErr
}

// fakeResolver resolves only the mentions listed in resolved.
type fakeResolver struct {
	resolved map[string]time.Time
}

func (f *fakeResolver) Resolve(mention string, _ time.Time) (time.Time, bool) {
	when, ok := f.resolved[mention]
	return when, ok
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAnnotator_DatesKeptWhenUnresolved(t *testing.T) {
	t.Parallel()

	tagger := &fakeTagger{
		ents: []nlp.Entity{
			{Text: "yesterday", Label: nlp.LabelDate},
			{Text: "the twelfth of never", Label: nlp.LabelDate},
		},
	}
	resolver := &fakeResolver{resolved: map[string]time.Time{
		"yesterday": time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
	}}
	ann := enrich.NewAnnotator(tagger, resolver, nil, fixedClock(time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)))

	got, err := ann.Annotate("some text")
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if len(got.Dates) != 2 {
		t.Fatalf("got %d date mentions, want 2 (unresolved mentions must be kept): %v", len(got.Dates), got.Dates)
	}
	if !got.Dates[0].Resolved {
		t.Errorf("mention %q not resolved, want resolved", got.Dates[0].Text)
	}
	if d := got.Dates[0].When.Day(); d != 9 {
		t.Errorf("resolved day = %d, want 9", d)
	}
	if got.Dates[1].Resolved {
		t.Errorf("mention %q resolved, want kept unresolved", got.Dates[1].Text)
	}
}

func TestAnnotator_Topics(t *testing.T) {
	t.Parallel()

	tagger := &fakeTagger{
		ents: []nlp.Entity{
			{Text: "Sarah", Label: nlp.LabelPerson},
			{Text: "Acme Corp", Label: nlp.LabelOrganization},
			{Text: "yesterday", Label: nlp.LabelDate},
			{Text: "the dentist", Label: nlp.LabelEvent},
		},
		chunks: []string{
			"the dentist",   // duplicate of the event entity
			"it",            // all stopwords, dropped
			"a great movie", // contains non-stopwords, kept
			"the dentist",   // exact duplicate, dropped
		},
	}
	ann := enrich.NewAnnotator(tagger, &fakeResolver{}, nil, fixedClock(time.Now()))

	got, err := ann.Annotate("whatever")
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	want := map[string]bool{
		"the dentist":   true,
		"a great movie": true,
		"Sarah":         true,
		"Acme Corp":     true,
	}
	if len(got.Topics) != len(want) {
		t.Fatalf("Topics = %v, want the %d distinct entries %v", got.Topics, len(want), want)
	}
	for _, topic := range got.Topics {
		if !want[topic] {
			t.Errorf("unexpected topic %q", topic)
		}
	}
}

func TestAnnotator_TaggerFaultPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("model exploded")
	ann := enrich.NewAnnotator(&fakeTagger{entErr: boom}, &fakeResolver{}, nil, nil)

	_, err := ann.Annotate("text")
	if !errors.Is(err, boom) {
		t.Errorf("Annotate() error = %v, want wrapped %v", err, boom)
	}
}

func TestAnnotator_EmotionUsesLexicon(t *testing.T) {
	t.Parallel()

	lex := enrich.NewLexicon([]string{"stellar"}, []string{"dreadful"})
	ann := enrich.NewAnnotator(&fakeTagger{}, &fakeResolver{}, lex, nil)

	got, err := ann.Annotate("stellar stellar dreadful pause")
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if got.Emotion.Positive != 0.5 || got.Emotion.Negative != 0.25 {
		t.Errorf("Emotion = %+v, want positive 0.5 negative 0.25", got.Emotion)
	}
}
