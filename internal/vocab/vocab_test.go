package vocab_test

import (
	"strings"
	"testing"

	"github.com/birkelund/voxvault/internal/vocab"
)

func TestLoadVocabularyFromReader(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		v, err := vocab.LoadVocabularyFromReader(strings.NewReader(
			"terms:\n  - Sarah\n  - Lake Tahoe\n  - \"  \"\n"))
		if err != nil {
			t.Fatalf("LoadVocabularyFromReader() error = %v", err)
		}
		if len(v.Terms) != 2 {
			t.Errorf("Terms = %v, want blank entries dropped", v.Terms)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()
		_, err := vocab.LoadVocabularyFromReader(strings.NewReader("words:\n  - Sarah\n"))
		if err == nil {
			t.Fatal("LoadVocabularyFromReader() accepted unknown key, want error")
		}
	})

	t.Run("empty rejected", func(t *testing.T) {
		t.Parallel()
		_, err := vocab.LoadVocabularyFromReader(strings.NewReader("terms: []\n"))
		if err == nil {
			t.Fatal("LoadVocabularyFromReader() accepted empty vocabulary, want error")
		}
	})
}

func TestLoadVocabulary_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := vocab.LoadVocabulary("/nonexistent/vocab.yaml"); err == nil {
		t.Fatal("LoadVocabulary() on missing file returned nil error")
	}
}
