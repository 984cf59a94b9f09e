package enrich

import (
	"strings"

	"github.com/birkelund/voxvault/internal/nlp"
)

// sentencesPerParagraph is the fixed grouping size for paragraphs.
const sentencesPerParagraph = 3

// Segmenter groups sentences into fixed-size paragraphs.
type Segmenter struct {
	splitter nlp.SentenceSplitter
}

// NewSegmenter returns a Segmenter using the given sentence splitter.
func NewSegmenter(splitter nlp.SentenceSplitter) *Segmenter {
	return &Segmenter{splitter: splitter}
}

// Paragraphs tokenizes cleaned text into sentences and groups them.
// Zero sentences means zero paragraphs, not an error.
func (s *Segmenter) Paragraphs(cleaned string) []string {
	return s.Group(s.splitter.Sentences(cleaned))
}

// Group joins each consecutive run of three sentences into one
// paragraph, in source order. A trailing run of one or two sentences
// becomes the final paragraph.
func (s *Segmenter) Group(sentences []string) []string {
	if len(sentences) == 0 {
		return nil
	}
	paragraphs := make([]string, 0, (len(sentences)+sentencesPerParagraph-1)/sentencesPerParagraph)
	for start := 0; start < len(sentences); start += sentencesPerParagraph {
		end := min(start+sentencesPerParagraph, len(sentences))
		paragraphs = append(paragraphs, strings.Join(sentences[start:end], " "))
	}
	return paragraphs
}
