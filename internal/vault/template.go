package vault

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultTemplate is the built-in note layout. A custom template may
// replace it fully as long as it only references the same named fields:
// date, time, duration, mood, topics, word_count, weather, location,
// content, related_entries, audio_link.
const DefaultTemplate = `# Diary Entry - {{.date}}

## Metadata
- **Time:** {{.time}}
- **Duration:** {{.duration}}
- **Mood:** {{.mood}}
- **Topics:** {{.topics}}
- **Word Count:** {{.word_count}}
- **Weather:** {{.weather}}
- **Location:** {{.location}}

## Content

{{.content}}

## Related Entries

{{.related_entries}}

## Audio Recording

{{.audio_link}}
`

// unknownPlaceholder renders for absent ambient data.
const unknownPlaceholder = "Unknown"

// LoadTemplate reads a custom note template from disk.
func LoadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("vault: read template %q: %w", path, err)
	}
	return string(data), nil
}

// templateFields builds the substitution map for one note.
func (a *Assembler) templateFields(req CreateRequest, key string, now time.Time, related []string, audioName string) map[string]any {
	return map[string]any{
		"date":            key,
		"time":            now.Format("15:04"),
		"duration":        formatDuration(req.Entry.Duration),
		"mood":            req.Entry.Emotion.Dominant(),
		"topics":          strings.Join(req.Entry.Topics, ", "),
		"word_count":      req.Entry.Stats.WordCount,
		"weather":         orPlaceholder(req.Weather),
		"location":        orPlaceholder(req.Location),
		"content":         strings.Join(req.Entry.Paragraphs, "\n\n"),
		"related_entries": relatedBlock(related),
		"audio_link":      audioBlock(audioName),
	}
}

// relatedBlock renders wiki-style links to earlier entries.
func relatedBlock(keys []string) string {
	if len(keys) == 0 {
		return "No recent entries"
	}
	lines := make([]string, len(keys))
	for i, key := range keys {
		lines[i] = fmt.Sprintf("- [[%s]]", key)
	}
	return strings.Join(lines, "\n")
}

// audioBlock renders the embedded audio reference.
func audioBlock(name string) string {
	if name == "" {
		return "No audio recording"
	}
	return fmt.Sprintf("![[%s]]", name)
}

// formatDuration humanizes a recording length: "1h 1m 5s", "1m 5s" or
// "45s".
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownPlaceholder
	}
	return s
}
