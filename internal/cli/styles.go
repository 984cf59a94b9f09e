package cli

import "github.com/charmbracelet/lipgloss"

// Styles for terminal output. Kept minimal: titles, labels, and the
// mood colors used by history.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")) // cyan

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // gray

	pathStyle = lipgloss.NewStyle().
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")) // red

	moodStyles = map[string]lipgloss.Style{
		"Positive": lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
		"Negative": lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // red
		"Neutral":  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // gray
	}
)

// renderMood colors a mood label, falling back to plain text for
// unknown labels.
func renderMood(mood string) string {
	if style, ok := moodStyles[mood]; ok {
		return style.Render(mood)
	}
	return mood
}
