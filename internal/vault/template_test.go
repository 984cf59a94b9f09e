package vault

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{0, "0s"},
		{65 * time.Second, "1m 5s"},
		{time.Hour + time.Minute + 5*time.Second, "1h 1m 5s"},
		{2*time.Hour + 30*time.Second, "2h 0m 30s"},
		{1500 * time.Millisecond, "2s"},
		{-3 * time.Second, "0s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRelatedBlock(t *testing.T) {
	t.Parallel()

	if got := relatedBlock(nil); got != "No recent entries" {
		t.Errorf("relatedBlock(nil) = %q", got)
	}
	got := relatedBlock([]string{"2024-03-09", "2024-03-07"})
	want := "- [[2024-03-09]]\n- [[2024-03-07]]"
	if got != want {
		t.Errorf("relatedBlock() = %q, want %q", got, want)
	}
}

func TestAudioBlock(t *testing.T) {
	t.Parallel()

	if got := audioBlock(""); got != "No audio recording" {
		t.Errorf("audioBlock(\"\") = %q", got)
	}
	if got := audioBlock("diary_1710000000000.wav"); got != "![[diary_1710000000000.wav]]" {
		t.Errorf("audioBlock() = %q", got)
	}
}

func TestOrPlaceholder(t *testing.T) {
	t.Parallel()

	if got := orPlaceholder(""); got != "Unknown" {
		t.Errorf("orPlaceholder(\"\") = %q", got)
	}
	if got := orPlaceholder("  "); got != "Unknown" {
		t.Errorf("orPlaceholder(blank) = %q", got)
	}
	if got := orPlaceholder("Sunny, 18C"); got != "Sunny, 18C" {
		t.Errorf("orPlaceholder() = %q", got)
	}
}
