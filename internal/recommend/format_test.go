package recommend

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateDescription(t *testing.T) {
	short := "a short description"
	if got := truncateDescription(short); got != short {
		t.Errorf("short description changed: %q", got)
	}

	long := strings.Repeat("x", descriptionLimit+100)
	got := truncateDescription(long)
	if len(got) != descriptionLimit+3 {
		t.Errorf("truncated length = %d, want %d", len(got), descriptionLimit+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated description missing ellipsis: %q", got[len(got)-10:])
	}
}

func TestTruncateDescriptionRuneBoundary(t *testing.T) {
	// Place a multi-byte rune across the byte cutoff; the cut must back up
	// to the rune start instead of emitting a broken sequence.
	long := strings.Repeat("x", descriptionLimit-1) + "日本語テキスト"
	got := truncateDescription(long)

	if !utf8.ValidString(got) {
		t.Fatalf("truncated description is not valid UTF-8: %q", got[descriptionLimit-8:])
	}
	if len(got) > descriptionLimit+3 {
		t.Errorf("truncated length = %d, exceeds limit", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated description missing ellipsis")
	}
}

func TestPercentageClamps(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{-0.5, 0},
		{0, 0},
		{0.494, 49},
		{0.495, 50},
		{1, 100},
		{1.38, 100}, // boosted scores cap at 100
	}
	for _, tt := range tests {
		if got := Percentage(tt.score); got != tt.want {
			t.Errorf("Percentage(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}
