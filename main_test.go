//go:build !gui

package main

import (
	"strings"
	"testing"

	"github.com/ferduque/fasty/internal/engine"
	"github.com/ferduque/fasty/internal/text"
)

func TestAnchorORPLine(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		width   int
		wantPad int
	}{
		// The focus rune should land at width/2, so padding is
		// width/2 minus the rune length of the before segment.
		{"simple word", "world", 80, 39}, // ORP 1, before "w"
		{"longer word", "information", 80, 37},
		{"single char", "I", 80, 40},
		{"narrow terminal", "extraordinary", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := engine.Snapshot{Split: text.SplitORP(tt.word)}
			line := anchorORPLine(snap, tt.width)

			pad := 0
			for _, r := range line {
				if r != ' ' {
					break
				}
				pad++
			}
			if pad != tt.wantPad {
				t.Errorf("padding = %d, want %d", pad, tt.wantPad)
			}
			if !strings.Contains(stripANSI(line), tt.word) {
				t.Errorf("line %q does not contain %q", line, tt.word)
			}
		})
	}
}

func TestAnchorORPLineBlank(t *testing.T) {
	if got := anchorORPLine(engine.Snapshot{}, 80); got != "" {
		t.Errorf("blank split rendered %q, want empty", got)
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		termWidth int
		expected  int
	}{
		{80, 30},
		{120, 30},
		{60, 20},
		{40, 10},
		{10, 10},
	}

	for _, tt := range tests {
		if got := barWidth(tt.termWidth); got != tt.expected {
			t.Errorf("barWidth(%d) = %d, want %d", tt.termWidth, got, tt.expected)
		}
	}
}

// stripANSI removes escape sequences so tests can match plain text.
func stripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
