package tui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown_Headers(t *testing.T) {
	input := "## Section\n\nBody text here."
	result := renderMarkdown(input, 80)
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("renderMarkdown output contains no ANSI sequences, glamour did not render: %q", result)
	}
	if !strings.Contains(result, "Section") {
		t.Errorf("renderMarkdown dropped header text: %q", result)
	}
}

func TestRenderMarkdown_ZeroWidth(t *testing.T) {
	result := renderMarkdown("## Header\n\nBody.", 0)
	if result == "" {
		t.Error("renderMarkdown returned empty string for zero-width fallback")
	}
}

func TestRenderMarkdown_NegativeWidth(t *testing.T) {
	input := "## Header"
	result := renderMarkdown(input, -6)
	if result != input {
		t.Errorf("expected raw string fallback, got %q", result)
	}
}

func TestRenderMarkdown_TrailingNewlineStripped(t *testing.T) {
	result := renderMarkdown("## Header\n\nBody.", 80)
	if strings.HasSuffix(result, "\n") {
		t.Errorf("renderMarkdown output has trailing newline: %q", result)
	}
}

func TestHelpMentionsEveryListKey(t *testing.T) {
	result := renderMarkdown(helpMarkdown, 100)
	for _, want := range []string{"complete", "Clear", "Sort", "Upcoming"} {
		if !strings.Contains(result, want) {
			t.Errorf("help missing %q", want)
		}
	}
}
