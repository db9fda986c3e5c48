package scraper

import (
	"strings"
	"testing"
)

func TestTruncateShortText(t *testing.T) {
	text := "Short text that fits."
	if got := Truncate(text, 100); got != text {
		t.Errorf("Expected text unchanged, got: %s", got)
	}
}

func TestTruncateAtSentenceBoundary(t *testing.T) {
	// Period at position 84, inside the 80% window of a 100-char limit
	text := strings.Repeat("a", 84) + "." + strings.Repeat("b", 60)
	got := Truncate(text, 100)

	if len([]rune(got)) != 85 {
		t.Errorf("Expected 85 chars, got: %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("Expected truncation at sentence boundary, got suffix: %q", got[len(got)-5:])
	}
}

func TestTruncateCJKBoundary(t *testing.T) {
	text := strings.Repeat("字", 90) + "。" + strings.Repeat("字", 60)
	got := Truncate(text, 100)

	if !strings.HasSuffix(got, "。") {
		t.Error("Expected truncation at CJK sentence boundary")
	}
	if len([]rune(got)) != 91 {
		t.Errorf("Expected 91 chars, got: %d", len([]rune(got)))
	}
}

func TestTruncateHardCut(t *testing.T) {
	text := strings.Repeat("a", 200)
	got := Truncate(text, 100)

	if !strings.HasSuffix(got, "...") {
		t.Error("Expected ellipsis marker on hard cut")
	}
	if len([]rune(got)) != 103 {
		t.Errorf("Expected 103 chars (100 + ellipsis), got: %d", len([]rune(got)))
	}
}

func TestTruncateIgnoresEarlyBoundary(t *testing.T) {
	// Boundary before 80% of the limit must not win
	text := strings.Repeat("a", 50) + "." + strings.Repeat("b", 100)
	got := Truncate(text, 100)

	if !strings.HasSuffix(got, "...") {
		t.Error("Expected hard cut when the only boundary is before the 80% window")
	}
}

func TestCountWordsLatin(t *testing.T) {
	if got := CountWords("one two  three\nfour"); got != 4 {
		t.Errorf("Expected 4 words, got: %d", got)
	}
}

func TestCountWordsCJK(t *testing.T) {
	if got := CountWords("你好世界"); got != 4 {
		t.Errorf("Expected 4 words for 4 ideographs, got: %d", got)
	}
}

func TestCountWordsMixed(t *testing.T) {
	// 2 Latin tokens + 4 CJK characters
	if got := CountWords("Hello world 你好世界"); got != 6 {
		t.Errorf("Expected 6 words, got: %d", got)
	}
}

func TestCountWordsEmpty(t *testing.T) {
	if got := CountWords(""); got != 0 {
		t.Errorf("Expected 0 words, got: %d", got)
	}
	if got := CountWords("   "); got != 0 {
		t.Errorf("Expected 0 words for whitespace, got: %d", got)
	}
}

func TestCleanText(t *testing.T) {
	if got := CleanText("  a \n\t b   c "); got != "a b c" {
		t.Errorf("Expected 'a b c', got: %q", got)
	}
}
