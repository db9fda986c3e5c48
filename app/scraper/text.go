package scraper

import (
	"strings"
	"unicode"
)

var sentenceBoundaries = map[rune]bool{
	'.': true,
	'!': true,
	'?': true,
	'。': true,
	'！': true,
	'？': true,
}

// CleanText collapses runs of whitespace into single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate cuts text to at most maxLength characters, preferring the last
// sentence boundary found past 80% of the limit. When no boundary exists in
// that window the text is hard-cut and an ellipsis marker appended.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	window := runes[:maxLength]
	minCut := maxLength * 8 / 10
	for i := maxLength - 1; i >= minCut; i-- {
		if sentenceBoundaries[window[i]] {
			return string(window[:i+1])
		}
	}

	return string(window) + "..."
}

// CountWords counts CJK ideographs as individual words and Latin-script runs
// split on whitespace.
func CountWords(text string) int {
	cjk := 0
	var latin strings.Builder
	latin.Grow(len(text))

	for _, r := range text {
		if isCJK(r) {
			cjk++
			latin.WriteRune(' ')
		} else {
			latin.WriteRune(r)
		}
	}

	return cjk + len(strings.Fields(latin.String()))
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
