package analyzer

import (
	"strings"
	"unicode"

	"github.com/lukashev/linkstash/app/scraper"
)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "your": true,
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"was": true, "what": true, "when": true, "how": true, "why": true,
	"will": true, "about": true, "into": true, "more": true, "than": true,
	"its": true, "their": true, "they": true, "them": true, "has": true,
	"www": true, "http": true, "https": true, "com": true, "html": true,
}

// heuristicCategory classifies by keyword-matching the title and description
// against the per-category keyword table, then the URL when that misses, and
// finally falls back to the configured default category.
func heuristicCategory(content *scraper.Content, categoryNames []string, keywords map[string][]string, fallback string) string {
	text := strings.ToLower(content.Title + " " + content.Description)
	if category := matchKeywords(text, categoryNames, keywords); category != "" {
		return category
	}
	if category := matchKeywords(strings.ToLower(content.URL), categoryNames, keywords); category != "" {
		return category
	}
	return fallback
}

// matchKeywords returns the category with the most keyword hits, earlier
// categories winning ties. Empty result means no keyword matched.
func matchKeywords(text string, categoryNames []string, keywords map[string][]string) string {
	best := ""
	bestScore := 0

	for _, name := range categoryNames {
		score := 0
		for _, keyword := range keywords[name] {
			if keyword != "" && strings.Contains(text, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > bestScore {
			best = name
			bestScore = score
		}
	}

	return best
}

// heuristicTags tokenizes title and description, drops stopwords and keeps
// the first five unique tokens of reasonable length.
func heuristicTags(content *scraper.Content) []string {
	text := content.Title
	if content.Description != scraper.NoDescription {
		text += " " + content.Description
	}

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	var tags []string
	seen := make(map[string]bool)
	for _, token := range tokens {
		length := len([]rune(token))
		if length < 3 || length > 20 || stopwords[token] || seen[token] {
			continue
		}
		seen[token] = true
		tags = append(tags, token)
		if len(tags) == 5 {
			break
		}
	}

	return tags
}

// heuristicLanguage picks zh/ja/ko from CJK rune density, defaulting to en.
func heuristicLanguage(text string) string {
	var han, kana, hangul, letters int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			han++
			letters++
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			kana++
			letters++
		case unicode.Is(unicode.Hangul, r):
			hangul++
			letters++
		case unicode.IsLetter(r):
			letters++
		}
	}

	if letters == 0 {
		return "en"
	}
	switch {
	case kana*10 > letters:
		return "ja"
	case hangul*5 > letters:
		return "ko"
	case han*5 > letters:
		return "zh"
	default:
		return "en"
	}
}

// readingTimeFor estimates minutes from a word count at 225 words per minute.
func readingTimeFor(wordCount int) int {
	minutes := (wordCount + readingWordsPerMinute - 1) / readingWordsPerMinute
	if minutes < 1 {
		return 1
	}
	if minutes > 60 {
		return 60
	}
	return minutes
}

// fallbackResult builds a full heuristic analysis without the model.
func (a *Analyzer) fallbackResult(content *scraper.Content, categoryNames []string) *Result {
	summary := content.Description
	if summary == "" || summary == scraper.NoDescription {
		summary = content.Title
	}

	return &Result{
		Summary:     summary,
		Category:    heuristicCategory(content, categoryNames, a.categories.Keywords(), a.categories.Fallback()),
		Tags:        heuristicTags(content),
		Language:    heuristicLanguage(content.Title + " " + content.Content),
		Sentiment:   SentimentNeutral,
		ReadingTime: readingTimeFor(content.WordCount),
	}
}
