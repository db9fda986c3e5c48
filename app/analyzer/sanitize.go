package analyzer

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/lukashev/linkstash/app/scraper"
)

var languageAllowList = map[string]bool{
	"en": true, "zh": true, "ja": true, "ko": true, "es": true,
	"fr": true, "de": true, "ru": true, "pt": true, "it": true,
}

var sentiments = map[string]bool{
	SentimentPositive: true,
	SentimentNeutral:  true,
	SentimentNegative: true,
}

// Sanitize projects a result into its stated domain. It is applied to model
// output and heuristic output alike, and running it twice yields the same
// result.
func Sanitize(r Result, categoryNames []string, fallbackCategory string, wordCount int) Result {
	r.Summary = sanitizeSummary(r.Summary)
	r.Category = sanitizeCategory(r.Category, categoryNames, fallbackCategory)
	r.Tags = sanitizeTags(r.Tags)
	r.Language = sanitizeLanguage(r.Language)
	r.Sentiment = sanitizeSentiment(r.Sentiment)
	if r.ReadingTime <= 0 || r.ReadingTime > 60 {
		r.ReadingTime = readingTimeFor(wordCount)
	}
	return r
}

func sanitizeSummary(summary string) string {
	summary = scraper.CleanText(summary)
	runes := []rune(summary)
	if len(runes) > MaxSummaryLength {
		// The cut can land on a space, trim so a second pass sees clean text
		return strings.TrimSpace(string(runes[:MaxSummaryLength]))
	}
	return summary
}

func sanitizeCategory(category string, categoryNames []string, fallback string) string {
	category = strings.TrimSpace(category)
	for _, name := range categoryNames {
		if strings.EqualFold(name, category) {
			return name
		}
	}
	return fallback
}

func sanitizeTags(tags []string) []string {
	out := make([]string, 0, maxTags)
	seen := make(map[string]bool, len(tags))

	for _, tag := range tags {
		tag = strings.ToLower(scraper.CleanText(tag))
		length := len([]rune(tag))
		if length < 1 || length > maxTagLength || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
		if len(out) == maxTags {
			break
		}
	}

	return out
}

func sanitizeLanguage(code string) string {
	base, err := language.ParseBase(strings.ToLower(strings.TrimSpace(code)))
	if err != nil {
		return "en"
	}
	if normalized := base.String(); languageAllowList[normalized] {
		return normalized
	}
	return "en"
}

func sanitizeSentiment(sentiment string) string {
	sentiment = strings.ToLower(strings.TrimSpace(sentiment))
	if sentiments[sentiment] {
		return sentiment
	}
	return SentimentNeutral
}
