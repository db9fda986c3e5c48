package analyzer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lukashev/linkstash/app/categories"
	"github.com/lukashev/linkstash/app/scraper"
)

// CategorySource supplies the keyword table and fallback category used by the
// heuristic classifier.
type CategorySource interface {
	Keywords() map[string][]string
	Fallback() string
}

var _ CategorySource = (*categories.Cache)(nil)

// Analyzer turns scraped content into a validated analysis result. Analyze
// never fails outward: when the model is unreachable or returns garbage it
// degrades to keyword heuristics.
type Analyzer struct {
	generator  Generator
	categories CategorySource
}

func NewAnalyzer(generator Generator, categorySource CategorySource) *Analyzer {
	return &Analyzer{
		generator:  generator,
		categories: categorySource,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, content *scraper.Content, categoryNames []string, instructions string) *Result {
	result, degraded := a.analyze(ctx, content, categoryNames, instructions)
	a.fillMissing(result, content, categoryNames)

	sanitized := Sanitize(*result, categoryNames, a.categories.Fallback(), content.WordCount)
	sanitized.Degraded = degraded
	return &sanitized
}

func (a *Analyzer) analyze(ctx context.Context, content *scraper.Content, categoryNames []string, instructions string) (*Result, bool) {
	// No model configured, heuristics only
	if a.generator == nil {
		return a.fallbackResult(content, categoryNames), true
	}

	raw, err := a.generator.Generate(ctx, buildPrompt(content, categoryNames, instructions))
	if err != nil {
		slog.Warn("Model call failed, using heuristic analysis", "url", content.URL, "error", err)
		return a.fallbackResult(content, categoryNames), true
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		slog.Warn("Model returned empty response, using heuristic analysis", "url", content.URL)
		return a.fallbackResult(content, categoryNames), true
	}

	if result, attempt, ok := recoverResult(raw); ok {
		slog.Debug("Model response parsed", "url", content.URL, "attempt", attempt)
		return result, false
	}

	// Prose with no braces can still serve as the summary; malformed JSON
	// containing stray braces goes to the full heuristic fallback.
	if isPlausibleProse(raw) {
		slog.Debug("Model returned prose, using it as summary", "url", content.URL)
		result := a.fallbackResult(content, categoryNames)
		result.Summary = raw
		return result, false
	}

	slog.Warn("Model response unparsable, using heuristic analysis", "url", content.URL)
	return a.fallbackResult(content, categoryNames), true
}

// fillMissing covers fields the model left out with the same heuristics the
// full fallback uses, so partial model output still yields a complete record.
func (a *Analyzer) fillMissing(result *Result, content *scraper.Content, categoryNames []string) {
	if result.Summary == "" {
		if content.Description != "" && content.Description != scraper.NoDescription {
			result.Summary = content.Description
		} else {
			result.Summary = content.Title
		}
	}
	if result.Category == "" {
		result.Category = heuristicCategory(content, categoryNames, a.categories.Keywords(), a.categories.Fallback())
	}
	if len(result.Tags) == 0 {
		result.Tags = heuristicTags(content)
	}
	if result.Language == "" {
		result.Language = heuristicLanguage(content.Title + " " + content.Content)
	}
}
