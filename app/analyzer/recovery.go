package analyzer

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	braceBlockRe  = regexp.MustCompile(`(?s)\{.*\}`)
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
)

// parseAttempt is one step of the ordered response recovery chain.
type parseAttempt struct {
	Name    string
	Extract func(raw string) string
}

var parseAttempts = []parseAttempt{
	{"direct", func(raw string) string { return raw }},
	{"brace-block", func(raw string) string { return braceBlockRe.FindString(raw) }},
	{"fenced-block", func(raw string) string {
		if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
		return ""
	}},
}

// recoverResult runs the recovery chain over a raw model response and returns
// the first decodable result along with the name of the attempt that matched.
func recoverResult(raw string) (*Result, string, bool) {
	raw = strings.TrimSpace(raw)
	for _, attempt := range parseAttempts {
		candidate := attempt.Extract(raw)
		if candidate == "" {
			continue
		}
		if result, ok := decodeResult(candidate); ok {
			return result, attempt.Name, true
		}
	}
	return nil, "", false
}

// isPlausibleProse reports whether an unparsable response can still serve as
// a summary: plain text with no braces and some length. Responses containing
// stray braces fall through to the full heuristic fallback instead.
func isPlausibleProse(raw string) bool {
	raw = strings.TrimSpace(raw)
	return !strings.Contains(raw, "{") && utf8.RuneCountInString(raw) > 10
}

// decodeResult unmarshals loosely: models return numbers as strings, tags as
// comma-joined text and so on, so fields are coerced instead of rejected.
func decodeResult(data string) (*Result, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, false
	}

	result := &Result{
		Summary:     asString(fields["summary"]),
		Category:    asString(fields["category"]),
		Tags:        asStringSlice(fields["tags"]),
		Language:    asString(fields["language"]),
		Sentiment:   asString(fields["sentiment"]),
		ReadingTime: asInt(fields["readingTime"]),
	}

	if result.Summary == "" && result.Category == "" {
		return nil, false
	}
	return result, true
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asStringSlice(v any) []string {
	switch value := v.(type) {
	case []any:
		var out []string
		for _, item := range value {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

func asInt(v any) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return 0
}
