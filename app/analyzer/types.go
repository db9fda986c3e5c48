package analyzer

// Result holds the validated analysis of one scraped page. After Sanitize
// every field is guaranteed to be present and within its domain.
type Result struct {
	Summary     string   `json:"summary"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Language    string   `json:"language"`
	Sentiment   string   `json:"sentiment"`
	ReadingTime int      `json:"readingTime"`

	// Degraded is set when the text generation service was unusable and the
	// whole result came from the keyword heuristics.
	Degraded bool `json:"-"`
}

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Words-per-minute base for the reading time estimate.
const readingWordsPerMinute = 225

// MaxSummaryLength bounds the stored summary.
const MaxSummaryLength = 500

const (
	maxTags      = 10
	maxTagLength = 50
)
