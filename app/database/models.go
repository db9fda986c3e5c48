package database

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusDeleted   = "deleted"
)

// Link is a stored link record. AI-prefixed fields come from the ingestion
// pipeline; user-prefixed fields are set on confirmation and take precedence.
type Link struct {
	ID          string
	URL         string
	Domain      string
	ContentType string
	Status      string
	Title       string

	AISummary     string
	AICategory    string
	AITags        []string
	AIReadingTime int
	AILanguage    string
	AISentiment   string

	UserDescription string
	UserCategory    string
	UserTags        []string
	UserReadingTime int

	WordCount        int
	ScrapingFailed   bool
	AIAnalysisFailed bool

	Author      string
	PublishedAt string // ISO-8601, empty when unknown
	SiteName    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FinalDescription prefers the user-set description over the AI summary.
func (l *Link) FinalDescription() string {
	if l.UserDescription != "" {
		return l.UserDescription
	}
	return l.AISummary
}

func (l *Link) FinalCategory() string {
	if l.UserCategory != "" {
		return l.UserCategory
	}
	return l.AICategory
}

func (l *Link) FinalTags() []string {
	if len(l.UserTags) > 0 {
		return l.UserTags
	}
	return l.AITags
}

func (l *Link) FinalReadingTime() int {
	if l.UserReadingTime > 0 {
		return l.UserReadingTime
	}
	return l.AIReadingTime
}
