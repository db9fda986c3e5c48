package scraper

import "fmt"

// ContentType classifies what kind of resource a URL points to. Classification
// is derived from the URL itself, so it is available even when the fetch fails.
type ContentType string

const (
	TypeArticle ContentType = "article"
	TypeVideo   ContentType = "video"
	TypePDF     ContentType = "pdf"
	TypeImage   ContentType = "image"
)

// Content is the normalized result of scraping a single URL.
type Content struct {
	URL         string
	ContentType ContentType
	Title       string
	Description string
	Content     string
	Domain      string
	WordCount   int

	// Optional metadata, empty when not discoverable
	Author      string
	PublishDate string // ISO-8601
	SiteName    string
	Language    string // ISO 639-1
	Tags        []string
}

// NoDescription is the sentinel used when no description can be found.
const NoDescription = "No description available"

// FetchError reports a network or HTTP failure while fetching a URL.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that could not be parsed as markup at all.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
