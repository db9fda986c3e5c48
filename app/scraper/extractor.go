package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pemistahl/lingua-go"
)

// Extractor fetches URLs and turns their markup into normalized Content
// records. The fetch timeout is carried by the HTTP client.
type Extractor struct {
	httpClient       *http.Client
	userAgent        string
	maxContentLength int
	langDetector     lingua.LanguageDetector
}

func NewExtractor(httpClient *http.Client, userAgent string, maxContentLength int) *Extractor {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English, lingua.Chinese, lingua.Japanese, lingua.Korean,
			lingua.Spanish, lingua.French, lingua.German, lingua.Russian,
			lingua.Portuguese, lingua.Italian,
		).
		Build()

	return &Extractor{
		httpClient:       httpClient,
		userAgent:        userAgent,
		maxContentLength: maxContentLength,
		langDetector:     detector,
	}
}

// Extract fetches the URL and extracts a Content record. It returns a
// *FetchError on network/HTTP failure and a *ParseError when the body cannot
// be parsed as markup at all.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Content, error) {
	data, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return e.Parse(rawURL, data)
}

// Parse extracts a Content record from an already fetched body.
func (e *Extractor) Parse(rawURL string, data []byte) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{URL: rawURL, Err: err}
	}

	p := &page{url: rawURL, raw: data, doc: doc}

	text, ruleName := extractContent(p, Classify(rawURL))
	text = Truncate(text, e.maxContentLength)

	content := &Content{
		URL:         rawURL,
		ContentType: Classify(rawURL),
		Title:       extractTitle(doc, rawURL),
		Description: extractDescription(doc),
		Content:     text,
		Domain:      Domain(rawURL),
		WordCount:   CountWords(text),
		Author:      extractAuthor(doc),
		PublishDate: extractPublishDate(doc),
		SiteName:    extractSiteName(doc),
		Tags:        extractKeywords(doc),
	}
	content.Language = e.detectLanguage(doc, text)

	slog.Debug("Content extracted",
		"url", rawURL,
		"type", content.ContentType,
		"rule", ruleName,
		"words", content.WordCount)

	return content, nil
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return data, nil
}

func (e *Extractor) detectLanguage(doc *goquery.Document, text string) string {
	if hint := extractLanguageHint(doc); hint != "" {
		return hint
	}
	if utf8.RuneCountInString(text) < minContentChars {
		return ""
	}

	lang, ok := e.langDetector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// Fallback synthesizes a minimal Content record for a URL whose fetch failed.
// The title is derived from the URL path, falling back to the host.
func Fallback(rawURL string) *Content {
	return &Content{
		URL:         rawURL,
		ContentType: Classify(rawURL),
		Title:       titleFromURL(rawURL),
		Description: NoDescription,
		Domain:      Domain(rawURL),
	}
}

func titleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	segment := path.Base(strings.Trim(u.Path, "/"))
	if ext := path.Ext(segment); ext != "" {
		segment = strings.TrimSuffix(segment, ext)
	}
	segment = strings.NewReplacer("-", " ", "_", " ", "+", " ").Replace(segment)
	segment = CleanText(segment)

	if segment == "" || segment == "." {
		return strings.TrimPrefix(u.Hostname(), "www.")
	}
	return segment
}
