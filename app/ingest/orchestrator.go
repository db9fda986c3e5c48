package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/lukashev/linkstash/app/analyzer"
	"github.com/lukashev/linkstash/app/categories"
	"github.com/lukashev/linkstash/app/database"
	"github.com/lukashev/linkstash/app/scraper"
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNotFound        = errors.New("link not found")
)

type ContentExtractor interface {
	Extract(ctx context.Context, rawURL string) (*scraper.Content, error)
}

type ContentAnalyzer interface {
	Analyze(ctx context.Context, content *scraper.Content, categoryNames []string, instructions string) *analyzer.Result
}

type CategoryProvider interface {
	Names() []string
	Fallback() string
	Contains(name string) bool
}

var _ ContentExtractor = (*scraper.Extractor)(nil)
var _ ContentAnalyzer = (*analyzer.Analyzer)(nil)
var _ CategoryProvider = (*categories.Cache)(nil)

// Request describes one link submission.
type Request struct {
	URL          string
	SkipConfirm  bool
	Category     string
	Tags         []string
	Instructions string
}

// CompletedData is the payload attached to the completed event.
type CompletedData struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Status      string   `json:"status"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Language    string   `json:"language"`
	Sentiment   string   `json:"sentiment"`
	ReadingTime int      `json:"readingTime"`
	ConfirmURL  string   `json:"confirmUrl,omitempty"`
}

// Orchestrator runs the ingestion pipeline: fetch, analyze, persist.
type Orchestrator struct {
	extractor  ContentExtractor
	analyzer   ContentAnalyzer
	linkRepo   database.LinkRepository
	categories CategoryProvider
	baseURL    string
}

func NewOrchestrator(extractor ContentExtractor, contentAnalyzer ContentAnalyzer,
	linkRepo database.LinkRepository, categoryProvider CategoryProvider, baseURL string) *Orchestrator {
	return &Orchestrator{
		extractor:  extractor,
		analyzer:   contentAnalyzer,
		linkRepo:   linkRepo,
		categories: categoryProvider,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Run processes a single submission. Scraping and analysis failures degrade
// the result instead of aborting; only an invalid URL, an invalid category
// override or a store write failure return an error.
func (o *Orchestrator) Run(ctx context.Context, req Request, sink Sink) (*database.Link, error) {
	if err := validateURL(req.URL); err != nil {
		emit(sink, Event{Stage: StageError, Message: "Invalid URL", Error: err.Error()})
		return nil, err
	}

	if req.Category != "" && !o.categories.Contains(req.Category) {
		err := fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
		emit(sink, Event{Stage: StageError, Message: "Unknown category", Error: err.Error()})
		return nil, err
	}

	emit(sink, Event{Stage: StageFetching, Message: "Fetching page content"})

	scrapingFailed := false
	content, err := o.extractor.Extract(ctx, req.URL)
	if err != nil {
		slog.Warn("Content extraction failed, using URL-derived fallback", "url", req.URL, "error", err)
		content = scraper.Fallback(req.URL)
		scrapingFailed = true
	}

	emit(sink, Event{Stage: StageAnalyzing, Message: "Analyzing content"})

	result := o.analyzer.Analyze(ctx, content, o.categories.Names(), req.Instructions)

	link := o.assembleLink(req, content, result, scrapingFailed)

	if err := o.linkRepo.CreateLink(link); err != nil {
		emit(sink, Event{Stage: StageError, Message: "Failed to store link", Error: err.Error()})
		return nil, fmt.Errorf("failed to store link: %w", err)
	}

	slog.Info("Link ingested", "id", link.ID, "url", link.URL, "status", link.Status,
		"category", link.FinalCategory(), "scraping_failed", link.ScrapingFailed,
		"analysis_failed", link.AIAnalysisFailed)

	emit(sink, Event{Stage: StageCompleted, Message: "Link saved", Data: o.completedData(link)})

	return link, nil
}

func (o *Orchestrator) assembleLink(req Request, content *scraper.Content, result *analyzer.Result, scrapingFailed bool) *database.Link {
	link := &database.Link{
		ID:          uuid.NewString(),
		URL:         req.URL,
		Domain:      content.Domain,
		ContentType: string(content.ContentType),
		Status:      database.StatusPending,
		Title:       content.Title,

		AISummary:     result.Summary,
		AICategory:    result.Category,
		AITags:        result.Tags,
		AIReadingTime: result.ReadingTime,
		AILanguage:    result.Language,
		AISentiment:   result.Sentiment,

		WordCount:        content.WordCount,
		ScrapingFailed:   scrapingFailed,
		AIAnalysisFailed: result.Degraded,

		Author:      content.Author,
		PublishedAt: content.PublishDate,
		SiteName:    content.SiteName,
	}

	if req.Category != "" {
		link.UserCategory = req.Category
	}
	if len(req.Tags) > 0 {
		link.UserTags = req.Tags
	}

	if req.SkipConfirm {
		link.Status = database.StatusPublished
		link.UserDescription = result.Summary
		link.UserReadingTime = result.ReadingTime
		if link.UserCategory == "" {
			link.UserCategory = result.Category
		}
		if len(link.UserTags) == 0 {
			link.UserTags = result.Tags
		}
	}

	return link
}

func (o *Orchestrator) completedData(link *database.Link) CompletedData {
	data := CompletedData{
		ID:          link.ID,
		URL:         link.URL,
		Status:      link.Status,
		Title:       link.Title,
		Summary:     link.FinalDescription(),
		Category:    link.FinalCategory(),
		Tags:        link.FinalTags(),
		Language:    link.AILanguage,
		Sentiment:   link.AISentiment,
		ReadingTime: link.FinalReadingTime(),
	}

	if link.Status == database.StatusPending {
		data.ConfirmURL = fmt.Sprintf("%s/links/%s/confirm", o.baseURL, link.ID)
	}

	return data
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
