package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lukashev/linkstash/app/database"
	"github.com/lukashev/linkstash/app/ingest"
)

func NewHandler(orchestrator OrchestratorInterface, confirmer ConfirmerInterface,
	linkRepo database.LinkRepository, categoryCache CategoryCacheInterface) *Handler {
	return &Handler{
		orchestrator:  orchestrator,
		confirmer:     confirmer,
		linkRepo:      linkRepo,
		categoryCache: categoryCache,
	}
}

type addLinkRequest struct {
	URL          string `json:"url" binding:"required"`
	SkipConfirm  bool   `json:"skipConfirm"`
	Category     string `json:"category"`
	Tags         string `json:"tags"` // comma-separated
	Instructions string `json:"instructions"`
}

type confirmRequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Tags        string `json:"tags"` // comma-separated
	ReadingTime int    `json:"readingTime"`
	Publish     bool   `json:"publish"`
}

type linkResponse struct {
	ID               string    `json:"id"`
	URL              string    `json:"url"`
	Domain           string    `json:"domain"`
	ContentType      string    `json:"contentType"`
	Status           string    `json:"status"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Tags             []string  `json:"tags"`
	Language         string    `json:"language"`
	Sentiment        string    `json:"sentiment"`
	ReadingTime      int       `json:"readingTime"`
	WordCount        int       `json:"wordCount"`
	ScrapingFailed   bool      `json:"scrapingFailed"`
	AIAnalysisFailed bool      `json:"aiAnalysisFailed"`
	Author           string    `json:"author,omitempty"`
	PublishedAt      string    `json:"publishedAt,omitempty"`
	SiteName         string    `json:"siteName,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

func linkToResponse(link *database.Link) linkResponse {
	tags := link.FinalTags()
	if tags == nil {
		tags = []string{}
	}

	return linkResponse{
		ID:               link.ID,
		URL:              link.URL,
		Domain:           link.Domain,
		ContentType:      link.ContentType,
		Status:           link.Status,
		Title:            link.Title,
		Description:      link.FinalDescription(),
		Category:         link.FinalCategory(),
		Tags:             tags,
		Language:         link.AILanguage,
		Sentiment:        link.AISentiment,
		ReadingTime:      link.FinalReadingTime(),
		WordCount:        link.WordCount,
		ScrapingFailed:   link.ScrapingFailed,
		AIAnalysisFailed: link.AIAnalysisFailed,
		Author:           link.Author,
		PublishedAt:      link.PublishedAt,
		SiteName:         link.SiteName,
		CreatedAt:        link.CreatedAt,
	}
}

func (h *Handler) AddLink(c *gin.Context) {
	var req addLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	link, err := h.orchestrator.Run(c.Request.Context(), ingest.Request{
		URL:          req.URL,
		SkipConfirm:  req.SkipConfirm,
		Category:     req.Category,
		Tags:         ParseTags(req.Tags),
		Instructions: req.Instructions,
	}, nil)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			slog.Error("Link ingestion failed", "url", req.URL, "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, linkToResponse(link))
}

func (h *Handler) AddLinkStream(c *gin.Context) {
	var req addLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	// A disconnected client only stops the reporting, never the ingestion
	// itself, so the pipeline must not inherit the request's cancellation.
	ctx := context.WithoutCancel(c.Request.Context())

	sink := ingest.NewChanSink(16)
	go func() {
		defer sink.Close()
		if _, err := h.orchestrator.Run(ctx, ingest.Request{
			URL:          req.URL,
			SkipConfirm:  req.SkipConfirm,
			Category:     req.Category,
			Tags:         ParseTags(req.Tags),
			Instructions: req.Instructions,
		}, sink); err != nil {
			slog.Error("Streamed link ingestion failed", "url", req.URL, "error", err)
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		event, ok := <-sink.Events()
		if !ok {
			return false
		}
		c.SSEvent(string(event.Stage), event)
		return true
	})
}

func (h *Handler) GetPendingLink(c *gin.Context) {
	id := c.Param("id")

	link, err := h.linkRepo.GetPendingLink(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_pending_link", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if link == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending link with this id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"link":       linkToResponse(link),
		"categories": h.categoryCache.Names(),
	})
}

func (h *Handler) ConfirmLink(c *gin.Context) {
	id := c.Param("id")

	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	link, err := h.confirmer.Confirm(id, ingest.Edits{
		Description: req.Description,
		Category:    req.Category,
		Tags:        ParseTags(req.Tags),
		ReadingTime: req.ReadingTime,
		Publish:     req.Publish,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			slog.Error("Link confirmation failed", "id", id, "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, linkToResponse(link))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if linkCount, err := h.linkRepo.GetLinkCount(); err == nil {
		health["links"] = linkCount
	}

	health["loaded_categories"] = h.categoryCache.Count()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{}

	if total, err := h.linkRepo.GetLinkCount(); err == nil {
		stats["total"] = total
	}

	byStatus := map[string]int{}
	for _, status := range []string{database.StatusPending, database.StatusPublished, database.StatusDeleted} {
		if count, err := h.linkRepo.GetLinkCountByStatus(status); err == nil {
			byStatus[status] = count
		}
	}
	stats["by_status"] = byStatus
	stats["categories"] = h.categoryCache.Names()

	c.JSON(http.StatusOK, stats)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ingest.ErrInvalidURL), errors.Is(err, ingest.ErrInvalidCategory):
		return http.StatusBadRequest
	case errors.Is(err, ingest.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
