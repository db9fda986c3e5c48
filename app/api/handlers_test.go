package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lukashev/linkstash/app/database"
	"github.com/lukashev/linkstash/app/ingest"
)

type stubOrchestrator struct {
	link   *database.Link
	err    error
	events []ingest.Event
	gotReq ingest.Request
}

func (s *stubOrchestrator) Run(_ context.Context, req ingest.Request, sink ingest.Sink) (*database.Link, error) {
	s.gotReq = req
	for _, event := range s.events {
		if sink != nil {
			sink.Emit(event)
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.link, nil
}

type stubConfirmer struct {
	link *database.Link
	err  error
}

func (s *stubConfirmer) Confirm(_ string, _ ingest.Edits) (*database.Link, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.link, nil
}

type stubLinkRepo struct {
	pending *database.Link
}

func (s *stubLinkRepo) CreateLink(*database.Link) error { return nil }
func (s *stubLinkRepo) GetLink(string) (*database.Link, error) {
	return s.pending, nil
}
func (s *stubLinkRepo) GetPendingLink(string) (*database.Link, error) {
	return s.pending, nil
}
func (s *stubLinkRepo) UpdateConfirmation(string, string, string, []string, int, bool) error {
	return nil
}
func (s *stubLinkRepo) GetLinkCount() (int, error)                { return 3, nil }
func (s *stubLinkRepo) GetLinkCountByStatus(string) (int, error)  { return 1, nil }

func sampleLink() *database.Link {
	return &database.Link{
		ID:            "abc-123",
		URL:           "https://go.dev/blog/pipelines",
		Domain:        "go.dev",
		ContentType:   "article",
		Status:        database.StatusPending,
		Title:         "Go Concurrency Patterns",
		AISummary:     "Pipelines and cancellation.",
		AICategory:    "technology",
		AITags:        []string{"golang"},
		AIReadingTime: 3,
		AILanguage:    "en",
		AISentiment:   "neutral",
		WordCount:     450,
	}
}

// closeNotifyRecorder satisfies the CloseNotifier assertion gin's Stream
// helper performs on the response writer.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

type cacheStub struct{}

func (cacheStub) Names() []string { return []string{"technology", "reading", "other"} }
func (cacheStub) Count() int      { return 3 }

func newTestServer(orchestrator OrchestratorInterface, confirmer ConfirmerInterface,
	repo database.LinkRepository, apiAccessKey string) *gin.Engine {
	handler := NewHandler(orchestrator, confirmer, repo, cacheStub{})
	return NewServer(handler, apiAccessKey)
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"golang, concurrency", []string{"golang", "concurrency"}},
		{"  golang  ", []string{"golang"}},
		{"a,,b,", []string{"a", "b"}},
		{"", nil},
		{"  ,  ", nil},
	}

	for _, tc := range cases {
		got := ParseTags(tc.input)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseTags(%q) = %v, expected %v", tc.input, got, tc.want)
		}
	}
}

func TestTagsRoundTrip(t *testing.T) {
	lists := [][]string{
		{"golang"},
		{"golang", "concurrency", "pipelines"},
		{"very-long-tag-name", "x"},
	}

	for _, tags := range lists {
		got := ParseTags(FormatTags(tags))
		if !reflect.DeepEqual(got, tags) {
			t.Errorf("round trip of %v produced %v", tags, got)
		}
	}

	// The comma is the delimiter, so a tag containing one splits on re-parse.
	if got := ParseTags(FormatTags([]string{"a,b"})); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("comma-bearing tag should split into two, got %v", got)
	}
}

func TestAddLink(t *testing.T) {
	orchestrator := &stubOrchestrator{link: sampleLink()}
	server := newTestServer(orchestrator, &stubConfirmer{}, &stubLinkRepo{}, "")

	body := `{"url": "https://go.dev/blog/pipelines", "tags": "queue, later"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/links", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"id":"abc-123"`) {
		t.Errorf("response missing link id: %s", w.Body.String())
	}
	if !reflect.DeepEqual(orchestrator.gotReq.Tags, []string{"queue", "later"}) {
		t.Errorf("tags field not parsed: %v", orchestrator.gotReq.Tags)
	}
}

func TestAddLinkMissingURL(t *testing.T) {
	server := newTestServer(&stubOrchestrator{link: sampleLink()}, &stubConfirmer{}, &stubLinkRepo{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/links", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAddLinkErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{fmt.Errorf("%w: bad scheme", ingest.ErrInvalidURL), http.StatusBadRequest},
		{fmt.Errorf("%w: %q", ingest.ErrInvalidCategory, "bogus"), http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		server := newTestServer(&stubOrchestrator{err: tc.err}, &stubConfirmer{}, &stubLinkRepo{}, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/links", strings.NewReader(`{"url": "https://example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		server.ServeHTTP(w, req)

		if w.Code != tc.wantStatus {
			t.Errorf("error %v: expected %d, got %d", tc.err, tc.wantStatus, w.Code)
		}
	}
}

func TestAddLinkStream(t *testing.T) {
	orchestrator := &stubOrchestrator{
		link: sampleLink(),
		events: []ingest.Event{
			{Stage: ingest.StageFetching, Message: "Fetching page content"},
			{Stage: ingest.StageAnalyzing, Message: "Analyzing content"},
			{Stage: ingest.StageCompleted, Message: "Link saved"},
		},
	}
	server := newTestServer(orchestrator, &stubConfirmer{}, &stubLinkRepo{}, "")

	w := newCloseNotifyRecorder()
	req := httptest.NewRequest("POST", "/links/add/stream", strings.NewReader(`{"url": "https://go.dev/blog/pipelines"}`))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("unexpected content type %q", ct)
	}

	body := w.Body.String()
	for _, stage := range []string{"fetching", "analyzing", "completed"} {
		if !strings.Contains(body, "event:"+stage) {
			t.Errorf("stream missing %q event: %s", stage, body)
		}
	}
}

type ctxCheckOrchestrator struct {
	link   *database.Link
	ctxErr error
}

func (s *ctxCheckOrchestrator) Run(ctx context.Context, _ ingest.Request, _ ingest.Sink) (*database.Link, error) {
	s.ctxErr = ctx.Err()
	return s.link, nil
}

func TestAddLinkStreamSurvivesClientDisconnect(t *testing.T) {
	orchestrator := &ctxCheckOrchestrator{link: sampleLink()}
	server := newTestServer(orchestrator, &stubConfirmer{}, &stubLinkRepo{}, "")

	// The client is already gone: its request context is canceled.
	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()

	w := newCloseNotifyRecorder()
	req := httptest.NewRequest("POST", "/links/add/stream", strings.NewReader(`{"url": "https://go.dev/blog/pipelines"}`)).WithContext(reqCtx)
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if orchestrator.ctxErr != nil {
		t.Errorf("ingestion context canceled by client disconnect: %v", orchestrator.ctxErr)
	}
}

func TestGetPendingLink(t *testing.T) {
	server := newTestServer(&stubOrchestrator{}, &stubConfirmer{}, &stubLinkRepo{pending: sampleLink()}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/links/abc-123/pending", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"categories"`) {
		t.Error("pending response must include the category list")
	}
}

func TestGetPendingLinkNotFound(t *testing.T) {
	server := newTestServer(&stubOrchestrator{}, &stubConfirmer{}, &stubLinkRepo{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/links/missing/pending", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestConfirmLinkErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{fmt.Errorf("%w: abc", ingest.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: %q", ingest.ErrInvalidCategory, "bogus"), http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		server := newTestServer(&stubOrchestrator{}, &stubConfirmer{err: tc.err}, &stubLinkRepo{}, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/links/abc-123/confirm", strings.NewReader(`{"publish": true}`))
		req.Header.Set("Content-Type", "application/json")
		server.ServeHTTP(w, req)

		if w.Code != tc.wantStatus {
			t.Errorf("error %v: expected %d, got %d", tc.err, tc.wantStatus, w.Code)
		}
	}
}

func TestConfirmLink(t *testing.T) {
	published := sampleLink()
	published.Status = database.StatusPublished
	server := newTestServer(&stubOrchestrator{}, &stubConfirmer{link: published}, &stubLinkRepo{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/links/abc-123/confirm", strings.NewReader(`{"publish": true}`))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"status":"published"`) {
		t.Errorf("response missing published status: %s", w.Body.String())
	}
}

func TestAuthMiddleware(t *testing.T) {
	server := newTestServer(&stubOrchestrator{}, &stubConfirmer{}, &stubLinkRepo{pending: sampleLink()}, "secret")

	cases := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"missing key", "", "", http.StatusUnauthorized},
		{"wrong key", "X-API-Key", "nope", http.StatusUnauthorized},
		{"correct key", "X-API-Key", "secret", http.StatusOK},
		{"bearer token", "Authorization", "Bearer secret", http.StatusOK},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/links/abc-123/pending", nil)
		if tc.header != "" {
			req.Header.Set(tc.header, tc.value)
		}
		server.ServeHTTP(w, req)

		if w.Code != tc.wantStatus {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.wantStatus, w.Code)
		}
	}
}

func TestAuthDoesNotCoverIngestion(t *testing.T) {
	server := newTestServer(&stubOrchestrator{link: sampleLink()}, &stubConfirmer{}, &stubLinkRepo{}, "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/links", strings.NewReader(`{"url": "https://example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("ingestion must not require the API key, got %d", w.Code)
	}
}

func TestGetHealth(t *testing.T) {
	server := newTestServer(&stubOrchestrator{}, &stubConfirmer{}, &stubLinkRepo{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"links":3`) || !strings.Contains(body, `"loaded_categories":3`) {
		t.Errorf("unexpected health payload: %s", body)
	}
}

func TestGetStats(t *testing.T) {
	server := newTestServer(&stubOrchestrator{}, &stubConfirmer{}, &stubLinkRepo{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"by_status"`) {
		t.Errorf("unexpected stats payload: %s", w.Body.String())
	}
}
