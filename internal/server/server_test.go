package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"briefcast/internal/pipeline"
	"briefcast/internal/store"
	"briefcast/models"
	"briefcast/pkg/artifacts"
)

type stubArticles struct{}

func (stubArticles) Extract(ctx context.Context, rawURL string) (models.Extracted, error) {
	return models.Extracted{
		Text:  "extracted article text used by the handler test",
		Title: "Handler Test Article",
	}, nil
}

type stubTranscripts struct{}

func (stubTranscripts) Fetch(ctx context.Context, videoID string) (string, error) {
	return "transcript text for the handler test video", nil
}

type stubClassifier struct{}

func (stubClassifier) Classify(string) models.ContentType { return models.ContentGeneral }

type stubSummarizer struct{}

func (stubSummarizer) Summarize(ctx context.Context, chunks []models.Chunk, ct models.ContentType) (string, error) {
	return "**Title**: Handler Test\nA summary long enough to be usable by anyone.", nil
}

func (stubSummarizer) Quiz(ctx context.Context, text string) (string, error) {
	return "1. Question? A) one B) two C) three D) four. Answer: B", nil
}

type stubAudio struct{}

func (stubAudio) Render(ctx context.Context, scope *artifacts.Scope, summary string) ([]byte, string, error) {
	return []byte("mp3"), "en", nil
}

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	mgr, err := artifacts.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	history, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { history.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := pipeline.New(pipeline.Options{
		Articles:    stubArticles{},
		Transcripts: stubTranscripts{},
		Classifier:  stubClassifier{},
		Summarizer:  stubSummarizer{},
		Audio:       stubAudio{},
		Artifacts:   mgr,
		History:     history,
		Logger:      logger,
	})

	srv, err := New(p, history, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, history
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHomePage(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, action := range []string{"/summarize/youtube", "/summarize/article", "/summarize/pdf", "/quiz"} {
		if !strings.Contains(body, action) {
			t.Errorf("home page missing form for %s", action)
		}
	}
}

func TestSummarizeArticle(t *testing.T) {
	srv, history := newTestServer(t)
	rec := postForm(t, srv.Handler(), "/summarize/article",
		url.Values{"url": {"https://example.com/post"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Handler Test Article") {
		t.Error("result page should show the extracted title")
	}
	if !strings.Contains(body, "data:audio/mpeg;base64,") {
		t.Error("result page should embed the audio as a data URI")
	}
	if !strings.Contains(body, "data:text/plain;base64,") {
		t.Error("result page should offer the text download")
	}

	records, err := history.Recent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Status != "ok" {
		t.Errorf("request should be recorded: %+v", records)
	}
}

func TestSummarizeYouTube(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postForm(t, srv.Handler(), "/summarize/youtube",
		url.Values{"video": {"https://youtu.be/dQw4w9WgXcQ"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "dQw4w9WgXcQ") {
		t.Error("result page should show the video reference")
	}
}

func TestInvalidInputReturnsBadRequest(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postForm(t, srv.Handler(), "/summarize/youtube",
		url.Values{"video": {"definitely not a video"}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "invalid_input") {
		t.Error("error page should name the error kind")
	}
}

func TestQuizPage(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postForm(t, srv.Handler(), "/quiz",
		url.Values{"text": {"notes to quiz on"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Answer: B") {
		t.Error("quiz page should show the generated quiz")
	}
}

func TestHistoryPage(t *testing.T) {
	srv, history := newTestServer(t)
	if _, err := history.Insert(store.Record{
		SourceKind: "article", SourceRef: "https://example.com/seen", Status: "ok",
	}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "example.com/seen") {
		t.Error("history page should list recorded requests")
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
