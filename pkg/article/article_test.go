package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"briefcast/models"
	"briefcast/pkg/fetcher"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Understanding Goroutines</title></head>
<body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<article>
<h1>Understanding Goroutines</h1>
<p>Goroutines are lightweight threads managed by the Go runtime. They start
with small stacks and grow as needed, which makes it practical to run many
thousands of them in a single process.</p>
<p>Channels provide a way for goroutines to communicate. Combining the two
yields concurrent programs that are easy to reason about, because data moves
between goroutines instead of being shared.</p>
<p>The scheduler multiplexes goroutines onto operating system threads. When a
goroutine blocks on a system call, the runtime hands its thread to another
runnable goroutine, keeping the processor busy.</p>
</article>
<footer>Copyright 2026</footer>
</body>
</html>`

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	extracted, err := NewExtractor(fetcher.New()).Extract(context.Background(), srv.URL+"/post")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !strings.Contains(extracted.Text, "lightweight threads") {
		t.Errorf("extracted text missing article body, got %q", extracted.Text)
	}
	if strings.Contains(extracted.Text, "<p>") {
		t.Error("extracted text still contains markup")
	}
	if !strings.Contains(extracted.Title, "Goroutines") {
		t.Errorf("extracted title = %q, want it to mention Goroutines", extracted.Title)
	}
}

func TestFromHTML_EmptyPage(t *testing.T) {
	_, err := FromHTML("https://example.com", []byte("<html><body></body></html>"))
	if err == nil {
		t.Fatal("FromHTML(empty page) error = nil, want extraction_failed")
	}
	if kind := models.KindOf(err); kind != models.ErrExtractionFailed {
		t.Errorf("FromHTML(empty page) error kind = %q, want %q", kind, models.ErrExtractionFailed)
	}
}

func TestFromHTML_FallbackOnSparseMarkup(t *testing.T) {
	// A page too sparse for readability still yields its paragraph text.
	page := `<html><head><title>Note</title></head><body><p>A single short note.</p></body></html>`

	extracted, err := FromHTML("https://example.com/note", []byte(page))
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if !strings.Contains(extracted.Text, "A single short note.") {
		t.Errorf("extracted text = %q, want the paragraph text", extracted.Text)
	}
}

func TestFallbackNestedBlocksEmitOnce(t *testing.T) {
	// Sparse markup with a paragraph nested inside a list item must not
	// contribute its text twice.
	page := `<html><head><title>Steps</title></head><body>
<ul><li><p>Install the binary first.</p></li><li><p>Then run the setup.</p></li></ul>
</body></html>`

	title, text := fallbackExtract(page, "")
	if title != "Steps" {
		t.Errorf("title = %q, want Steps", title)
	}
	if got := strings.Count(text, "Install the binary first."); got != 1 {
		t.Errorf("nested paragraph appears %d times, want 1", got)
	}
	if got := strings.Count(text, "Then run the setup."); got != 1 {
		t.Errorf("nested paragraph appears %d times, want 1", got)
	}
}

func TestFromHTML_ParagraphBreaksPreserved(t *testing.T) {
	extracted, err := FromHTML("https://example.com/a", []byte(samplePage))
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if !strings.Contains(extracted.Text, "\n\n") {
		t.Error("extracted text lost paragraph breaks")
	}
}
