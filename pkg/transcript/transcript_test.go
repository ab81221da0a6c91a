package transcript

import (
	"context"
	"errors"
	"strings"
	"testing"

	"briefcast/models"
)

func TestRun_FirstStrategyWins(t *testing.T) {
	s := &Service{}
	calls := []string{}
	strategies := []Strategy{
		{Name: "first", Fetch: func(context.Context) (string, error) {
			calls = append(calls, "first")
			return "transcript text", nil
		}},
		{Name: "second", Fetch: func(context.Context) (string, error) {
			calls = append(calls, "second")
			return "other text", nil
		}},
	}

	got, err := s.run(context.Background(), "abc123def45", strategies)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got != "transcript text" {
		t.Errorf("run() = %q, want first strategy's text", got)
	}
	if len(calls) != 1 {
		t.Errorf("run() invoked %d strategies, want 1 (stop at first success)", len(calls))
	}
}

func TestRun_FallsThroughInOrder(t *testing.T) {
	s := &Service{}
	var calls []string
	strategies := []Strategy{
		{Name: "a", Fetch: func(context.Context) (string, error) {
			calls = append(calls, "a")
			return "", errors.New("no captions in this language")
		}},
		{Name: "b", Fetch: func(context.Context) (string, error) {
			calls = append(calls, "b")
			return "   ", nil // empty result counts as a failure
		}},
		{Name: "c", Fetch: func(context.Context) (string, error) {
			calls = append(calls, "c")
			return "finally some text", nil
		}},
	}

	got, err := s.run(context.Background(), "abc123def45", strategies)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got != "finally some text" {
		t.Errorf("run() = %q, want third strategy's text", got)
	}
	if strings.Join(calls, ",") != "a,b,c" {
		t.Errorf("strategies ran as %v, want in-order a,b,c", calls)
	}
}

func TestRun_AllFail_ReportsNoTranscript(t *testing.T) {
	s := &Service{}
	strategies := []Strategy{
		{Name: "a", Fetch: func(context.Context) (string, error) { return "", errors.New("disabled") }},
		{Name: "b", Fetch: func(context.Context) (string, error) { return "", errors.New("disabled") }},
	}

	_, err := s.run(context.Background(), "abc123def45", strategies)
	if err == nil {
		t.Fatal("run() error = nil, want no-transcript error")
	}
	if kind := models.KindOf(err); kind != models.ErrExtractionFailed {
		t.Errorf("run() error kind = %q, want %q", kind, models.ErrExtractionFailed)
	}
	msg := models.UserMessage(err)
	if !strings.Contains(msg, "No transcript") {
		t.Errorf("run() message = %q, want a specific no-transcript message, not a generic error", msg)
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"cues removed", "hello [Music] world (applause) again", "hello world again"},
		{"whitespace collapsed", "line one\n\nline   two", "line one line two"},
		{"floating punctuation", "so that is it .", "so that is it."},
	}
	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
