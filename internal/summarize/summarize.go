// Package summarize turns extracted text into a structured summary via a
// chat-completion model. Text that fits within the model's context goes
// through in a single request; longer text is summarized per chunk and the
// section summaries are merged in a final combine request.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"briefcast/models"
)

const minSummaryLen = 50

// Completer is the single call the engine needs from a model backend.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Engine orchestrates single-pass and map-reduce summarization. A failed
// model call surfaces immediately; there is no internal retry and no
// caching of results.
type Engine struct {
	completer Completer
	logger    *slog.Logger
}

func NewEngine(completer Completer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{completer: completer, logger: logger}
}

// Summarize produces a structured summary of the chunked content. A single
// chunk gets one request; multiple chunks are summarized section by section
// in order, then combined.
func (e *Engine) Summarize(ctx context.Context, chunks []models.Chunk, ct models.ContentType) (string, error) {
	chunks = dropEmpty(chunks)
	if len(chunks) == 0 {
		return "", models.E(models.ErrSummarizationFailed, "Nothing to summarize.",
			"The extracted content was empty.", nil)
	}

	set := prompts(ct)

	if len(chunks) == 1 {
		e.logger.Info("summarizing in a single pass", "content_type", ct)
		return e.complete(ctx, set.single, chunks[0].Text)
	}

	e.logger.Info("summarizing with map-reduce", "content_type", ct, "chunks", len(chunks))

	sections := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		section, err := e.complete(ctx, set.section, chunk.Text)
		if err != nil {
			return "", err
		}
		sections = append(sections, fmt.Sprintf("Section %d:\n%s", chunk.Index+1, section))
	}

	return e.complete(ctx, set.combine, strings.Join(sections, "\n\n"))
}

// Quiz generates a multiple-choice practice quiz from the content.
func (e *Engine) Quiz(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", models.E(models.ErrInvalidInput, "No text to build a quiz from.",
			"Paste the content you want quizzed.", nil)
	}
	return e.complete(ctx, quizPrompt, text)
}

// complete runs one model request and validates the output.
func (e *Engine) complete(ctx context.Context, system, user string) (string, error) {
	result, err := e.completer.Complete(ctx, system, user)
	if err != nil {
		return "", models.E(models.ErrSummarizationFailed, "Summarization failed.",
			"The model did not return a usable summary. Try again in a moment.", err)
	}
	result = strings.TrimSpace(result)
	if len(result) < minSummaryLen {
		return "", models.E(models.ErrSummarizationFailed, "Summarization failed.",
			"The model returned an unusably short summary. Try again in a moment.",
			fmt.Errorf("model returned %d characters, want at least %d", len(result), minSummaryLen))
	}
	return result, nil
}

func dropEmpty(chunks []models.Chunk) []models.Chunk {
	kept := chunks[:0:0]
	for _, c := range chunks {
		if strings.TrimSpace(c.Text) != "" {
			kept = append(kept, c)
		}
	}
	return kept
}
