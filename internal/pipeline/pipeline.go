// Package pipeline runs one summarization request end to end: normalize the
// input, extract text, classify it, chunk it, summarize it, and voice the
// result. Stages run in a straight line and fail fast; only audio failure
// is tolerated, since the text summary already exists at that point.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"briefcast/internal/store"
	"briefcast/models"
	"briefcast/pkg/analytics"
	"briefcast/pkg/artifacts"
	"briefcast/pkg/chunker"
	"briefcast/pkg/normalize"
	"briefcast/pkg/pdftext"
	"briefcast/pkg/transcript"
)

const topKeywordCount = 5

// ArticleExtractor fetches a web page and reduces it to readable text.
type ArticleExtractor interface {
	Extract(ctx context.Context, rawURL string) (models.Extracted, error)
}

// TranscriptFetcher retrieves a video transcript.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Classifier labels text with a coarse content type.
type Classifier interface {
	Classify(text string) models.ContentType
}

// Summarizer produces the final summary and practice quizzes.
type Summarizer interface {
	Summarize(ctx context.Context, chunks []models.Chunk, ct models.ContentType) (string, error)
	Quiz(ctx context.Context, text string) (string, error)
}

// AudioRenderer voices a summary into MP3 bytes.
type AudioRenderer interface {
	Render(ctx context.Context, scope *artifacts.Scope, summary string) ([]byte, string, error)
}

// History records request metadata. Failures are logged, never surfaced.
type History interface {
	Insert(rec store.Record) (int64, error)
}

// Result is everything a finished request produced. It lives only for the
// duration of the response; nothing in it is persisted.
type Result struct {
	Source      models.Source
	Title       string
	ContentType models.ContentType
	ChunkCount  int
	Summary     string
	Audio       []byte
	AudioLang   string
	AudioError  string
	Keywords    []string
	Duration    time.Duration
}

// Pipeline wires the stages together.
type Pipeline struct {
	articles    ArticleExtractor
	transcripts TranscriptFetcher
	classifier  Classifier
	summarizer  Summarizer
	audio       AudioRenderer
	artifacts   *artifacts.Manager
	history     History
	tracer      *Tracer
	logger      *slog.Logger
}

// Options carries the pipeline's collaborators. Articles, Transcripts,
// Classifier, Summarizer, Audio, and Artifacts are required; History and
// Tracer are optional.
type Options struct {
	Articles    ArticleExtractor
	Transcripts TranscriptFetcher
	Classifier  Classifier
	Summarizer  Summarizer
	Audio       AudioRenderer
	Artifacts   *artifacts.Manager
	History     History
	Tracer      *Tracer
	Logger      *slog.Logger
}

func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		articles:    opts.Articles,
		transcripts: opts.Transcripts,
		classifier:  opts.Classifier,
		summarizer:  opts.Summarizer,
		audio:       opts.Audio,
		artifacts:   opts.Artifacts,
		history:     opts.History,
		tracer:      opts.Tracer,
		logger:      logger,
	}
}

// RunYouTube normalizes a video reference and summarizes its transcript.
func (p *Pipeline) RunYouTube(ctx context.Context, raw string) (*Result, error) {
	videoID, err := normalize.VideoID(raw)
	if err != nil {
		p.record(models.Source{Kind: models.SourceYouTube, VideoID: strings.TrimSpace(raw)}, nil, err, 0)
		return nil, err
	}
	return p.run(ctx, models.Source{Kind: models.SourceYouTube, VideoID: videoID})
}

// RunArticle normalizes an article URL and summarizes the page text.
func (p *Pipeline) RunArticle(ctx context.Context, raw string) (*Result, error) {
	articleURL, err := normalize.ArticleURL(raw)
	if err != nil {
		p.record(models.Source{Kind: models.SourceArticle, ArticleURL: strings.TrimSpace(raw)}, nil, err, 0)
		return nil, err
	}
	return p.run(ctx, models.Source{Kind: models.SourceArticle, ArticleURL: articleURL})
}

// RunPDF summarizes the concatenated text of the uploaded files.
func (p *Pipeline) RunPDF(ctx context.Context, files []models.PDFFile) (*Result, error) {
	return p.run(ctx, models.Source{Kind: models.SourcePDF, PDFFiles: files})
}

// Quiz generates a practice quiz from pasted text.
func (p *Pipeline) Quiz(ctx context.Context, text string) (string, error) {
	started := time.Now()
	quiz, err := p.summarizer.Quiz(ctx, text)
	src := models.Source{Kind: models.SourceQuiz}
	if err != nil {
		p.record(src, nil, err, time.Since(started))
		return "", err
	}
	p.record(src, &Result{Summary: quiz}, nil, time.Since(started))
	return quiz, nil
}

func (p *Pipeline) run(ctx context.Context, src models.Source) (*Result, error) {
	started := time.Now()
	trace := p.tracer.begin(src)

	res, err := p.execute(ctx, src, trace)
	elapsed := time.Since(started)

	trace.finish(err, elapsed)
	p.record(src, res, err, elapsed)

	if err != nil {
		p.logger.Error("request failed",
			"source_kind", src.Kind, "source_ref", src.Ref(),
			"error_kind", models.KindOf(err), "error", err)
		return nil, err
	}

	res.Duration = elapsed
	p.logger.Info("request complete",
		"source_kind", src.Kind, "source_ref", src.Ref(),
		"content_type", res.ContentType, "chunks", res.ChunkCount,
		"summary_chars", len(res.Summary), "audio_bytes", len(res.Audio),
		"duration_ms", elapsed.Milliseconds())
	return res, nil
}

func (p *Pipeline) execute(ctx context.Context, src models.Source, trace *requestTrace) (*Result, error) {
	scope, err := p.artifacts.NewScope(string(src.Kind) + "-" + src.Ref())
	if err != nil {
		return nil, models.E(models.ErrExtractionFailed, "Could not prepare workspace.",
			"Check that the work directory is writable.", err)
	}
	defer scope.Release()

	done := trace.start("extract")
	extracted, err := p.extract(ctx, src, scope)
	done(err)
	if err != nil {
		return nil, err
	}

	// Paragraph breaks are preserved here so the chunker can split on them.
	text := strings.TrimSpace(extracted.Text)
	if text == "" {
		return nil, models.E(models.ErrExtractionFailed, "No readable text was found.",
			"Try a different source.", nil)
	}

	done = trace.start("classify")
	ct := p.classifier.Classify(text)
	done(nil)

	done = trace.start("chunk")
	chunks := chunker.Split(text, ct)
	done(nil)

	done = trace.start("summarize")
	summary, err := p.summarizer.Summarize(ctx, chunks, ct)
	done(err)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Source:      src,
		Title:       extracted.Title,
		ContentType: ct,
		ChunkCount:  len(chunks),
		Summary:     summary,
		Keywords:    analytics.TopWords(text, topKeywordCount),
	}

	// Audio failure keeps the text summary; the user sees a notice instead
	// of a player.
	done = trace.start("audio")
	audio, lang, err := p.audio.Render(ctx, scope, summary)
	done(err)
	if err != nil {
		p.logger.Warn("audio generation failed",
			"source_ref", src.Ref(), "error", err)
		res.AudioError = models.UserMessage(err)
	} else {
		res.Audio = audio
		res.AudioLang = lang
	}

	return res, nil
}

func (p *Pipeline) extract(ctx context.Context, src models.Source, scope *artifacts.Scope) (models.Extracted, error) {
	switch src.Kind {
	case models.SourceYouTube:
		raw, err := p.transcripts.Fetch(ctx, src.VideoID)
		if err != nil {
			return models.Extracted{}, err
		}
		return models.Extracted{Text: transcript.Clean(raw)}, nil
	case models.SourceArticle:
		return p.articles.Extract(ctx, src.ArticleURL)
	case models.SourcePDF:
		text, err := pdftext.ExtractAll(scope.Dir(), src.PDFFiles)
		if err != nil {
			return models.Extracted{}, err
		}
		return models.Extracted{Text: text}, nil
	}
	return models.Extracted{}, models.E(models.ErrInvalidInput,
		fmt.Sprintf("Unknown source kind %q.", src.Kind), "Pick one of the supported inputs.", nil)
}

// record writes one history row. Store failures never affect the request.
func (p *Pipeline) record(src models.Source, res *Result, reqErr error, elapsed time.Duration) {
	if p.history == nil {
		return
	}
	rec := store.Record{
		SourceKind: string(src.Kind),
		SourceRef:  src.Ref(),
		Status:     "ok",
		DurationMS: elapsed.Milliseconds(),
	}
	if reqErr != nil {
		rec.Status = "failed"
		rec.ErrorKind = string(models.KindOf(reqErr))
	}
	if res != nil {
		rec.ContentType = string(res.ContentType)
		rec.ChunkCount = res.ChunkCount
		rec.SummaryChars = len(res.Summary)
		rec.AudioBytes = len(res.Audio)
		rec.TopKeywords = res.Keywords
	}
	if _, err := p.history.Insert(rec); err != nil {
		p.logger.Warn("failed to record request history", "error", err)
	}
}
