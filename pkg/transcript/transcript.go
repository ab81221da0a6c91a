// Package transcript retrieves YouTube caption text. Retrieval runs an
// ordered list of named fallback strategies; the first one to produce text
// wins. Adding or reordering strategies is a data change, not control flow.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"

	"briefcast/models"
)

// minTranscriptChars guards against caption tracks that exist but carry no
// real spoken content.
const minTranscriptChars = 50

// Strategy is one named way of obtaining a transcript.
type Strategy struct {
	Name  string
	Fetch func(ctx context.Context) (string, error)
}

// Service fetches transcripts for video ids.
type Service struct {
	client *youtube.Client
	logger *slog.Logger
}

// NewService builds a transcript service. proxyURL optionally routes caption
// requests through an HTTP proxy; empty means direct.
func NewService(logger *slog.Logger, proxyURL string) (*Service, error) {
	client := &youtube.Client{}
	if proxyURL != "" {
		proxy, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid transcript proxy URL: %w", err)
		}
		client.HTTPClient = &http.Client{
			Transport: &http.Transport{Proxy: http.ProxyURL(proxy)},
		}
	}
	return &Service{client: client, logger: logger}, nil
}

// Fetch returns the cleaned transcript text for videoID, trying each
// fallback strategy in order.
func (s *Service) Fetch(ctx context.Context, videoID string) (string, error) {
	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		if ctx.Err() != nil || isNetworkError(err) {
			return "", models.E(models.ErrExtractionFailed,
				"Could not reach YouTube to look up the video.",
				"Check your network connection and try again in a moment.", err)
		}
		return "", models.E(models.ErrExtractionFailed,
			fmt.Sprintf("Video %s is unavailable.", videoID),
			"It may be private, deleted, or region-restricted.", err)
	}

	if len(video.CaptionTracks) == 0 {
		return "", noTranscriptError(videoID, nil)
	}

	text, err := s.run(ctx, videoID, s.strategies(video))
	if err != nil {
		return "", err
	}

	cleaned := Clean(text)
	if len(cleaned) < minTranscriptChars {
		return "", models.E(models.ErrExtractionFailed,
			"The transcript is too short or empty.",
			"This video may not have enough spoken content to summarize.", nil)
	}
	return cleaned, nil
}

// strategies builds the ordered fallback list for a video: preferred English
// captions, US English, the auto-generated track, then any listed track.
func (s *Service) strategies(video *youtube.Video) []Strategy {
	list := []Strategy{
		{Name: "english captions", Fetch: s.languageFetch(video, "en")},
		{Name: "us english captions", Fetch: s.languageFetch(video, "en-US")},
	}

	for _, track := range video.CaptionTracks {
		if track.Kind == "asr" {
			list = append(list, Strategy{
				Name:  "auto-generated captions (" + track.LanguageCode + ")",
				Fetch: s.languageFetch(video, track.LanguageCode),
			})
			break
		}
	}

	if len(video.CaptionTracks) > 0 {
		first := video.CaptionTracks[0]
		list = append(list, Strategy{
			Name:  "first listed caption track (" + first.LanguageCode + ")",
			Fetch: s.languageFetch(video, first.LanguageCode),
		})
	}

	return list
}

func (s *Service) languageFetch(video *youtube.Video, lang string) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		segments, err := s.client.GetTranscriptCtx(ctx, video, lang)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, segment := range segments {
			if segment.Text == "" {
				continue
			}
			b.WriteString(segment.Text)
			b.WriteString("\n")
		}
		return b.String(), nil
	}
}

// run tries each strategy in order and returns the first non-empty result.
// When all fail, the reported error is the no-transcript case rather than a
// generic failure, with each strategy's outcome logged along the way.
func (s *Service) run(ctx context.Context, videoID string, strategies []Strategy) (string, error) {
	var failures []string
	for _, strategy := range strategies {
		text, err := strategy.Fetch(ctx)
		if err == nil && strings.TrimSpace(text) != "" {
			if s.logger != nil {
				s.logger.Info("transcript strategy succeeded", "video_id", videoID, "strategy", strategy.Name)
			}
			return text, nil
		}
		if err == nil {
			err = fmt.Errorf("empty transcript")
		}
		if s.logger != nil {
			s.logger.Warn("transcript strategy failed", "video_id", videoID, "strategy", strategy.Name, "error", err)
		}
		failures = append(failures, fmt.Sprintf("%s: %v", strategy.Name, err))
	}
	return "", noTranscriptError(videoID, fmt.Errorf("all strategies failed: %s", strings.Join(failures, "; ")))
}

func noTranscriptError(videoID string, err error) error {
	return models.E(models.ErrExtractionFailed,
		fmt.Sprintf("No transcript is available for video %s.", videoID),
		"The video may have captions disabled, or its captions may be restricted.", err)
}

func isNetworkError(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

var (
	bracketCue   = regexp.MustCompile(`\[[^\]]*\]`)
	parenCue     = regexp.MustCompile(`\([^)]*\)`)
	spaceRun     = regexp.MustCompile(`\s+`)
	floatingStop = regexp.MustCompile(`(\w)\s+([.,!?])`)
)

// Clean strips caption cues like [Music] or (applause) and normalizes the
// whitespace that caption timing leaves behind.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = bracketCue.ReplaceAllString(text, "")
	text = parenCue.ReplaceAllString(text, "")
	text = spaceRun.ReplaceAllString(text, " ")
	text = floatingStop.ReplaceAllString(text, "$1$2")
	return strings.TrimSpace(text)
}
