// Package normalize validates user input and canonicalizes it into a source
// reference: an 11-character YouTube video id or a syntactically valid
// article URL. It performs no network calls.
package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"

	"briefcast/models"
)

var (
	videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

	// Known YouTube URL shapes, in match order.
	youtubePathPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/live/|youtube\.com/shorts/)([^&\n?#]+)`),
		regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
	}

	urlFinder = xurls.Strict()
)

// VideoID extracts the 11-character video id from any supported YouTube URL
// shape, or from a bare id. Pasted prose around the URL is tolerated.
func VideoID(raw string) (string, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return "", models.E(models.ErrInvalidInput,
			"A YouTube URL is required.",
			"Paste a link like https://www.youtube.com/watch?v=dQw4w9WgXcQ.", nil)
	}

	// Bare 11-char id.
	if videoIDPattern.MatchString(input) {
		return input, nil
	}

	// When the input is prose containing a link, work on the first URL in it.
	if found := urlFinder.FindString(input); found != "" {
		input = found
	}

	if !strings.Contains(strings.ToLower(input), "youtube.com") &&
		!strings.Contains(strings.ToLower(input), "youtu.be") {
		return "", models.E(models.ErrInvalidInput,
			"The URL must be from a YouTube domain.",
			"Supported forms: watch?v=..., youtu.be/..., /embed/..., or a bare video id.", nil)
	}

	for _, pattern := range youtubePathPatterns {
		match := pattern.FindStringSubmatch(input)
		if match == nil {
			continue
		}
		id := match[1]
		// Drop trailing query or fragment junk carried into the capture.
		if i := strings.IndexAny(id, "&?#"); i >= 0 {
			id = id[:i]
		}
		if videoIDPattern.MatchString(id) {
			return id, nil
		}
	}

	return "", models.E(models.ErrInvalidInput,
		"Could not extract a video id from the URL.",
		"Check that the link points to a single YouTube video.", nil)
}

// ArticleURL validates a generic web URL syntactically. Reachability is
// deferred to the fetch step.
func ArticleURL(raw string) (string, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return "", models.E(models.ErrInvalidInput,
			"A website URL is required.",
			"Paste a full link like https://example.com/article.", nil)
	}

	if found := urlFinder.FindString(input); found != "" {
		input = found
	}

	u, err := url.Parse(input)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", models.E(models.ErrInvalidInput,
			"The website URL is not valid.",
			"Make sure it starts with http:// or https:// and includes a domain.", err)
	}
	return u.String(), nil
}
