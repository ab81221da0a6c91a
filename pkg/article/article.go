// Package article turns fetched HTML into plain article text. Readability
// isolates the main content; goquery strips the remaining markup. Pages that
// defeat readability fall back to a direct tag scan.
package article

import (
	"bufio"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"briefcast/models"
	"briefcast/pkg/fetcher"
)

// Extractor fetches and extracts article text.
type Extractor struct {
	client *fetcher.Client
}

// NewExtractor builds an article extractor on top of a fetch client.
func NewExtractor(client *fetcher.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract downloads rawURL and returns its title and plain text. Fetch
// errors pass through with their kinds; empty extraction results surface as
// extraction_failed.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (models.Extracted, error) {
	body, err := e.client.Get(ctx, rawURL)
	if err != nil {
		return models.Extracted{}, err
	}
	return FromHTML(rawURL, body)
}

// FromHTML extracts title and plain text from already-fetched HTML.
func FromHTML(rawURL string, body []byte) (models.Extracted, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return models.Extracted{}, models.E(models.ErrInvalidInput,
			"The article URL could not be parsed.", "", err)
	}

	var title, text string
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(string(body)), parsedURL)
	if err == nil {
		title = normalizeText(article.Title)
		text = normalizeBlocks(article.TextContent)
	}

	if text == "" {
		title, text = fallbackExtract(string(body), title)
	}

	if strings.TrimSpace(text) == "" {
		return models.Extracted{}, models.E(models.ErrExtractionFailed,
			"Could not extract readable content from the URL.",
			"The page might be protected, require a login, or rely on scripts to render its content.", nil)
	}

	return models.Extracted{Title: title, Text: text}, nil
}

// fallbackExtract scans content-bearing tags directly when readability
// produces nothing, which happens on sparse or unconventional markup.
func fallbackExtract(html, title string) (string, string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return title, ""
	}

	if title == "" {
		title = normalizeText(doc.Find("title").First().Text())
	}

	const blockTags = "h1, h2, h3, p, li, pre"

	var blocks []string
	doc.Find(blockTags).Each(func(_ int, s *goquery.Selection) {
		// A block nested inside another matched block (a p inside an li,
		// say) is already covered by its ancestor's text.
		if s.ParentsFiltered(blockTags).Length() > 0 {
			return
		}
		if text := normalizeText(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	return title, strings.Join(blocks, "\n\n")
}

// normalizeBlocks keeps paragraph breaks but collapses intra-paragraph
// whitespace, so the chunker can still split on paragraph boundaries.
func normalizeBlocks(input string) string {
	var blocks []string
	for _, line := range strings.Split(input, "\n") {
		if trimmed := normalizeText(line); trimmed != "" {
			blocks = append(blocks, trimmed)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// normalizeText trims a string and collapses internal line breaks to spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
