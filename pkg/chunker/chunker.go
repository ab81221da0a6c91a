// Package chunker splits extracted text into bounded-size chunks for the
// summarization call. Splits prefer paragraph, then sentence, then word
// boundaries; concatenating the chunks reconstructs the original text modulo
// whitespace normalization.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"briefcast/models"
)

// TokenCeiling is the per-session token budget. Text estimated at or under
// the ceiling is summarized in a single call; anything larger is chunked and
// combined map-reduce style.
const TokenCeiling = 6000

// Target chunk sizes in characters per content type. Technical text gets
// small chunks so dense detail survives the map step; narrative text can
// carry longer spans without losing coherence.
const (
	technicalChunkSize = 500
	narrativeChunkSize = 2000
	generalChunkSize   = 1200
)

var (
	paragraphSplit = regexp.MustCompile(`\n{2,}`)
	sentenceEnd    = regexp.MustCompile(`([.!?])\s+`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// TargetSize returns the chunk size in characters for a content type.
func TargetSize(ct models.ContentType) int {
	switch ct {
	case models.ContentTechnical:
		return technicalChunkSize
	case models.ContentNarrative:
		return narrativeChunkSize
	default:
		return generalChunkSize
	}
}

// EstimateTokens approximates the token count of text as the average of a
// word-based estimate (1.3 tokens per word) and a character-based estimate
// (3.5 characters per token).
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := float64(len(strings.Fields(text)))
	chars := float64(len(text))
	return int((words*1.3 + chars/3.5) / 2)
}

// chunkMultiple sets how many target-size chunks a text may fill before
// per-chunk summarization kicks in, even when the text fits under the token
// ceiling. A long document benefits from per-section passes well before the
// model's context runs out.
const chunkMultiple = 4

// NeedsChunking reports whether text exceeds the session token ceiling.
func NeedsChunking(text string) bool {
	return EstimateTokens(text) > TokenCeiling
}

// Split breaks text into ordered chunks of roughly targetSize characters.
// Text comes back as a single chunk only while it fits under the token
// ceiling and within a few target-size chunks for its content type. No chunk
// ever exceeds the token ceiling, and no text is dropped or duplicated.
func Split(text string, ct models.ContentType) []models.Chunk {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	target := TargetSize(ct)
	if !NeedsChunking(trimmed) && len(trimmed) <= chunkMultiple*target {
		return []models.Chunk{{Index: 0, Text: trimmed}}
	}

	pieces := splitUnits(trimmed, target)

	chunks := make([]models.Chunk, 0, len(pieces))
	for i, p := range pieces {
		chunks = append(chunks, models.Chunk{Index: i, Text: p})
	}
	return chunks
}

// splitUnits packs paragraphs into chunks of up to target characters,
// descending to sentence and word boundaries for oversized units.
func splitUnits(text string, target int) []string {
	var out []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			out = append(out, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, para := range paragraphSplit.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) > target {
			flush()
			out = append(out, splitLongUnit(para, target)...)
			continue
		}

		if current.Len() > 0 && current.Len()+len(para)+2 > target {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()
	return out
}

// splitLongUnit splits one oversized paragraph at sentence boundaries, and
// at word boundaries when a single sentence still exceeds the target.
func splitLongUnit(para string, target int) []string {
	var out []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			out = append(out, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, sentence := range splitSentences(para) {
		if len(sentence) > target {
			flush()
			out = append(out, splitWords(sentence, target)...)
			continue
		}
		if current.Len() > 0 && current.Len()+len(sentence)+1 > target {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}
	flush()
	return out
}

// splitSentences cuts text after sentence-ending punctuation. The terminator
// stays with its sentence so reassembly loses nothing.
func splitSentences(text string) []string {
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// splitWords is the last-resort split for a run of text with no usable
// boundaries, packing whole words up to the target size.
func splitWords(text string, target int) []string {
	var out []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		// A single word longer than the target gets hard-cut on a rune
		// boundary.
		for len(word) > target {
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
			cut := runeBoundary(word, target)
			out = append(out, word[:cut])
			word = word[cut:]
		}
		if word == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(word)+1 > target {
			out = append(out, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

// runeBoundary backs n up to the nearest rune start so text[:n] never cuts a
// multibyte rune in half. Returns n unchanged when it already sits on a
// boundary.
func runeBoundary(text string, n int) int {
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	if n == 0 {
		return utf8.UTFMax
	}
	return n
}

// NormalizeWhitespace collapses all whitespace runs to single spaces. Chunk
// reassembly is compared under this normalization.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
