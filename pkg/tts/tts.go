// Package tts renders summary text to spoken audio. The Google Translate
// speech endpoint caps requests at a few thousand characters, so text is
// truncated to a hard ceiling and synthesized in sentence-sized segments
// that are concatenated into a single MP3.
package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	htgotts "github.com/hegedustibor/htgo-tts"
	"github.com/pemistahl/lingua-go"

	"briefcast/models"
	"briefcast/pkg/artifacts"
)

const (
	// maxSpeechChars bounds the text handed to the synthesizer.
	maxSpeechChars = 5000
	// truncateAt leaves room for the continuation notice.
	truncateAt = 4800
	// segmentLimit is the per-request character cap of the translate
	// speech endpoint.
	segmentLimit = 200

	continuationNotice = "... Summary continues in the text version."
)

// Synthesizer converts text to an MP3 file on disk and returns its path.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang, dir, name string) (string, error)
}

// Renderer cleans, truncates, and voices summary text.
type Renderer struct {
	synth    Synthesizer
	detector lingua.LanguageDetector
}

// NewRenderer returns a Renderer backed by the Google Translate speech
// endpoint, with language detection over the voices it supports well.
func NewRenderer() *Renderer {
	return NewRendererWith(googleSynthesizer{})
}

// NewRendererWith lets callers substitute the synthesizer.
func NewRendererWith(synth Synthesizer) *Renderer {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Spanish,
			lingua.French,
			lingua.German,
			lingua.Italian,
			lingua.Portuguese,
		).
		Build()
	return &Renderer{synth: synth, detector: detector}
}

// Render voices summary into an MP3 inside scope and returns the audio
// bytes and the language code used. The file is written under the scope so
// releasing the scope discards it.
func (r *Renderer) Render(ctx context.Context, scope *artifacts.Scope, summary string) ([]byte, string, error) {
	text := Truncate(CleanForSpeech(summary))
	if text == "" {
		return nil, "", models.E(models.ErrAudioFailed, "Nothing to voice.",
			"The summary was empty after cleaning.", nil)
	}

	lang := r.language(text)
	path, err := r.synth.Synthesize(ctx, text, lang, scope.Dir(), "summary")
	if err != nil {
		return nil, "", models.E(models.ErrAudioFailed, "Audio generation failed.",
			"The text summary is still available above.", err)
	}
	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, "", models.E(models.ErrAudioFailed, "Audio generation failed.",
			"The text summary is still available above.", err)
	}
	return audio, lang, nil
}

// Truncate caps text at the synthesizer ceiling, appending a notice when
// content was dropped. The cut lands on a rune boundary.
func Truncate(text string) string {
	if len(text) <= maxSpeechChars {
		return text
	}
	return text[:runeBoundary(text, truncateAt)] + continuationNotice
}

// runeBoundary backs n up to the nearest rune start so text[:n] never cuts a
// multibyte rune in half.
func runeBoundary(text string, n int) int {
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	if n == 0 {
		return utf8.UTFMax
	}
	return n
}

func (r *Renderer) language(text string) string {
	lang, ok := r.detector.DetectLanguageOf(text)
	if !ok {
		return "en"
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// googleSynthesizer voices text through the translate speech endpoint,
// one segment per request.
type googleSynthesizer struct{}

func (googleSynthesizer) Synthesize(ctx context.Context, text, lang, dir, name string) (string, error) {
	speech := htgotts.Speech{Folder: dir, Language: lang}

	var combined []byte
	for i, segment := range SplitSegments(text, segmentLimit) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		part, err := speech.CreateSpeechFile(segment, fmt.Sprintf("%s-part%03d", name, i))
		if err != nil {
			return "", fmt.Errorf("synthesize segment %d: %w", i, err)
		}
		data, err := os.ReadFile(part)
		if err != nil {
			return "", fmt.Errorf("read segment %d: %w", i, err)
		}
		combined = append(combined, data...)
		os.Remove(part)
	}

	out := filepath.Join(dir, name+".mp3")
	if err := os.WriteFile(out, combined, 0o644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	return out, nil
}

// SplitSegments breaks text on sentence boundaries into pieces no longer
// than limit. A sentence longer than the limit is cut on word boundaries.
func SplitSegments(text string, limit int) []string {
	var segments []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			segments = append(segments, s)
		}
		current.Reset()
	}

	for _, sentence := range splitSentences(text) {
		if len(sentence) > limit {
			flush()
			for _, piece := range splitWords(sentence, limit) {
				segments = append(segments, piece)
			}
			continue
		}
		if current.Len()+len(sentence)+1 > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	flush()
	return segments
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '.' || c == '!' || c == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func splitWords(sentence string, limit int) []string {
	var out []string
	var current strings.Builder
	for _, word := range strings.Fields(sentence) {
		if len(word) > limit {
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
			for len(word) > limit {
				cut := runeBoundary(word, limit)
				out = append(out, word[:cut])
				word = word[cut:]
			}
			if word != "" {
				current.WriteString(word)
			}
			continue
		}
		if current.Len()+len(word)+1 > limit {
			out = append(out, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}
