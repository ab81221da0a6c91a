package tts

import (
	"regexp"
	"strings"
)

var (
	boldMark     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicMark   = regexp.MustCompile(`\*(.*?)\*`)
	headerMark   = regexp.MustCompile(`#{1,6}\s*(.*)`)
	codeMark     = regexp.MustCompile("`(.*?)`")
	linkMark     = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	specialChars = regexp.MustCompile("[#*_>`•-]")
	numberedItem = regexp.MustCompile(`(?m)^\s*\d+\.\s*`)
	bulletItem   = regexp.MustCompile(`(?m)^\s*[•-]\s*`)
	bareNewline  = regexp.MustCompile(`([^.!?])\n`)
	newlineRun   = regexp.MustCompile(`\n+`)
	spaceRun     = regexp.MustCompile(`\s{2,}`)
)

type spokenForm struct {
	pattern *regexp.Regexp
	spoken  string
}

// spokenForms maps initialisms to forms a speech synthesizer pronounces
// sensibly.
var spokenForms []spokenForm

func init() {
	pairs := [][2]string{
		{"API", "A P I"},
		{"URL", "U R L"},
		{"HTML", "H T M L"},
		{"CSS", "C S S"},
		{"AI", "A I"},
		{"ML", "machine learning"},
		{"NLP", "natural language processing"},
		{"PDF", "P D F"},
		{"SQL", "S Q L"},
		{"CEO", "C E O"},
		{"CTO", "C T O"},
	}
	for _, p := range pairs {
		spokenForms = append(spokenForms, spokenForm{
			pattern: regexp.MustCompile(`\b` + p[0] + `\b`),
			spoken:  p[1],
		})
	}
}

// CleanForSpeech strips markdown structure and expands initialisms so a
// summary reads naturally when spoken.
func CleanForSpeech(text string) string {
	if text == "" {
		return ""
	}

	text = boldMark.ReplaceAllString(text, "$1")
	text = italicMark.ReplaceAllString(text, "$1")
	text = headerMark.ReplaceAllString(text, "$1")
	text = codeMark.ReplaceAllString(text, "$1")
	text = linkMark.ReplaceAllString(text, "$1")

	text = numberedItem.ReplaceAllString(text, "")
	text = bulletItem.ReplaceAllString(text, "")
	text = specialChars.ReplaceAllString(text, "")

	// Sentences broken across lines get a period so speech pauses correctly.
	text = bareNewline.ReplaceAllString(text, "$1. ")
	text = newlineRun.ReplaceAllString(text, " ")
	text = spaceRun.ReplaceAllString(text, " ")

	for _, f := range spokenForms {
		text = f.pattern.ReplaceAllString(text, f.spoken)
	}

	return strings.TrimSpace(text)
}
