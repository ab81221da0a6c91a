// Package classify labels extracted text as technical, narrative, or general
// content. The label drives prompt template and chunk size selection and has
// no other consumer. Classification is a pure keyword heuristic: same input,
// same label, every time.
package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"briefcast/models"
	"briefcast/pkg/analytics"
)

// sampleLimit caps how much text feeds the heuristic. Keyword signals
// concentrate near the start of a document; scanning megabytes adds nothing.
const sampleLimit = 20000

// Classifier scores text against configurable keyword sets. The exact
// keyword lists are an implementation detail, not a contract; load
// replacements from YAML to tune behavior.
type Classifier struct {
	technical []string
	narrative []string

	// Minimum scores a category must clear before it beats general.
	technicalThreshold int
	narrativeThreshold int
}

// keywordConfig is the YAML shape for a custom keyword file.
type keywordConfig struct {
	Technical          []string `yaml:"technical"`
	Narrative          []string `yaml:"narrative"`
	TechnicalThreshold int      `yaml:"technical_threshold"`
	NarrativeThreshold int      `yaml:"narrative_threshold"`
}

// Default returns a classifier with the built-in keyword sets.
func Default() *Classifier {
	return &Classifier{
		technical: []string{
			"algorithm", "function", "method", "class", "variable", "data structure",
			"implementation", "code", "programming", "software", "api", "database",
			"framework", "library", "python", "javascript", "java", "c++", "sql",
			"compiler", "kernel", "protocol",
		},
		narrative: []string{
			"story", "character", "plot", "narrative", "chapter", "scene",
			"dialogue", "protagonist", "antagonist", "setting", "theme",
			"memoir", "novel",
		},
		technicalThreshold: 3,
		narrativeThreshold: 2,
	}
}

// FromFile loads keyword sets from a YAML file. Empty fields fall back to
// the built-in defaults.
func FromFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword file: %w", err)
	}
	var cfg keywordConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keyword file: %w", err)
	}

	c := Default()
	if len(cfg.Technical) > 0 {
		c.technical = cfg.Technical
	}
	if len(cfg.Narrative) > 0 {
		c.narrative = cfg.Narrative
	}
	if cfg.TechnicalThreshold > 0 {
		c.technicalThreshold = cfg.TechnicalThreshold
	}
	if cfg.NarrativeThreshold > 0 {
		c.narrativeThreshold = cfg.NarrativeThreshold
	}
	return c, nil
}

// Classify labels text. Tie-break priority is fixed: technical beats
// narrative beats general.
func (c *Classifier) Classify(text string) models.ContentType {
	sample := text
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}
	lower := strings.ToLower(sample)
	freq := analytics.WordFrequency(lower)

	technicalScore := score(lower, freq, c.technical)
	narrativeScore := score(lower, freq, c.narrative)

	switch {
	case technicalScore > c.technicalThreshold && technicalScore >= narrativeScore:
		return models.ContentTechnical
	case narrativeScore > c.narrativeThreshold && narrativeScore > technicalScore:
		return models.ContentNarrative
	default:
		return models.ContentGeneral
	}
}

// score counts how many indicators appear in the text. Single words are
// checked against the frequency map; multi-word phrases fall back to a
// substring scan. Each indicator contributes at most one point.
func score(lower string, freq map[string]int, indicators []string) int {
	n := 0
	for _, indicator := range indicators {
		if strings.ContainsAny(indicator, " +") {
			if strings.Contains(lower, indicator) {
				n++
			}
			continue
		}
		if freq[indicator] > 0 {
			n++
		}
	}
	return n
}
