package classify

import (
	"os"
	"path/filepath"
	"testing"

	"briefcast/models"
)

const technicalText = `This article explains the algorithm behind the scheduler.
The implementation uses a priority queue data structure. The code is written
in python and exposed through an api backed by a sql database. The framework
ships a library of helper functions and a compiler plugin.`

const narrativeText = `The story follows a young protagonist through the first
chapter of her journey. Each scene deepens the plot, and the dialogue between
the character and the antagonist carries the novel's central theme.`

const generalText = `The city council met on Tuesday to discuss the new budget.
Several residents spoke about road maintenance and the upcoming festival.`

func TestClassify_Categories(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		text string
		want models.ContentType
	}{
		{"technical", technicalText, models.ContentTechnical},
		{"narrative", narrativeText, models.ContentNarrative},
		{"general", generalText, models.ContentGeneral},
		{"empty", "", models.ContentGeneral},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%s) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := Default()
	first := c.Classify(technicalText)
	for i := 0; i < 50; i++ {
		if got := c.Classify(technicalText); got != first {
			t.Fatalf("Classify() iteration %d = %s, first call = %s", i, got, first)
		}
	}
}

func TestClassify_TieBreakFavorsTechnical(t *testing.T) {
	// Four indicators from each set: equal scores above both thresholds.
	text := `The algorithm code used a database api to archive the story,
	the plot, the character arcs and the dialogue.`
	c := Default()
	if got := c.Classify(text); got != models.ContentTechnical {
		t.Errorf("Classify(tie) = %s, want %s", got, models.ContentTechnical)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	content := `technical:
  - quasar
  - neutrino
technical_threshold: 1
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	c, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}

	text := "The quasar emitted a neutrino burst observed last week."
	if got := c.Classify(text); got != models.ContentTechnical {
		t.Errorf("Classify(custom keywords) = %s, want %s", got, models.ContentTechnical)
	}

	// Narrative defaults still apply when the file omits them.
	if got := c.Classify(narrativeText); got != models.ContentNarrative {
		t.Errorf("Classify(narrative with custom file) = %s, want %s", got, models.ContentNarrative)
	}
}

func TestFromFile_Missing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("FromFile(missing) error = nil, want error")
	}
}
