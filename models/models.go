// Package models defines the request-scoped data structures shared by the
// summarization pipeline. Nothing here survives past a single user interaction.
package models

// SourceKind discriminates the tagged Source union.
type SourceKind string

const (
	SourceYouTube SourceKind = "youtube"
	SourceArticle SourceKind = "article"
	SourcePDF     SourceKind = "pdf"
	SourceQuiz    SourceKind = "quiz"
)

// Source describes one piece of user input after normalization. Exactly one
// of VideoID, ArticleURL, or PDFFiles is populated, per Kind.
type Source struct {
	Kind       SourceKind
	VideoID    string
	ArticleURL string
	PDFFiles   []PDFFile
}

// PDFFile is one uploaded PDF, held in memory until extraction.
type PDFFile struct {
	Name string
	Data []byte
}

// Ref returns a short human-readable reference for logs and history rows.
func (s Source) Ref() string {
	switch s.Kind {
	case SourceYouTube:
		return s.VideoID
	case SourceArticle:
		return s.ArticleURL
	case SourcePDF:
		if len(s.PDFFiles) == 1 {
			return s.PDFFiles[0].Name
		}
		names := ""
		for i, f := range s.PDFFiles {
			if i > 0 {
				names += ", "
			}
			names += f.Name
		}
		return names
	case SourceQuiz:
		return "pasted text"
	}
	return ""
}

// ContentType is the coarse label driving prompt and chunk-size selection.
type ContentType string

const (
	ContentTechnical ContentType = "technical"
	ContentNarrative ContentType = "narrative"
	ContentGeneral   ContentType = "general"
)

// Extracted is the raw text produced by the extractor, before chunking.
type Extracted struct {
	Text  string
	Title string
}

// Chunk is one bounded-size span of text. Index orders chunks for the
// map-reduce combination step; there is no other invariant.
type Chunk struct {
	Index int
	Text  string
}
