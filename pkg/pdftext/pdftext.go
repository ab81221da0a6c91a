// Package pdftext extracts the text layer from uploaded PDF files.
package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"briefcast/models"
)

// ExtractFile reads the text layer of one PDF on disk. Scanned-image PDFs
// with no text layer come back empty without error; the caller decides
// whether an empty result is fatal.
func ExtractFile(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text layer: %w", err)
	}
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("failed to read PDF content: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// ExtractAll writes each uploaded file into dir, extracts its text, and
// concatenates the results in upload order. It fails with unreadable_pdf
// when no file yields any text.
func ExtractAll(dir string, files []models.PDFFile) (string, error) {
	if len(files) == 0 {
		return "", models.E(models.ErrInvalidInput,
			"No PDF files were uploaded.",
			"Choose at least one PDF file and try again.", nil)
	}

	var parts []string
	var lastErr error
	for i, file := range files {
		path := filepath.Join(dir, fmt.Sprintf("upload-%d.pdf", i))
		if err := os.WriteFile(path, file.Data, 0600); err != nil {
			return "", fmt.Errorf("failed to stage uploaded PDF %q: %w", file.Name, err)
		}

		text, err := ExtractFile(path)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", file.Name, err)
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", models.E(models.ErrUnreadablePDF,
			"Could not extract text from the uploaded PDF files.",
			"They might be scanned images or contain no readable text layer.", lastErr)
	}
	return strings.Join(parts, "\n\n"), nil
}
