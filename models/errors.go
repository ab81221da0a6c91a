package models

import (
	"errors"
	"fmt"
)

// ErrorKind is a stable, user-facing error category. Kinds are reported to
// the UI and recorded in request history; they are never recovered internally.
type ErrorKind string

const (
	ErrInvalidInput          ErrorKind = "invalid_input"
	ErrExtractionFailed      ErrorKind = "extraction_failed"
	ErrSSL                   ErrorKind = "ssl_error"
	ErrAccessDenied          ErrorKind = "access_denied"
	ErrUnreadablePDF         ErrorKind = "unreadable_pdf"
	ErrSummarizationFailed   ErrorKind = "summarization_failed"
	ErrAudioFailed           ErrorKind = "audio_failed"
)

// PipelineError carries a category, a human-readable message, and a suggested
// remedy. Each pipeline stage fails fast with one of these.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Remedy  string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// E builds a PipelineError. err may be nil.
func E(kind ErrorKind, message, remedy string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Message: message, Remedy: remedy, Err: err}
}

// KindOf extracts the error kind from err, or empty string when err is not a
// PipelineError.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// UserMessage returns the message plus remedy for display, falling back to
// err.Error() for plain errors.
func UserMessage(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		if pe.Remedy != "" {
			return pe.Message + " " + pe.Remedy
		}
		return pe.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
