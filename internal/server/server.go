// Package server exposes the summarization pipeline over HTTP. Pages are
// rendered server-side from embedded templates; summaries and audio travel
// in the response body as data URIs, so nothing is retained after the
// response is written.
package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"briefcast/internal/pipeline"
	"briefcast/internal/store"
	"briefcast/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	requestTimeout = 5 * time.Minute
	maxUploadBytes = 50 << 20
	historyLimit   = 50
)

type Server struct {
	pipeline  *pipeline.Pipeline
	history   *store.Store
	logger    *slog.Logger
	templates *template.Template
}

// New builds the server. history may be nil; the history page then shows
// an empty list.
func New(p *pipeline.Pipeline, history *store.Store, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		pipeline:  p,
		history:   history,
		logger:    logger,
		templates: templates,
	}, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /summarize/youtube", s.handleYouTube)
	mux.HandleFunc("POST /summarize/article", s.handleArticle)
	mux.HandleFunc("POST /summarize/pdf", s.handlePDF)
	mux.HandleFunc("POST /quiz", s.handleQuiz)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// resultView is the data handed to the result template.
type resultView struct {
	Title       string
	SourceKind  string
	SourceRef   string
	ContentType string
	ChunkCount  int
	Summary     string
	SummaryURI  template.URL
	AudioURI    template.URL
	AudioError  string
	Keywords    []string
	DurationSec float64
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "home.html", nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleYouTube(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res, err := s.pipeline.RunYouTube(ctx, r.FormValue("video"))
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderResult(w, res)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res, err := s.pipeline.RunArticle(ctx, r.FormValue("url"))
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderResult(w, res)
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderError(w, models.E(models.ErrInvalidInput, "Upload could not be read.",
			"Keep the combined upload under 50 MB.", err))
		return
	}

	var files []models.PDFFile
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["pdfs"] {
			f, err := header.Open()
			if err != nil {
				s.renderError(w, models.E(models.ErrInvalidInput, "Upload could not be read.",
					"Try uploading the files again.", err))
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				s.renderError(w, models.E(models.ErrInvalidInput, "Upload could not be read.",
					"Try uploading the files again.", err))
				return
			}
			files = append(files, models.PDFFile{Name: header.Filename, Data: data})
		}
	}

	res, err := s.pipeline.RunPDF(ctx, files)
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderResult(w, res)
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	quiz, err := s.pipeline.Quiz(ctx, r.FormValue("text"))
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.render(w, "quiz.html", struct{ Quiz string }{Quiz: quiz})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	var records []store.Record
	if s.history != nil {
		var err error
		records, err = s.history.Recent(historyLimit)
		if err != nil {
			s.logger.Error("failed to load history", "error", err)
		}
	}
	s.render(w, "history.html", struct{ Records []store.Record }{Records: records})
}

func (s *Server) renderResult(w http.ResponseWriter, res *pipeline.Result) {
	view := resultView{
		Title:       res.Title,
		SourceKind:  string(res.Source.Kind),
		SourceRef:   res.Source.Ref(),
		ContentType: string(res.ContentType),
		ChunkCount:  res.ChunkCount,
		Summary:     res.Summary,
		SummaryURI:  dataURI("text/plain", []byte(res.Summary)),
		AudioError:  res.AudioError,
		Keywords:    res.Keywords,
		DurationSec: res.Duration.Seconds(),
	}
	if len(res.Audio) > 0 {
		view.AudioURI = dataURI("audio/mpeg", res.Audio)
	}
	s.render(w, "result.html", view)
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case models.ErrInvalidInput:
		status = http.StatusBadRequest
	case models.ErrExtractionFailed, models.ErrUnreadablePDF,
		models.ErrSSL, models.ErrAccessDenied:
		status = http.StatusUnprocessableEntity
	}

	w.WriteHeader(status)
	s.render(w, "error.html", struct {
		Kind    string
		Message string
	}{
		Kind:    string(kind),
		Message: models.UserMessage(err),
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render failed", "template", name, "error", err)
	}
}

func dataURI(mime string, data []byte) template.URL {
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}
