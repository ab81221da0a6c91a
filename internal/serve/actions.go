// Package serve wires configuration and components together and runs the
// HTTP server.
package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"briefcast/internal/config"
	"briefcast/internal/pipeline"
	"briefcast/internal/server"
	"briefcast/internal/store"
	"briefcast/internal/summarize"
	"briefcast/pkg/article"
	"briefcast/pkg/artifacts"
	"briefcast/pkg/classify"
	"briefcast/pkg/fetcher"
	"briefcast/pkg/transcript"
	"briefcast/pkg/tts"
)

func ServeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := config.Load(c.String("secrets"))
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(2)
	}
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	if c.IsSet("workdir") {
		cfg.WorkDir = c.String("workdir")
	}
	if c.IsSet("keywords") {
		cfg.KeywordsFile = c.String("keywords")
	}

	manager, err := artifacts.NewManager(cfg.WorkDir)
	if err != nil {
		logger.Error("failed to initialize work directory", "error", err)
		os.Exit(2)
	}

	history, err := store.Open(cfg.WorkDir)
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		os.Exit(2)
	}
	defer history.Close()

	classifier := classify.Default()
	if cfg.KeywordsFile != "" {
		classifier, err = classify.FromFile(cfg.KeywordsFile)
		if err != nil {
			logger.Error("failed to load keyword file", "path", cfg.KeywordsFile, "error", err)
			os.Exit(2)
		}
		logger.Info("using keyword file", "path", cfg.KeywordsFile)
	}

	transcripts, err := transcript.NewService(logger, cfg.TranscriptProxyURL)
	if err != nil {
		logger.Error("failed to initialize transcript service", "error", err)
		os.Exit(2)
	}

	completer, err := summarize.NewGroqCompleter(summarize.GroqConfig{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
	if err != nil {
		logger.Error("failed to initialize model client", "error", err)
		os.Exit(2)
	}

	var tracer *pipeline.Tracer
	if cfg.TraceAPIKey != "" {
		tracer, err = pipeline.NewTracer(cfg.WorkDir, logger)
		if err != nil {
			logger.Error("failed to initialize tracing", "error", err)
			os.Exit(2)
		}
		logger.Info("request tracing enabled", "dir", cfg.WorkDir)
	}

	p := pipeline.New(pipeline.Options{
		Articles:    article.NewExtractor(fetcher.New()),
		Transcripts: transcripts,
		Classifier:  classifier,
		Summarizer:  summarize.NewEngine(completer, logger),
		Audio:       tts.NewRenderer(),
		Artifacts:   manager,
		History:     history,
		Tracer:      tracer,
		Logger:      logger,
	})

	srv, err := server.New(p, history, logger)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "addr", cfg.Addr, "model", cfg.Model, "workdir", cfg.WorkDir)
	return srv.ListenAndServe(ctx, cfg.Addr)
}
