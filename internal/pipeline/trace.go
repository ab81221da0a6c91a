package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"briefcast/models"
)

// Tracer writes a per-request YAML timeline of stage durations. It is
// enabled only when a trace key is configured; a nil Tracer is a no-op.
type Tracer struct {
	dir    string
	logger *slog.Logger
}

// NewTracer prepares the trace directory under workDir.
func NewTracer(workDir string, logger *slog.Logger) (*Tracer, error) {
	dir := filepath.Join(workDir, "traces")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracer{dir: dir, logger: logger}, nil
}

type stageEntry struct {
	Stage      string `yaml:"stage"`
	DurationMS int64  `yaml:"duration_ms"`
	Status     string `yaml:"status"`
	Error      string `yaml:"error,omitempty"`
}

type traceFile struct {
	SourceKind string       `yaml:"source_kind"`
	SourceRef  string       `yaml:"source_ref"`
	StartedAt  string       `yaml:"started_at"`
	DurationMS int64        `yaml:"duration_ms"`
	Status     string       `yaml:"status"`
	ErrorKind  string       `yaml:"error_kind,omitempty"`
	Stages     []stageEntry `yaml:"stages"`
}

type requestTrace struct {
	tracer  *Tracer
	source  models.Source
	started time.Time
	stages  []stageEntry
}

func (t *Tracer) begin(src models.Source) *requestTrace {
	if t == nil {
		return nil
	}
	return &requestTrace{tracer: t, source: src, started: time.Now()}
}

// start begins timing a stage. The returned func records the outcome.
func (rt *requestTrace) start(name string) func(error) {
	if rt == nil {
		return func(error) {}
	}
	began := time.Now()
	return func(err error) {
		entry := stageEntry{
			Stage:      name,
			DurationMS: time.Since(began).Milliseconds(),
			Status:     "ok",
		}
		if err != nil {
			entry.Status = "failed"
			entry.Error = err.Error()
		}
		rt.stages = append(rt.stages, entry)
	}
}

// finish writes the timeline file. Trace failures only log.
func (rt *requestTrace) finish(reqErr error, elapsed time.Duration) {
	if rt == nil {
		return
	}
	file := traceFile{
		SourceKind: string(rt.source.Kind),
		SourceRef:  rt.source.Ref(),
		StartedAt:  rt.started.UTC().Format(time.RFC3339),
		DurationMS: elapsed.Milliseconds(),
		Status:     "ok",
		Stages:     rt.stages,
	}
	if reqErr != nil {
		file.Status = "failed"
		file.ErrorKind = string(models.KindOf(reqErr))
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		rt.tracer.logger.Warn("failed to marshal trace", "error", err)
		return
	}
	name := rt.started.Format("2006-01-02T15-04-05.000") + ".yaml"
	path := filepath.Join(rt.tracer.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		rt.tracer.logger.Warn("failed to write trace", "path", path, "error", err)
	}
}
