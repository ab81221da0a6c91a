// Package artifacts manages request-scoped temporary files. Each user
// interaction gets a Scope: a private directory for staged uploads and
// generated audio, removed when the request ends regardless of outcome.
package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const DefaultBaseDir = "briefcast-data"

// Manager hands out scopes under a base directory.
type Manager struct {
	baseDir string
}

// NewManager creates the base directory structure if needed.
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(filepath.Join(baseDir, "tmp"), 0750); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Manager{baseDir: baseDir}, nil
}

// BaseDir returns the managed root directory.
func (m *Manager) BaseDir() string { return m.baseDir }

// NewScope creates a fresh request directory. The id is timestamp-first so
// leftover directories from crashed requests sort chronologically; the label
// hash keeps concurrent requests for different inputs apart.
func (m *Manager) NewScope(label string) (*Scope, error) {
	id := scopeID(label)
	dir := filepath.Join(m.baseDir, "tmp", id)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create request scope: %w", err)
	}
	return &Scope{id: id, dir: dir}, nil
}

// scopeID builds an id of the form 2026-08-30T15-04-05-<hash>.
func scopeID(label string) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", label, time.Now().UnixNano())))
	return time.Now().Format("2006-01-02T15-04-05") + "-" + hex.EncodeToString(h[:6])
}

// Scope is one request's private temp directory.
type Scope struct {
	id  string
	dir string
}

// ID returns the scope identifier, used as the request id in logs and traces.
func (s *Scope) ID() string { return s.id }

// Dir returns the scope's directory path.
func (s *Scope) Dir() string { return s.dir }

// WriteFile stores data under name inside the scope and returns the path.
func (s *Scope) WriteFile(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write artifact %q: %w", name, err)
	}
	return path, nil
}

// ReadFile reads a file previously produced inside the scope.
func (s *Scope) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %q: %w", name, err)
	}
	return data, nil
}

// Release removes the scope directory and everything in it. Safe to call
// more than once; intended for defer at request start.
func (s *Scope) Release() error {
	if s.dir == "" {
		return nil
	}
	err := os.RemoveAll(s.dir)
	s.dir = ""
	return err
}
