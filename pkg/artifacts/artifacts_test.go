package artifacts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScopeLifecycle(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	scope, err := m.NewScope("youtube:dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("NewScope() error = %v", err)
	}

	path, err := scope.WriteFile("summary.mp3", []byte("mp3 bytes"))
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("artifact file missing after write: %v", err)
	}

	data, err := scope.ReadFile("summary.mp3")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "mp3 bytes" {
		t.Errorf("ReadFile() = %q, want %q", data, "mp3 bytes")
	}

	dir := scope.Dir()
	if err := scope.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("scope directory still exists after Release()")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("artifact file still exists after Release()")
	}
}

func TestRelease_Idempotent(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	scope, err := m.NewScope("pdf:upload")
	if err != nil {
		t.Fatal(err)
	}
	if err := scope.Release(); err != nil {
		t.Fatalf("first Release() error = %v", err)
	}
	if err := scope.Release(); err != nil {
		t.Fatalf("second Release() error = %v", err)
	}
}

func TestScopes_DistinctDirs(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a, err := m.NewScope("same-label")
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()
	b, err := m.NewScope("same-label")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()

	if a.Dir() == b.Dir() {
		t.Error("two scopes share one directory")
	}
}

func TestNewManager_CreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewManager(base); err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "tmp")); err != nil {
		t.Errorf("base tmp directory not created: %v", err)
	}
}
