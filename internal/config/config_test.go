package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("BRIEFCAST_ADDR", ":9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GroqAPIKey != "gsk_test" {
		t.Errorf("GroqAPIKey = %q", cfg.GroqAPIKey)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.Model != "gemma2-9b-it" {
		t.Errorf("Model default = %q", cfg.Model)
	}
	if cfg.WorkDir != "briefcast-data" {
		t.Errorf("WorkDir default = %q", cfg.WorkDir)
	}
}

func TestLoadMissingKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error when GROQ_API_KEY is empty")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "secrets.env")
	content := "GROQ_API_KEY=gsk_from_file\nBRIEFCAST_MODEL=llama-3.1-8b-instant\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables already set.
	os.Unsetenv("GROQ_API_KEY")
	os.Unsetenv("BRIEFCAST_MODEL")
	t.Cleanup(func() {
		os.Unsetenv("GROQ_API_KEY")
		os.Unsetenv("BRIEFCAST_MODEL")
	})

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GroqAPIKey != "gsk_from_file" {
		t.Errorf("GroqAPIKey = %q", cfg.GroqAPIKey)
	}
	if cfg.Model != "llama-3.1-8b-instant" {
		t.Errorf("Model = %q", cfg.Model)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	if _, err := Load("/nonexistent/secrets.env"); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
}
