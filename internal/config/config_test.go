package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != "text" {
		t.Fatalf("Format = %q, want text", cfg.Format)
	}
	if !cfg.Phases.Check {
		t.Fatal("expected Phases.Check to default true")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".orbitc.yaml")
	content := "format: json\ncolor: true\nmax_errors: 5\nphases:\n  lex: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != "json" || !cfg.Color || cfg.MaxErrors != 5 || !cfg.Phases.Lex {
		t.Fatalf("decoded cfg = %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".orbitc.json")
	content := `{"format":"json","color":true,"max_errors":3,"phases":{"check":true}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != "json" || !cfg.Color || cfg.MaxErrors != 3 || !cfg.Phases.Check {
		t.Fatalf("decoded cfg = %+v", cfg)
	}
}
