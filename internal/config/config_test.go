package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extract.Package != "django" {
		t.Errorf("Extract.Package = %q, want django", cfg.Extract.Package)
	}
	if cfg.Output.Dir != "content" {
		t.Errorf("Output.Dir = %q, want content", cfg.Output.Dir)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Output.Dir != "content" {
		t.Errorf("expected defaults for missing file, got %+v", cfg)
	}
}

func TestLoadFromPathMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `extract:
  package: requests
  roots:
    - /src/python
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Extract.Package != "requests" {
		t.Errorf("Extract.Package = %q, want requests", cfg.Extract.Package)
	}
	if len(cfg.Extract.Roots) != 1 || cfg.Extract.Roots[0] != "/src/python" {
		t.Errorf("Extract.Roots = %v", cfg.Extract.Roots)
	}
	// Untouched sections fall back to defaults.
	if cfg.Output.Dir != "content" {
		t.Errorf("Output.Dir = %q, want content", cfg.Output.Dir)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadFromPathRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `log:
  level: loud
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFromPath(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestFindConfigDirWalksUp(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ConfigDirName)
	nested := filepath.Join(root, "a", "b")
	for _, dir := range []string{configDir, nested} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	found, err := FindConfigDir(nested)
	if err != nil {
		t.Fatalf("FindConfigDir failed: %v", err)
	}
	if found != configDir {
		t.Errorf("FindConfigDir = %q, want %q", found, configDir)
	}
}

func TestFindConfigDirMissing(t *testing.T) {
	if _, err := FindConfigDir(t.TempDir()); err == nil {
		t.Error("expected error when no config dir exists")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigDirName, ConfigFileName)

	want := DefaultConfig()
	want.Extract.Package = "flask"
	if err := want.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if got.Extract.Package != "flask" {
		t.Errorf("round-trip Extract.Package = %q, want flask", got.Extract.Package)
	}
}
