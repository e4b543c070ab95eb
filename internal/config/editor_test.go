package config

import (
	"os"
	"strings"
	"testing"
)

func newTestPaths(t *testing.T) *Paths {
	t.Helper()
	paths := NewPaths(t.TempDir())
	if err := os.MkdirAll(paths.DataRoot(), 0755); err != nil {
		t.Fatalf("failed to create workspace dir: %v", err)
	}
	return paths
}

func TestLoadEditorConfigDefaultsWhenMissing(t *testing.T) {
	paths := newTestPaths(t)

	cfg, err := LoadEditorConfig(paths)
	if err != nil {
		t.Fatalf("LoadEditorConfig failed: %v", err)
	}
	if cfg.DefaultWidth != 32 || cfg.DefaultHeight != 32 {
		t.Errorf("default canvas = %dx%d, want 32x32", cfg.DefaultWidth, cfg.DefaultHeight)
	}
	if cfg.Port != 3800 {
		t.Errorf("default port = %d, want 3800", cfg.Port)
	}
}

func TestSaveLoadEditorConfigRoundTrip(t *testing.T) {
	paths := newTestPaths(t)

	cfg, _ := LoadEditorConfig(paths)
	cfg.DefaultWidth = 64
	cfg.Port = 4000
	cfg.TransparentBackground = true

	if err := SaveEditorConfig(paths, cfg); err != nil {
		t.Fatalf("SaveEditorConfig failed: %v", err)
	}

	loaded, err := LoadEditorConfig(paths)
	if err != nil {
		t.Fatalf("LoadEditorConfig failed: %v", err)
	}
	if loaded.DefaultWidth != 64 || loaded.Port != 4000 || !loaded.TransparentBackground {
		t.Errorf("round trip lost settings: %+v", loaded)
	}
}

func TestLoadEditorConfigRejectsUnknownSchema(t *testing.T) {
	paths := newTestPaths(t)

	content := "pixelpad_schema = \"config/99\"\ndefault_width = 16\n"
	if err := os.WriteFile(paths.ConfigPath(), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadEditorConfig(paths)
	if err == nil || !strings.Contains(err.Error(), "config/99") {
		t.Errorf("expected unknown-schema error, got %v", err)
	}
}

func TestLoadEditorConfigRejectsMissingSchema(t *testing.T) {
	paths := newTestPaths(t)

	if err := os.WriteFile(paths.ConfigPath(), []byte("default_width = 16\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadEditorConfig(paths); err == nil {
		t.Error("expected error for config without a schema field")
	}
}
