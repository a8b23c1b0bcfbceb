package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Exercise.Difficulty != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	difficulty := "hard"
	theme := "light"
	volume := 40
	in := FileConfig{
		Exercise: ExerciseConfig{Difficulty: &difficulty},
		UI:       UIConfig{Theme: &theme, Volume: &volume},
	}
	if err := SaveConfig(path, in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if out.Exercise.Difficulty == nil || *out.Exercise.Difficulty != "hard" {
		t.Fatalf("difficulty did not round-trip: %+v", out.Exercise)
	}
	if out.UI.Theme == nil || *out.UI.Theme != "light" {
		t.Fatalf("theme did not round-trip: %+v", out.UI)
	}
	if out.UI.Volume == nil || *out.UI.Volume != 40 {
		t.Fatalf("volume did not round-trip: %+v", out.UI)
	}
}

func TestLoadConfigDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	if got := DefaultConfigPath(); got != "/tmp/xdg-test/triad/config.toml" {
		t.Fatalf("unexpected path %q", got)
	}
}
