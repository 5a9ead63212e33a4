package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Sort.Method != "natural" || !cfg.Display.Sort.DirsFirst {
		t.Fatalf("unexpected sort defaults %+v", cfg.Display.Sort)
	}
	if !cfg.Notify.OSC7 || cfg.Log.Level != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
display:
  show_hidden: true
  filter: "*.go"
  sort:
    method: SIZE
    reverse: true
notify:
  osc7: false
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.DisplayOptions()
	if !opts.ShowHidden || opts.Filter != "*.go" {
		t.Fatalf("unexpected display options %+v", opts)
	}
	if opts.Sort.Method != fsutil.SortSize || !opts.Sort.Reverse {
		t.Fatalf("unexpected sort %+v", opts.Sort)
	}
	if !opts.Sort.DirsFirst {
		t.Fatalf("dirs_first default should survive a partial sort section")
	}
	if cfg.Notify.OSC7 {
		t.Fatalf("expected osc7 disabled")
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Log.Level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "display:\n  show_hidden: false\n")
	t.Setenv("RTAB_DISPLAY_SHOW_HIDDEN", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Display.ShowHidden {
		t.Fatalf("expected environment to win")
	}
}

func TestLoadRejectsInvalidSortMethod(t *testing.T) {
	path := writeConfig(t, "display:\n  sort:\n    method: random\n")

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Fatalf("expected oneof failure, got %v", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtab", "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults back, got %+v", cfg)
	}
}

func TestApplyDefaultsExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := Config{Log: LogConfig{File: "~/rtab.log"}}
	ApplyDefaults(&cfg)
	if cfg.Log.File != filepath.Join(home, "rtab.log") {
		t.Fatalf("expected expanded path, got %q", cfg.Log.File)
	}
	if cfg.Log.Level != "info" || cfg.Display.Sort.Method != "natural" {
		t.Fatalf("expected defaults filled, got %+v", cfg)
	}
}
