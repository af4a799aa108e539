package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL: got %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "base_url") {
		t.Errorf("written config missing base_url:\n%s", data)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("second LoadOrCreate: %v", err)
	}
	if again.Keys != cfg.Keys {
		t.Errorf("keys changed across reload: %+v vs %+v", again.Keys, cfg.Keys)
	}
}

func TestLoadOrCreatePartialTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `base_url = "https://milestones.example.com/"
icons = "sparkles"

[keys]
quit = "x"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.BaseURL != "https://milestones.example.com" {
		t.Errorf("BaseURL: got %q, trailing slash should be trimmed", cfg.BaseURL)
	}
	if cfg.Icons != DefaultIcons {
		t.Errorf("Icons: got %q, want fallback %q", cfg.Icons, DefaultIcons)
	}
	if cfg.Keys.Quit != "x" {
		t.Errorf("Keys.Quit: got %q, want x", cfg.Keys.Quit)
	}
	if cfg.Keys.Send != "ctrl+s" {
		t.Errorf("Keys.Send: got %q, want default ctrl+s", cfg.Keys.Send)
	}
}

func TestLoadOrCreateYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "base_url: http://localhost:8080\nrefresh_cron: \"*/5 * * * *\"\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.RefreshCron != "*/5 * * * *" {
		t.Errorf("RefreshCron: got %q", cfg.RefreshCron)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
	if cfg.Keys.Toggle != " " {
		t.Errorf("Keys.Toggle: got %q, want space", cfg.Keys.Toggle)
	}
}

func TestLoadOrCreateCreatesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if _, err := LoadOrCreate(path); err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "base_url: ") {
		t.Errorf("expected YAML output, got:\n%s", data)
	}
}

func TestLoadOrCreateBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("base_url = [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolveConfigPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	want := filepath.Join(dir, AppName, DefaultConfigFileName)
	if got := ResolveConfigPath(); got != want {
		t.Errorf("ResolveConfigPath: got %q, want %q", got, want)
	}
}
