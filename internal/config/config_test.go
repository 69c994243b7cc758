package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Timeline.SampleRate != 44100 {
		t.Fatalf("expected default sample rate, got %d", cfg.Timeline.SampleRate)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		"[timeline]",
		"grid_size = 0.5",
		"[services]",
		`scriptgen_url = "http://localhost:9000/"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s to load, got resolved=%s exists=%v", path, resolved, exists)
	}
	if cfg.Timeline.GridSize != 0.5 {
		t.Fatalf("expected grid size 0.5, got %v", cfg.Timeline.GridSize)
	}
	if strings.HasSuffix(cfg.Services.ScriptGenURL, "/") {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Services.ScriptGenURL)
	}
	// Defaults survive partial files.
	if cfg.Timeline.SampleRate != 44100 {
		t.Fatalf("expected default sample rate, got %d", cfg.Timeline.SampleRate)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"grid too small", func(c *Config) { c.Timeline.GridSize = 0.05 }},
		{"grid too large", func(c *Config) { c.Timeline.GridSize = 30 }},
		{"bad bit depth", func(c *Config) { c.Timeline.BitDepth = 12 }},
		{"zero zoom", func(c *Config) { c.Timeline.Zoom = 0 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"negative step delay", func(c *Config) { c.Production.StepDelayMS = -1 }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[timeline]") {
		t.Fatal("sample config missing timeline section")
	}
}
