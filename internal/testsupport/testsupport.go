// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"mixdown/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.AssetDir = filepath.Join(base, "assets")
	cfg.Production.StepDelayMS = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithScriptGenURL points the script generation client at the given base URL.
func WithScriptGenURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Services.ScriptGenURL = url
	}
}

// WithTTSURL points the speech synthesis client at the given base URL.
func WithTTSURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Services.TTSURL = url
	}
}
