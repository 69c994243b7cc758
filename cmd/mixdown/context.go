package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mixdown/internal/assets"
	"mixdown/internal/config"
	"mixdown/internal/logging"
	"mixdown/internal/timeline"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// library resolves the asset library: the configured manifest when present,
// the built-in set otherwise.
func (c *commandContext) library() (*assets.Library, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if dir := strings.TrimSpace(cfg.Paths.AssetDir); dir != "" {
		manifest := dir + "/assets.toml"
		if _, statErr := os.Stat(manifest); statErr == nil {
			return assets.LoadManifest(manifest)
		}
	}
	return assets.DefaultLibrary(), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// loadProject reads a timeline project file into a fresh store.
func (c *commandContext) loadProject(path string) (*timeline.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project %s: %w", path, err)
	}
	var tl timeline.Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", path, err)
	}

	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store := timeline.NewStore(cfg.Timeline.SampleRate, cfg.Timeline.BitDepth)
	store.Restore(tl)
	return store, nil
}

// newProject creates an empty store sized from config.
func (c *commandContext) newProject() (*timeline.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return timeline.NewStore(cfg.Timeline.SampleRate, cfg.Timeline.BitDepth), nil
}

// saveProject writes the store's timeline back to disk.
func saveProject(store *timeline.Store, path string) error {
	data, err := json.MarshalIndent(store.Timeline(), "", "  ")
	if err != nil {
		return fmt.Errorf("serialize project: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write project %s: %w", path, err)
	}
	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
