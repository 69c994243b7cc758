package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validateProduction(); err != nil {
		return err
	}
	if err := c.validateServices(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTimeline() error {
	if c.Timeline.SampleRate <= 0 {
		return errors.New("timeline.sample_rate must be positive")
	}
	switch c.Timeline.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("timeline.bit_depth must be 16, 24, or 32, got %d", c.Timeline.BitDepth)
	}
	if c.Timeline.PixelsPerSecond <= 0 {
		return errors.New("timeline.pixels_per_second must be positive")
	}
	if c.Timeline.Zoom <= 0 {
		return errors.New("timeline.zoom must be positive")
	}
	if c.Timeline.GridSize < 0.1 || c.Timeline.GridSize > 10 {
		return fmt.Errorf("timeline.grid_size must be between 0.1 and 10 seconds, got %v", c.Timeline.GridSize)
	}
	return nil
}

func (c *Config) validateProduction() error {
	if c.Production.StepDelayMS < 0 {
		return errors.New("production.step_delay_ms must not be negative")
	}
	return nil
}

func (c *Config) validateServices() error {
	if c.Services.RequestTimeout <= 0 {
		return errors.New("services.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
