package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateOverrides()
}

func (c *Config) validatePaths() error {
	if c.Paths.SourceDir == "" {
		return errors.New("paths.source_dir must be set")
	}
	if c.Paths.DatasetDir == "" {
		return errors.New("paths.dataset_dir must be set")
	}
	if c.Paths.SourceDir == c.Paths.DatasetDir {
		return errors.New("paths.dataset_dir must differ from paths.source_dir")
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	for _, pattern := range append(append([]string{}, c.Discovery.EEGPatterns...), c.Discovery.BehavioralPatterns...) {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return fmt.Errorf("discovery: invalid glob pattern %q: %w", pattern, err)
		}
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

// validateOverrides checks vector agreement within each override entry. The
// channel-count check lives in the sidecar builder, which owns the template.
func (c *Config) validateOverrides() error {
	for id, override := range c.Overrides {
		if len(override.Status) == 0 {
			return fmt.Errorf("overrides.%s: status vector must not be empty", id)
		}
		if len(override.StatusDescription) == 0 {
			return fmt.Errorf("overrides.%s: status_description vector must not be empty", id)
		}
		if len(override.Status) != len(override.StatusDescription) {
			return fmt.Errorf("overrides.%s: status has %d entries but status_description has %d",
				id, len(override.Status), len(override.StatusDescription))
		}
	}
	return nil
}
