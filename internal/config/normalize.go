package config

import (
	"fmt"
	"strings"
	"unicode"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDataset()
	c.normalizeDiscovery()
	c.normalizeLogging()
	return c.normalizeOverrides()
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.DatasetDir, err = expandPath(c.Paths.DatasetDir); err != nil {
		return fmt.Errorf("paths.dataset_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDataset() {
	c.Dataset.TaskName = strings.TrimSpace(c.Dataset.TaskName)
	if c.Dataset.TaskName == "" {
		c.Dataset.TaskName = defaultTaskName
	}
}

func (c *Config) normalizeDiscovery() {
	c.Discovery.EEGPatterns = normalizePatterns(c.Discovery.EEGPatterns, "eeg*")
	c.Discovery.BehavioralPatterns = normalizePatterns(c.Discovery.BehavioralPatterns, "bhv*")
}

func normalizePatterns(patterns []string, fallback string) []string {
	cleaned := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern != "" {
			cleaned = append(cleaned, pattern)
		}
	}
	if len(cleaned) == 0 {
		return []string{fallback}
	}
	return cleaned
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeOverrides pads purely numeric subject keys to width 2 so a config
// may say [overrides."1"] and still match subject ID "01".
func (c *Config) normalizeOverrides() error {
	if len(c.Overrides) == 0 {
		return nil
	}
	padded := make(map[string]Override, len(c.Overrides))
	for key, override := range c.Overrides {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" || !allDigits(trimmed) {
			return fmt.Errorf("overrides: subject key %q must be decimal digits", key)
		}
		if len(trimmed) < 2 {
			trimmed = strings.Repeat("0", 2-len(trimmed)) + trimmed
		}
		if _, exists := padded[trimmed]; exists {
			return fmt.Errorf("overrides: subject %q configured twice", trimmed)
		}
		padded[trimmed] = override
	}
	c.Overrides = padded
	return nil
}

func allDigits(value string) bool {
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
