// Package testsupport provides fixtures shared by converter and CLI tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"bidsify/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "sourcedata")
	cfg.Paths.DatasetDir = filepath.Join(base, "bids")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTaskName sets the dataset task name on the test config.
func WithTaskName(name string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Dataset.TaskName = name
	}
}
