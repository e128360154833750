package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"bidsify/internal/config"
)

// WriteSourceFile creates one recording inside the config's source tree under
// the given session folder.
func WriteSourceFile(t testing.TB, cfg *config.Config, folder, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.SourceDir, folder, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
