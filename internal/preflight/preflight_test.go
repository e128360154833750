package preflight_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bidsify/internal/config"
	"bidsify/internal/preflight"
)

func TestCheckSourceTree(t *testing.T) {
	dir := t.TempDir()

	if result := preflight.CheckSourceTree(dir); !result.Passed {
		t.Fatalf("expected readable dir to pass: %+v", result)
	}

	missing := preflight.CheckSourceTree(filepath.Join(dir, "absent"))
	if missing.Passed {
		t.Fatal("expected missing dir to fail")
	}
	if !strings.Contains(missing.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", missing.Detail)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := preflight.CheckSourceTree(file); result.Passed {
		t.Fatal("expected plain file to fail")
	}
}

func TestCheckDatasetDirCreatesMissing(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "bids")

	result := preflight.CheckDatasetDir(target)
	if !result.Passed {
		t.Fatalf("expected creatable dir to pass: %+v", result)
	}
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		t.Fatalf("dataset dir was not created: %v", err)
	}

	// A second run sees the existing writable directory.
	if result := preflight.CheckDatasetDir(target); !result.Passed {
		t.Fatalf("expected existing dir to pass: %+v", result)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()

	if result := preflight.CheckFreeSpace(dir, 1); !result.Passed {
		t.Fatalf("expected one byte to fit: %+v", result)
	}
	// No filesystem has this much room.
	if result := preflight.CheckFreeSpace(dir, 1<<62); result.Passed {
		t.Fatal("expected absurd requirement to fail")
	}
}

func TestRunAndAllPassed(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "src")
	cfg.Paths.DatasetDir = filepath.Join(base, "out")
	if err := os.MkdirAll(cfg.Paths.SourceDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := preflight.Run(&cfg, 0)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !preflight.AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	cfg.Paths.SourceDir = filepath.Join(base, "missing")
	if preflight.AllPassed(preflight.Run(&cfg, 0)) {
		t.Fatal("expected missing source to fail the run")
	}
}
