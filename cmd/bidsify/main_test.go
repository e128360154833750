package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	sourceDir  string
	datasetDir string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		sourceDir:  filepath.Join(base, "sourcedata"),
		datasetDir: filepath.Join(base, "dataset"),
	}

	contents := fmt.Sprintf(`[paths]
source_dir = %q
dataset_dir = %q
log_dir = %q

[dataset]
task_name = "auditory oddball"
overwrite_existing = true

[discovery]
eeg_patterns = ["eeg*"]
behavioral_patterns = ["bhv*"]

[logging]
format = "json"
level = "info"
`, env.sourceDir, env.datasetDir, filepath.Join(base, "logs"))
	if err := os.WriteFile(env.configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.MkdirAll(env.sourceDir, 0o755); err != nil {
		t.Fatalf("create source dir: %v", err)
	}
	return env
}

func (e *cliTestEnv) writeSourceFile(t *testing.T, folder, name, contents string) {
	t.Helper()
	dir := filepath.Join(e.sourceDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create recording dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write recording: %v", err)
	}
}

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestPlanCommandListsActions(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeSourceFile(t, "S1_JohnDoe", "eeg_recording.vhdr", "eeg payload")
	env.writeSourceFile(t, "sub-12", "bhv_responses.csv", "trial,rt\n1,432\n")

	out, err := runCLI(t, []string{"plan", "--config", env.configPath})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	requireContains(t, out, "Task AuditoryOddball: 4 actions")
	requireContains(t, out, "sub-01")
	requireContains(t, out, "sub-12")
	requireContains(t, out, "channel_metadata")
	requireContains(t, out, "task_metadata")

	if _, err := os.Stat(filepath.Join(env.datasetDir, "sub-01")); !os.IsNotExist(err) {
		t.Fatalf("plan must not write to the dataset, stat err = %v", err)
	}
}

func TestConvertCommandWritesDataset(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeSourceFile(t, "S1_JohnDoe", "eeg_recording.vhdr", "eeg payload")

	out, err := runCLI(t, []string{"convert", "--config", env.configPath})
	if err != nil {
		t.Fatalf("convert: %v\noutput:\n%s", err, out)
	}

	wantFiles := []string{
		filepath.Join(env.datasetDir, "sub-01", "eeg", "sub-01_task-AuditoryOddball_eeg.vhdr"),
		filepath.Join(env.datasetDir, "sub-01", "eeg", "sub-01_task-AuditoryOddball_channels.tsv"),
		filepath.Join(env.datasetDir, "sub-01", "eeg", "sub-01_task-AuditoryOddball_eeg.json"),
	}
	for _, path := range wantFiles {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
	}
}

func TestConvertCommandRejectsUnparsableFolder(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeSourceFile(t, "Pilot_NoNumber", "eeg_recording.vhdr", "eeg payload")

	_, err := runCLI(t, []string{"convert", "--config", env.configPath})
	if err == nil {
		t.Fatal("expected convert to fail for an unparsable folder name")
	}
	if !strings.Contains(err.Error(), "Pilot_NoNumber") {
		t.Fatalf("error should name the offending folder, got %v", err)
	}
}

func TestPreflightCommandReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"preflight", "--config", env.configPath})
	if err != nil {
		t.Fatalf("preflight: %v\noutput:\n%s", err, out)
	}
	requireContains(t, out, "Source tree")
	requireContains(t, out, "OK")
}

func TestConfigInitAndValidate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	target := filepath.Join(home, "bidsify.toml")
	out, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, err = runCLI(t, []string{"config", "validate"})
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}
