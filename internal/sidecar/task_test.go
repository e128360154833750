package sidecar_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"bidsify/internal/sidecar"
	"bidsify/internal/subject"
)

func TestBuildTaskDocumentSubstitutesTaskName(t *testing.T) {
	doc := sidecar.BuildTaskDocument("01", "Demo", sidecar.DefaultTaskTemplate())
	if doc.TaskName != "Demo" {
		t.Fatalf("TaskName = %q, want Demo", doc.TaskName)
	}
	if doc.SamplingFrequency != 5000 {
		t.Fatalf("SamplingFrequency = %v, want 5000", doc.SamplingFrequency)
	}
	if doc.HardwareFilters.HighpassFilter.CutoffFrequency != 0.1 {
		t.Fatalf("highpass cutoff = %v, want 0.1", doc.HardwareFilters.HighpassFilter.CutoffFrequency)
	}
	if doc.HardwareFilters.LowpassFilter.CutoffFrequency != 1000 {
		t.Fatalf("lowpass cutoff = %v, want 1000", doc.HardwareFilters.LowpassFilter.CutoffFrequency)
	}
}

func TestBuildTaskDocumentIsDeterministicAcrossSubjects(t *testing.T) {
	tpl := sidecar.DefaultTaskTemplate()

	first, err := sidecar.EncodeTaskJSON(sidecar.BuildTaskDocument("01", "Demo", tpl))
	if err != nil {
		t.Fatal(err)
	}
	second, err := sidecar.EncodeTaskJSON(sidecar.BuildTaskDocument("02", "Demo", tpl))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected byte-identical documents for subjects without overrides")
	}
}

func TestBuildTaskDocumentHonorsOverrideHook(t *testing.T) {
	tpl := sidecar.DefaultTaskTemplate()
	custom := tpl.Document
	custom.Instructions = "Respond with the left hand only."
	tpl.Overrides = map[subject.ID]sidecar.TaskDocument{"02": custom}

	doc := sidecar.BuildTaskDocument("02", "Demo", tpl)
	if doc.Instructions != "Respond with the left hand only." {
		t.Fatalf("override not applied: %q", doc.Instructions)
	}
	if doc.TaskName != "Demo" {
		t.Fatal("task name substitution must win over override content")
	}

	plain := sidecar.BuildTaskDocument("01", "Demo", tpl)
	if plain.Instructions == doc.Instructions {
		t.Fatal("override leaked into other subjects")
	}
}

func TestEncodeTaskJSONShape(t *testing.T) {
	data, err := sidecar.EncodeTaskJSON(sidecar.BuildTaskDocument("01", "Demo", sidecar.DefaultTaskTemplate()))
	if err != nil {
		t.Fatal(err)
	}

	if !utf8.Valid(data) {
		t.Fatal("document is not valid UTF-8")
	}
	text := string(data)
	if !strings.HasPrefix(text, "{\n  \"TaskName\": \"Demo\"") {
		t.Fatalf("expected TaskName first with two-space indent, got prefix %q", text[:40])
	}
	if !strings.Contains(text, "\n    \"HighpassFilter\": {\n      \"CutoffFrequency\": 0.1\n    }") {
		t.Fatal("expected nested hardware filter object with two-space indentation")
	}
	if !strings.HasSuffix(text, "}\n") {
		t.Fatal("expected trailing newline")
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("document does not parse as JSON: %v", err)
	}
	if decoded["RecordingType"] != "continuous" {
		t.Fatalf("RecordingType = %v, want continuous", decoded["RecordingType"])
	}
}
