// Package faults defines the error taxonomy shared by every conversion stage.
//
// Each sentinel classifies a failure mode; Wrap tags an error with one of them
// plus stage context so the CLI can surface the offending path or subject
// token. Nothing in the batch recovers locally -- every fault aborts the run
// and the operator reruns after fixing the input.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSubjectToken marks folder names without a parseable subject marker.
	ErrInvalidSubjectToken = errors.New("invalid subject token")
	// ErrUnknownArtifact marks planner calls with an unrecognized modality or artifact kind.
	ErrUnknownArtifact = errors.New("unknown artifact kind")
	// ErrSourceMissing marks source recordings that vanished or cannot be read.
	ErrSourceMissing = errors.New("source not found")
	// ErrSerialization marks sidecar templates or overrides that cannot be rendered.
	ErrSerialization = errors.New("serialization failure")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
	// ErrIO marks filesystem failures during copy or metadata writes.
	ErrIO = errors.New("i/o failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided sentinel for later classification. The marker should be
// one of the exported sentinels above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err carries one of the batch sentinels. Every
// sentinel is fatal; the predicate exists so callers distinguish classified
// faults from plain errors when rendering diagnostics.
func IsFatal(err error) bool {
	for _, marker := range []error{
		ErrInvalidSubjectToken,
		ErrUnknownArtifact,
		ErrSourceMissing,
		ErrSerialization,
		ErrConfiguration,
		ErrIO,
	} {
		if errors.Is(err, marker) {
			return true
		}
	}
	return false
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "conversion failure"
	}
	return strings.Join(parts, ": ")
}
