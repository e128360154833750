// Package bids computes canonical dataset paths for converted artifacts.
//
// Every artifact lands under <root>/sub-NN/<modality-dir>/ with a filename of
// the form sub-NN_task-<Task>_<suffix>. The planner is a pure function of its
// inputs; directory creation is a separate, idempotent step so path planning
// stays testable without a filesystem.
package bids

import (
	"os"
	"path/filepath"

	"bidsify/internal/faults"
	"bidsify/internal/subject"
)

// Modality is the category of recorded signal.
type Modality string

const (
	ModalityEEG        Modality = "eeg"
	ModalityBehavioral Modality = "behavioral"
)

// Dir returns the dataset subdirectory for the modality.
func (m Modality) Dir() (string, error) {
	switch m {
	case ModalityEEG:
		return "eeg", nil
	case ModalityBehavioral:
		return "beh", nil
	default:
		return "", faults.Wrap(faults.ErrUnknownArtifact, "planning", "resolve modality dir",
			"unrecognized modality "+string(m), nil)
	}
}

// ArtifactKind identifies which generated output a path is planned for.
type ArtifactKind string

const (
	// ArtifactRecording is the byte-for-byte copy of the source recording.
	ArtifactRecording ArtifactKind = "recording"
	// ArtifactChannelMetadata is the per-subject _channels.tsv sidecar.
	ArtifactChannelMetadata ArtifactKind = "channel_metadata"
	// ArtifactTaskMetadata is the per-subject _eeg.json sidecar.
	ArtifactTaskMetadata ArtifactKind = "task_metadata"
)

// PlanPath computes the destination path for one artifact.
//
// srcExt is the source recording's extension (including the dot) and only
// participates in recording paths; sidecar suffixes are fixed. Sidecars are
// defined for the EEG modality only. The result depends on nothing but the
// arguments, so replanning is idempotent.
func PlanPath(root string, id subject.ID, modality Modality, task string, kind ArtifactKind, srcExt string) (string, error) {
	dir, err := modality.Dir()
	if err != nil {
		return "", err
	}

	var suffix string
	switch kind {
	case ArtifactRecording:
		switch modality {
		case ModalityEEG:
			suffix = "eeg" + srcExt
		case ModalityBehavioral:
			suffix = "beh" + srcExt
		}
	case ArtifactChannelMetadata:
		if modality != ModalityEEG {
			return "", faults.Wrap(faults.ErrUnknownArtifact, "planning", "resolve suffix",
				"channel metadata is only defined for the eeg modality", nil)
		}
		suffix = "channels.tsv"
	case ArtifactTaskMetadata:
		if modality != ModalityEEG {
			return "", faults.Wrap(faults.ErrUnknownArtifact, "planning", "resolve suffix",
				"task metadata is only defined for the eeg modality", nil)
		}
		suffix = "eeg.json"
	default:
		return "", faults.Wrap(faults.ErrUnknownArtifact, "planning", "resolve suffix",
			"unrecognized artifact kind "+string(kind), nil)
	}

	name := id.Label() + "_task-" + task + "_" + suffix
	return filepath.Join(root, id.Label(), dir, name), nil
}

// EnsureParent creates the destination's parent directory if it does not
// already exist. Creating an existing directory is not an error.
func EnsureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return faults.Wrap(faults.ErrIO, "planning", "ensure directory", "Failed to create "+filepath.Dir(path), err)
	}
	return nil
}
