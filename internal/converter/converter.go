// Package converter drives the batch conversion: discover source recordings,
// derive subject IDs, copy each recording to its canonical dataset path, and
// write the per-subject metadata sidecars.
//
// Processing is strictly sequential and stateless between files. Any failure
// aborts the batch; artifacts written before the failure stay valid because
// every destination is independently reproducible by rerunning.
package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"bidsify/internal/bids"
	"bidsify/internal/config"
	"bidsify/internal/discover"
	"bidsify/internal/faults"
	"bidsify/internal/fileutil"
	"bidsify/internal/logging"
	"bidsify/internal/sidecar"
	"bidsify/internal/subject"
)

const lockFileName = ".bidsify.lock"

// Action is one planned write into the dataset. Source is empty for sidecar
// actions, which are generated rather than copied.
type Action struct {
	Subject     subject.ID
	Modality    bids.Modality
	Kind        bids.ArtifactKind
	Source      string
	Destination string
	Bytes       uint64
}

// Plan is the full, ordered set of actions a run will execute. It is a pure
// function of the source tree and configuration, so planning twice yields the
// same actions in the same order.
type Plan struct {
	RunID     string
	TaskLabel string
	Actions   []Action
}

// TotalBytes sums the recording payload of the plan.
func (p *Plan) TotalBytes() uint64 {
	var total uint64
	for _, action := range p.Actions {
		total += action.Bytes
	}
	return total
}

// Summary describes a completed run.
type Summary struct {
	RunID           string
	FilesCopied     int
	SidecarsWritten int
	BytesCopied     uint64
	Duration        time.Duration
}

// Converter converts one source tree into one dataset.
type Converter struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs a converter. A nil logger disables logging.
func New(cfg *config.Config, logger *slog.Logger) *Converter {
	return &Converter{cfg: cfg, logger: logging.NewComponentLogger(logger, "converter")}
}

// Plan scans the source tree and computes every action without writing
// anything. Recordings come first in scan order, followed by the per-subject
// sidecars in subject order.
func (c *Converter) Plan(ctx context.Context) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recordings, err := discover.Scan(c.cfg.Paths.SourceDir, c.cfg.Discovery.EEGPatterns, c.cfg.Discovery.BehavioralPatterns)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		RunID:     uuid.NewString(),
		TaskLabel: bids.TaskLabel(c.cfg.Dataset.TaskName),
	}

	eegSubjects := map[subject.ID]struct{}{}
	for _, rec := range recordings {
		id, err := subject.Parse(rec.RawToken)
		if err != nil {
			return nil, fmt.Errorf("%w (file %s)", err, rec.Path)
		}

		dest, err := bids.PlanPath(c.cfg.Paths.DatasetDir, id, rec.Modality, plan.TaskLabel, bids.ArtifactRecording, filepath.Ext(rec.Path))
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(rec.Path)
		if err != nil {
			return nil, faults.Wrap(faults.ErrSourceMissing, "planning", "stat recording", rec.Path, err)
		}

		plan.Actions = append(plan.Actions, Action{
			Subject:     id,
			Modality:    rec.Modality,
			Kind:        bids.ArtifactRecording,
			Source:      rec.Path,
			Destination: dest,
			Bytes:       uint64(info.Size()),
		})
		if rec.Modality == bids.ModalityEEG {
			eegSubjects[id] = struct{}{}
		}
	}

	ids := make([]subject.ID, 0, len(eegSubjects))
	for id := range eegSubjects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		for _, kind := range []bids.ArtifactKind{bids.ArtifactChannelMetadata, bids.ArtifactTaskMetadata} {
			dest, err := bids.PlanPath(c.cfg.Paths.DatasetDir, id, bids.ModalityEEG, plan.TaskLabel, kind, "")
			if err != nil {
				return nil, err
			}
			plan.Actions = append(plan.Actions, Action{
				Subject:     id,
				Modality:    bids.ModalityEEG,
				Kind:        kind,
				Destination: dest,
			})
		}
	}

	return plan, nil
}

// Run plans and executes the conversion. The dataset directory is locked for
// the duration of the run so two conversions cannot interleave.
func (c *Converter) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()

	if err := c.cfg.EnsureDirectories(); err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "converting", "ensure directories", "", err)
	}

	lock := flock.New(filepath.Join(c.cfg.Paths.DatasetDir, lockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrIO, "converting", "acquire dataset lock", lock.Path(), err)
	}
	if !acquired {
		return nil, faults.Wrap(faults.ErrIO, "converting", "acquire dataset lock",
			"another conversion is already writing to "+c.cfg.Paths.DatasetDir, nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	plan, err := c.Plan(ctx)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With(logging.String(logging.FieldRunID, plan.RunID))
	logger.Info("starting conversion",
		logging.Args(
			logging.String("task", plan.TaskLabel),
			logging.Int("actions", len(plan.Actions)),
			logging.String("total", humanize.Bytes(plan.TotalBytes())),
		)...)

	overrides := channelOverrides(c.cfg.Overrides)
	summary := &Summary{RunID: plan.RunID}

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.execute(logger, action, overrides, summary); err != nil {
			return nil, err
		}
	}

	summary.Duration = time.Since(started)
	logger.Info("conversion completed",
		logging.Args(
			logging.Int("files_copied", summary.FilesCopied),
			logging.Int("sidecars_written", summary.SidecarsWritten),
			logging.String("bytes_copied", humanize.Bytes(summary.BytesCopied)),
			logging.Duration("duration", summary.Duration),
		)...)
	return summary, nil
}

func (c *Converter) execute(logger *slog.Logger, action Action, overrides map[subject.ID]sidecar.ChannelOverride, summary *Summary) error {
	if !c.cfg.Dataset.OverwriteExisting {
		if _, err := os.Stat(action.Destination); err == nil {
			return faults.Wrap(faults.ErrIO, "converting", "check destination",
				action.Destination+" already exists and overwrite_existing is false", nil)
		}
	}

	if err := bids.EnsureParent(action.Destination); err != nil {
		return err
	}

	switch action.Kind {
	case bids.ArtifactRecording:
		if err := fileutil.CopyFileVerified(action.Source, action.Destination); err != nil {
			marker := faults.ErrIO
			if errors.Is(err, os.ErrNotExist) {
				marker = faults.ErrSourceMissing
			}
			return faults.Wrap(marker, "copying", "copy recording", action.Source, err)
		}
		summary.FilesCopied++
		summary.BytesCopied += action.Bytes
		logger.Info("recording copied",
			logging.Args(
				logging.String(logging.FieldSubject, action.Subject.String()),
				logging.String(logging.FieldModality, string(action.Modality)),
				logging.String(logging.FieldPath, action.Destination),
			)...)

	case bids.ArtifactChannelMetadata:
		records, err := sidecar.BuildChannelTable(action.Subject, sidecar.DefaultChannelTemplate(), overrides)
		if err != nil {
			return err
		}
		if err := os.WriteFile(action.Destination, sidecar.EncodeChannelTSV(records), 0o644); err != nil {
			return faults.Wrap(faults.ErrIO, "metadata", "write channel table", action.Destination, err)
		}
		summary.SidecarsWritten++
		logger.Info("channel table written",
			logging.Args(
				logging.String(logging.FieldSubject, action.Subject.String()),
				logging.String(logging.FieldPath, action.Destination),
			)...)

	case bids.ArtifactTaskMetadata:
		// The document carries the free-text task name; only filenames use the
		// normalized label.
		doc := sidecar.BuildTaskDocument(action.Subject, c.cfg.Dataset.TaskName, sidecar.DefaultTaskTemplate())
		data, err := sidecar.EncodeTaskJSON(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(action.Destination, data, 0o644); err != nil {
			return faults.Wrap(faults.ErrIO, "metadata", "write task document", action.Destination, err)
		}
		summary.SidecarsWritten++
		logger.Info("task document written",
			logging.Args(
				logging.String(logging.FieldSubject, action.Subject.String()),
				logging.String(logging.FieldPath, action.Destination),
			)...)

	default:
		return faults.Wrap(faults.ErrUnknownArtifact, "converting", "execute action", string(action.Kind), nil)
	}

	return nil
}

func channelOverrides(entries map[string]config.Override) map[subject.ID]sidecar.ChannelOverride {
	if len(entries) == 0 {
		return nil
	}
	out := make(map[subject.ID]sidecar.ChannelOverride, len(entries))
	for id, entry := range entries {
		out[subject.ID(id)] = sidecar.ChannelOverride{
			Status:            entry.Status,
			StatusDescription: entry.StatusDescription,
		}
	}
	return out
}
