// Package sidecar generates the per-subject metadata artifacts that accompany
// each converted EEG recording: the _channels.tsv table and the _eeg.json task
// document. Both are rendered fresh from a shared template on every run, so a
// rerun regenerates them instead of accumulating state.
package sidecar

import (
	"fmt"

	"bidsify/internal/faults"
	"bidsify/internal/subject"
)

// ChannelRecord is one row of the channel description table. All cells are
// rendered as text; absent values carry the literal "n/a".
type ChannelRecord struct {
	Name              string
	Type              string
	Units             string
	LowCutoff         string
	HighCutoff        string
	Reference         string
	Group             string
	SamplingFrequency string
	Description       string
	Notch             string
	Status            string
	StatusDescription string
}

// ChannelTemplate defines the fixed channel set and the defaults shared by
// every signal channel. The trigger channel deviates in exactly two cells:
// its type is the trigger type and its reference is "n/a".
type ChannelTemplate struct {
	Names             []string
	TriggerName       string
	SignalType        string
	TriggerType       string
	Units             string
	LowCutoff         string
	HighCutoff        string
	Reference         string
	Group             string
	SamplingFrequency string
	Description       string
	Notch             string
}

// ChannelOverride replaces the status and status-description columns for one
// subject. Both vectors must cover every channel; partial or scalar overrides
// are rejected rather than broadcast.
type ChannelOverride struct {
	Status            []string
	StatusDescription []string
}

const (
	statusGood = "GOOD"
	notAvail   = "n/a"
)

// DefaultChannelTemplate returns the acquisition-wide channel defaults for
// this dataset: five occipital/parietal electrodes referenced to the ear plus
// one trigger channel.
func DefaultChannelTemplate() ChannelTemplate {
	return ChannelTemplate{
		Names:             []string{"Iz", "Oz", "POz", "O1", "O2", "TRIG"},
		TriggerName:       "TRIG",
		SignalType:        "EEG",
		TriggerType:       "TRIG",
		Units:             "µV",
		LowCutoff:         "0.1",
		HighCutoff:        "1000",
		Reference:         "ear",
		Group:             "1",
		SamplingFrequency: "5000",
		Description:       notAvail,
		Notch:             notAvail,
	}
}

// BuildChannelTable constructs one record per channel for the given subject.
// When overrides has no entry for the subject, every channel is marked GOOD
// with an "n/a" description. An override with vectors that do not match the
// channel count fails with ErrSerialization.
func BuildChannelTable(id subject.ID, tpl ChannelTemplate, overrides map[subject.ID]ChannelOverride) ([]ChannelRecord, error) {
	records := make([]ChannelRecord, 0, len(tpl.Names))
	for _, name := range tpl.Names {
		rec := ChannelRecord{
			Name:              name,
			Type:              tpl.SignalType,
			Units:             tpl.Units,
			LowCutoff:         tpl.LowCutoff,
			HighCutoff:        tpl.HighCutoff,
			Reference:         tpl.Reference,
			Group:             tpl.Group,
			SamplingFrequency: tpl.SamplingFrequency,
			Description:       tpl.Description,
			Notch:             tpl.Notch,
			Status:            statusGood,
			StatusDescription: notAvail,
		}
		if name == tpl.TriggerName {
			rec.Type = tpl.TriggerType
			rec.Reference = notAvail
		}
		records = append(records, rec)
	}

	override, ok := overrides[id]
	if !ok {
		return records, nil
	}

	if len(override.Status) != len(records) {
		return nil, faults.Wrap(faults.ErrSerialization, "metadata", "apply channel override",
			fmt.Sprintf("subject %s: status vector has %d entries, channel table has %d", id, len(override.Status), len(records)), nil)
	}
	if len(override.StatusDescription) != len(records) {
		return nil, faults.Wrap(faults.ErrSerialization, "metadata", "apply channel override",
			fmt.Sprintf("subject %s: status_description vector has %d entries, channel table has %d", id, len(override.StatusDescription), len(records)), nil)
	}

	for i := range records {
		records[i].Status = override.Status[i]
		records[i].StatusDescription = override.StatusDescription[i]
	}
	return records, nil
}
