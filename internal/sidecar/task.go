package sidecar

import (
	"encoding/json"

	"bidsify/internal/faults"
	"bidsify/internal/subject"
)

// HardwareFilter describes one acquisition-hardware filter stage.
type HardwareFilter struct {
	CutoffFrequency float64 `json:"CutoffFrequency"`
}

// HardwareFilters groups the amplifier's filter stages.
type HardwareFilters struct {
	HighpassFilter HardwareFilter `json:"HighpassFilter"`
	LowpassFilter  HardwareFilter `json:"LowpassFilter"`
}

// TaskDocument is the structured task description written next to each EEG
// recording. Field order here fixes the key order of the serialized document.
type TaskDocument struct {
	TaskName               string          `json:"TaskName"`
	TaskDescription        string          `json:"TaskDescription"`
	Instructions           string          `json:"Instructions"`
	InstitutionName        string          `json:"InstitutionName"`
	Manufacturer           string          `json:"Manufacturer"`
	ManufacturersModelName string          `json:"ManufacturersModelName"`
	CapManufacturer        string          `json:"CapManufacturer"`
	EEGReference           string          `json:"EEGReference"`
	EEGGround              string          `json:"EEGGround"`
	SamplingFrequency      float64         `json:"SamplingFrequency"`
	PowerLineFrequency     float64         `json:"PowerLineFrequency"`
	SoftwareFilters        string          `json:"SoftwareFilters"`
	HardwareFilters        HardwareFilters `json:"HardwareFilters"`
	EEGChannelCount        int             `json:"EEGChannelCount"`
	TriggerChannelCount    int             `json:"TriggerChannelCount"`
	RecordingType          string          `json:"RecordingType"`
}

// TaskTemplate holds the dataset-wide task document plus a per-subject
// override hook. No override is defined for the current dataset, but the
// lookup keeps the builder contract stable if one ever is.
type TaskTemplate struct {
	Document  TaskDocument
	Overrides map[subject.ID]TaskDocument
}

// DefaultTaskTemplate returns the acquisition-wide task description template.
// The cutoff frequencies mirror the channel-table defaults.
func DefaultTaskTemplate() TaskTemplate {
	return TaskTemplate{
		Document: TaskDocument{
			TaskDescription:        "Passive visual stimulation while continuous EEG is recorded from occipital and parietal sites.",
			Instructions:           "Fixate the center of the screen and keep movement to a minimum.",
			InstitutionName:        notAvail,
			Manufacturer:           "Brain Products",
			ManufacturersModelName: "BrainAmp DC",
			CapManufacturer:        "EasyCap",
			EEGReference:           "ear",
			EEGGround:              "forehead",
			SamplingFrequency:      5000,
			PowerLineFrequency:     50,
			SoftwareFilters:        notAvail,
			HardwareFilters: HardwareFilters{
				HighpassFilter: HardwareFilter{CutoffFrequency: 0.1},
				LowpassFilter:  HardwareFilter{CutoffFrequency: 1000},
			},
			EEGChannelCount:     5,
			TriggerChannelCount: 1,
			RecordingType:       "continuous",
		},
	}
}

// BuildTaskDocument fills the template for one subject, substituting the task
// name. Subjects without an override entry receive the shared document.
func BuildTaskDocument(id subject.ID, taskName string, tpl TaskTemplate) TaskDocument {
	doc := tpl.Document
	if override, ok := tpl.Overrides[id]; ok {
		doc = override
	}
	doc.TaskName = taskName
	return doc
}

// EncodeTaskJSON renders the document as UTF-8 JSON with two-space
// indentation and a trailing newline.
func EncodeTaskJSON(doc TaskDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, faults.Wrap(faults.ErrSerialization, "metadata", "encode task document", "", err)
	}
	return append(data, '\n'), nil
}
