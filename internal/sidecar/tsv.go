package sidecar

import (
	"fmt"
	"strings"

	"bidsify/internal/faults"
)

// channelColumns is the fixed header of the channel table. The final column's
// casing is inherited from the dataset this layout was standardized against.
var channelColumns = []string{
	"name",
	"type",
	"units",
	"low_cutoff",
	"high_cutoff",
	"reference",
	"group",
	"sampling_frequency",
	"description",
	"notch",
	"status",
	"Status_description",
}

// EncodeChannelTSV renders the channel table as a tab-separated document with
// a header row and one row per channel, in template order. Empty cells are
// rendered as "n/a"; there is no index column.
func EncodeChannelTSV(records []ChannelRecord) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(channelColumns, "\t"))
	b.WriteByte('\n')
	for _, rec := range records {
		cells := []string{
			rec.Name,
			rec.Type,
			rec.Units,
			rec.LowCutoff,
			rec.HighCutoff,
			rec.Reference,
			rec.Group,
			rec.SamplingFrequency,
			rec.Description,
			rec.Notch,
			rec.Status,
			rec.StatusDescription,
		}
		for i, cell := range cells {
			if strings.TrimSpace(cell) == "" {
				cells[i] = notAvail
			}
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// ParseChannelTSV reads a channel table back into records. It exists for
// verification: the converter never reads sidecars, but tests round-trip the
// encoder through it.
func ParseChannelTSV(data []byte) ([]ChannelRecord, error) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 || lines[0] != strings.Join(channelColumns, "\t") {
		return nil, faults.Wrap(faults.ErrSerialization, "metadata", "parse channel table", "missing or malformed header row", nil)
	}

	records := make([]ChannelRecord, 0, len(lines)-1)
	for i, line := range lines[1:] {
		cells := strings.Split(line, "\t")
		if len(cells) != len(channelColumns) {
			return nil, faults.Wrap(faults.ErrSerialization, "metadata", "parse channel table",
				fmt.Sprintf("row %d has %d columns, want %d", i+1, len(cells), len(channelColumns)), nil)
		}
		records = append(records, ChannelRecord{
			Name:              cells[0],
			Type:              cells[1],
			Units:             cells[2],
			LowCutoff:         cells[3],
			HighCutoff:        cells[4],
			Reference:         cells[5],
			Group:             cells[6],
			SamplingFrequency: cells[7],
			Description:       cells[8],
			Notch:             cells[9],
			Status:            cells[10],
			StatusDescription: cells[11],
		})
	}
	return records, nil
}

// ColumnCount reports the width of the channel table.
func ColumnCount() int { return len(channelColumns) }
