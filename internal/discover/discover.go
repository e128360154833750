// Package discover locates source recordings inside a raw export tree.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bidsify/internal/bids"
	"bidsify/internal/faults"
)

// Recording is one source file found during the scan. The raw subject token is
// the name of the file's parent directory taken as a single path component; it
// is parsed into a subject ID later, so a malformed folder name surfaces at
// conversion time with the offending path attached.
type Recording struct {
	Path     string
	RawToken string
	Modality bids.Modality
}

// Scan walks root recursively and returns every file whose base name matches
// one of the per-modality glob patterns. Matching is case-insensitive because
// export trees rarely agree on casing. Results are sorted by path so a rerun
// processes files in the same order on every platform.
func Scan(root string, eegPatterns, behavioralPatterns []string) ([]Recording, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, faults.Wrap(faults.ErrSourceMissing, "discovery", "stat source root", root, err)
	}

	var found []Recording
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		modality, ok := classify(entry.Name(), eegPatterns, behavioralPatterns)
		if !ok {
			return nil
		}
		found = append(found, Recording{
			Path:     path,
			RawToken: filepath.Base(filepath.Dir(path)),
			Modality: modality,
		})
		return nil
	})
	if err != nil {
		return nil, faults.Wrap(faults.ErrIO, "discovery", "walk source tree", root, err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
	return found, nil
}

func classify(name string, eegPatterns, behavioralPatterns []string) (bids.Modality, bool) {
	lowered := strings.ToLower(name)
	if matchesAny(lowered, eegPatterns) {
		return bids.ModalityEEG, true
	}
	if matchesAny(lowered, behavioralPatterns) {
		return bids.ModalityBehavioral, true
	}
	return "", false
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		ok, err := filepath.Match(strings.ToLower(pattern), name)
		if err != nil {
			// Bad patterns are caught by config validation; treat as no match here.
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
