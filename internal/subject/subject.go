// Package subject derives canonical subject identifiers from the irregular
// folder names found in raw experiment exports.
//
// Export trees encode the subject in the leading token of the session folder
// name -- a marker prefix followed by the subject number, optionally trailed by
// initials or notes separated with underscores or hyphens (S1_JD, sub-12,
// P-7_retest). Parse reduces all of these to a zero-padded two-digit ID so two
// folders naming the same logical subject always land in the same dataset
// directory.
package subject

import (
	"strings"
	"unicode"

	"bidsify/internal/faults"
)

// ID is a zero-padded decimal subject identifier, e.g. "01".
type ID string

func (id ID) String() string { return string(id) }

// Label returns the BIDS participant label for the identifier, e.g. "sub-01".
func (id ID) Label() string { return "sub-" + string(id) }

// Parse extracts the subject ID from a raw session folder name.
//
// The folder name is scanned for its first digit run; everything before it is
// the subject-marker prefix and everything after it is ignored, so trailing
// initials or retest suffixes never influence the result. The digit run is
// left-padded with '0' to width 2. The prefix must contain at least one
// letter; names with no marker or no digits fail with ErrInvalidSubjectToken.
func Parse(rawFolderName string) (ID, error) {
	name := strings.TrimSpace(rawFolderName)
	if name == "" {
		return "", faults.Wrap(faults.ErrInvalidSubjectToken, "discovery", "parse subject", "empty folder name", nil)
	}

	markerSeen := false
	digits := strings.Builder{}
	for _, r := range name {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
			continue
		}
		if digits.Len() > 0 {
			break
		}
		if unicode.IsLetter(r) {
			markerSeen = true
		}
	}

	if !markerSeen {
		return "", faults.Wrap(faults.ErrInvalidSubjectToken, "discovery", "parse subject",
			"folder name "+strings.TrimSpace(name)+" has no subject-marker prefix", nil)
	}
	if digits.Len() == 0 {
		return "", faults.Wrap(faults.ErrInvalidSubjectToken, "discovery", "parse subject",
			"folder name "+strings.TrimSpace(name)+" has no subject number", nil)
	}

	return ID(pad(digits.String())), nil
}

func pad(digits string) string {
	if len(digits) >= 2 {
		return digits
	}
	return strings.Repeat("0", 2-len(digits)) + digits
}
