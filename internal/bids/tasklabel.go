package bids

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaskLabel normalizes a free-text task name into a filename-legal label.
//
// BIDS task labels carry only letters and digits, so punctuation and
// separators collapse into word boundaries and the words are title-cased and
// joined: "auditory oddball (pilot)" becomes "AuditoryOddballPilot". A name
// that is already a clean single word passes through unchanged.
func TaskLabel(taskName string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range taskName {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		default:
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	words := strings.Fields(cleaned.String())
	if len(words) == 0 {
		return "Unnamed"
	}
	if len(words) == 1 && words[0] == taskName {
		return taskName
	}

	titler := cases.Title(language.Und, cases.NoLower)
	for i, word := range words {
		words[i] = titler.String(word)
	}
	return strings.Join(words, "")
}
