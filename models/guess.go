package models

import "strings"

// SlotGuess is one turn's best-effort output from the NL extractor. An empty
// field means "no guess" for that slot.
type SlotGuess struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	Title    string `json:"title"`
}

// Get returns the trimmed guess for a slot.
func (g SlotGuess) Get(name SlotName) string {
	switch name {
	case SlotDate:
		return strings.TrimSpace(g.Date)
	case SlotTime:
		return strings.TrimSpace(g.Time)
	case SlotDuration:
		return strings.TrimSpace(g.Duration)
	case SlotTitle:
		return strings.TrimSpace(g.Title)
	}
	return ""
}

// IsEmpty reports whether the extractor produced nothing usable.
func (g SlotGuess) IsEmpty() bool {
	for _, name := range RequiredSlots {
		if g.Get(name) != "" {
			return false
		}
	}
	return true
}
