package models

import "time"

// CalendarEvent is the subset of a calendar entry the assistant reads.
type CalendarEvent struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}
