package models

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/samber/lo"
)

// SlotName identifies one of the booking fields collected across turns.
type SlotName string

const (
	SlotDate     SlotName = "date"
	SlotTime     SlotName = "time"
	SlotDuration SlotName = "duration"
	SlotTitle    SlotName = "title"
)

// RequiredSlots is the fixed order in which missing slots are prompted for.
var RequiredSlots = []SlotName{SlotDate, SlotTime, SlotDuration, SlotTitle}

// TimeSpec is either a single start time or a start/end range on the booking date.
type TimeSpec struct {
	Start civil.Time  `json:"start"`
	End   *civil.Time `json:"end,omitempty"`
}

// IsRange reports whether an explicit end time was given.
func (t TimeSpec) IsRange() bool { return t.End != nil }

// Span is the length of a range; zero for a single time.
func (t TimeSpec) Span() time.Duration {
	if t.End == nil {
		return 0
	}
	return clockOffset(*t.End) - clockOffset(t.Start)
}

// String renders "HH:MM" or "HH:MM - HH:MM".
func (t TimeSpec) String() string {
	if t.End == nil {
		return FormatClock(t.Start)
	}
	return FormatClock(t.Start) + " - " + FormatClock(*t.End)
}

// FormatClock renders a civil time as 24h "HH:MM".
func FormatClock(c civil.Time) string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func clockOffset(c civil.Time) time.Duration {
	return time.Duration(c.Hour)*time.Hour + time.Duration(c.Minute)*time.Minute
}

// Duration is the requested event length. Label is what the user is shown;
// a zero Length means the label could not be understood and booking falls
// back to the default length.
type Duration struct {
	Length time.Duration `json:"length"`
	Label  string        `json:"label"`
}

func (d Duration) String() string { return d.Label }

// NewDuration builds a duration with its compact label ("1h", "30m", "1h30m").
func NewDuration(length time.Duration) Duration {
	return Duration{Length: length, Label: FormatDuration(length)}
}

// FormatDuration renders whole minutes as "<h>h", "<m>m" or "<h>h<m>m".
func FormatDuration(d time.Duration) string {
	mins := int(d / time.Minute)
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// Slots is the accumulated booking intent for one conversation.
type Slots struct {
	Date     *civil.Date `json:"date,omitempty"`
	Time     *TimeSpec   `json:"time,omitempty"`
	Duration *Duration   `json:"duration,omitempty"`
	Title    string      `json:"title,omitempty"`
}

// Has reports whether the named slot is filled.
func (s Slots) Has(name SlotName) bool {
	switch name {
	case SlotDate:
		return s.Date != nil
	case SlotTime:
		return s.Time != nil
	case SlotDuration:
		return s.Duration != nil
	case SlotTitle:
		return s.Title != ""
	}
	return false
}

// Missing lists unfilled slots in prompting order.
func (s Slots) Missing() []SlotName {
	return lo.Filter(RequiredSlots, func(name SlotName, _ int) bool {
		return !s.Has(name)
	})
}

// Complete reports whether every required slot is filled.
func (s Slots) Complete() bool {
	return len(s.Missing()) == 0
}

// IsEmpty reports whether no slot is filled.
func (s Slots) IsEmpty() bool {
	return len(s.Missing()) == len(RequiredSlots)
}
