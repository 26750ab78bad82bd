package booking

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"

	"slotbook/models"
)

// DefaultDuration is used when the duration label could not be understood.
const DefaultDuration = time.Hour

// ErrIncompleteSlots is returned when an interval is requested before the
// date and time are known.
var ErrIncompleteSlots = errors.New("booking slots incomplete")

// Interval localizes the slots to the reference timezone. A time range is
// used as-is; a single time runs for the requested duration.
func Interval(s models.Slots, loc *time.Location) (time.Time, time.Time, error) {
	if s.Date == nil || s.Time == nil {
		return time.Time{}, time.Time{}, ErrIncompleteSlots
	}

	start := civil.DateTime{Date: *s.Date, Time: s.Time.Start}.In(loc)
	if s.Time.IsRange() {
		end := civil.DateTime{Date: *s.Date, Time: *s.Time.End}.In(loc)
		return start, end, nil
	}
	return start, start.Add(lengthOf(s.Duration)), nil
}

func lengthOf(d *models.Duration) time.Duration {
	if d == nil || d.Length <= 0 {
		return DefaultDuration
	}
	return d.Length
}
