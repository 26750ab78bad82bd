// Package calendar provides the calendar capability the assistant books into.
package calendar

import (
	"context"
	"errors"
	"time"

	"slotbook/models"
)

// ErrEventNotFound is returned by DeleteEvent when the id is unknown.
var ErrEventNotFound = errors.New("calendar event not found")

// Calendar is a blocking, single-attempt calendar service. Times are passed
// as instants and sent to the provider as RFC3339 UTC.
type Calendar interface {
	// FindConflict returns the first event overlapping [start, end), or nil.
	FindConflict(ctx context.Context, start, end time.Time) (*models.CalendarEvent, error)
	BookEvent(ctx context.Context, title, description string, start, end time.Time) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

// ToRFC3339UTC renders an instant the way providers expect it: 2025-06-25T19:30:00Z.
func ToRFC3339UTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
