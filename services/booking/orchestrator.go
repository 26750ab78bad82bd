package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/services/calendar"
)

const confirmationLayout = "Monday, January 02 at 03:04 PM"

// Outcome is the reply for a booking attempt. A non-nil Pending means the
// conversation must wait for a yes/no before anything is written; otherwise
// the conversation is finished and its state should be cleared.
type Outcome struct {
	Reply   string
	Pending *models.PendingOverwrite
}

// Orchestrator turns complete slots into a calendar booking.
type Orchestrator struct {
	calendar calendar.Calendar
	loc      *time.Location
	logger   *zap.Logger
}

func NewOrchestrator(cal calendar.Calendar, loc *time.Location, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{calendar: cal, loc: loc, logger: logger}
}

// Book checks [start, end) for a conflicting event. On a conflict it proposes
// an overwrite instead of booking; otherwise it books the event.
func (o *Orchestrator) Book(ctx context.Context, userID string, s models.Slots) Outcome {
	start, end, err := Interval(s, o.loc)
	if err != nil {
		return o.failed(userID, "booking", err)
	}

	conflict, err := o.calendar.FindConflict(ctx, start, end)
	if err != nil {
		return o.failed(userID, "booking", err)
	}
	if conflict != nil {
		summary := conflict.Summary
		if summary == "" {
			summary = "an event"
		}
		o.logger.Info("booking conflicts with existing event",
			zap.String("user_id", userID),
			zap.String("event_id", conflict.ID),
			zap.Time("start", start),
		)
		return Outcome{
			Reply: fmt.Sprintf("There is already an event ('%s') at that time. Would you like to delete and overwrite it with your new booking? (yes/no)", summary),
			Pending: &models.PendingOverwrite{
				ConflictingEventID: conflict.ID,
				ConflictSummary:    conflict.Summary,
				Start:              start,
				End:                end,
			},
		}
	}

	if _, err := o.calendar.BookEvent(ctx, s.Title, description(userID), start, end); err != nil {
		return o.failed(userID, "booking", err)
	}
	return Outcome{
		Reply: fmt.Sprintf("Booked your %s on %s for %s. You'll receive a confirmation shortly.",
			s.Title, start.In(o.loc).Format(confirmationLayout), durationLabel(s.Duration)),
	}
}

// Overwrite deletes the conflicting event and books the proposed interval
// that was stored when the conflict was found.
func (o *Orchestrator) Overwrite(ctx context.Context, userID string, s models.Slots, p models.PendingOverwrite) Outcome {
	if err := o.calendar.DeleteEvent(ctx, p.ConflictingEventID); err != nil {
		return o.failed(userID, "overwriting", err)
	}
	if _, err := o.calendar.BookEvent(ctx, s.Title, description(userID), p.Start, p.End); err != nil {
		return o.failed(userID, "overwriting", err)
	}
	return Outcome{
		Reply: fmt.Sprintf("Previous event deleted. Booked your %s on %s for %s.",
			s.Title, p.Start.In(o.loc).Format(confirmationLayout), durationLabel(s.Duration)),
	}
}

func (o *Orchestrator) failed(userID, action string, err error) Outcome {
	o.logger.Error("calendar operation failed",
		zap.String("user_id", userID),
		zap.String("action", action),
		zap.Error(err),
	)
	return Outcome{
		Reply: fmt.Sprintf("Sorry, there was an error %s your appointment: %v. Please try again.", action, err),
	}
}

func description(userID string) string {
	return "Booked by the slotbook assistant for " + userID
}

func durationLabel(d *models.Duration) string {
	if d == nil {
		return models.FormatDuration(DefaultDuration)
	}
	return d.String()
}
