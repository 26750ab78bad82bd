package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"slotbook/models"
)

// GoogleCalendar talks to one Google Calendar through a service account.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
	logger     *zap.Logger
}

func NewGoogleCalendar(ctx context.Context, credentialsFile, calendarID string, logger *zap.Logger) (*GoogleCalendar, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &GoogleCalendar{svc: svc, calendarID: calendarID, logger: logger}, nil
}

func (g *GoogleCalendar) FindConflict(ctx context.Context, start, end time.Time) (*models.CalendarEvent, error) {
	g.logger.Debug("checking availability",
		zap.String("calendar_id", g.calendarID),
		zap.String("time_min", ToRFC3339UTC(start)),
		zap.String("time_max", ToRFC3339UTC(end)),
	)
	events, err := g.svc.Events.List(g.calendarID).
		TimeMin(ToRFC3339UTC(start)).
		TimeMax(ToRFC3339UTC(end)).
		MaxResults(1).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	g.logger.Debug("events in slot", zap.Int("count", len(events.Items)))
	if len(events.Items) == 0 {
		return nil, nil
	}
	return fromGoogleEvent(events.Items[0]), nil
}

func (g *GoogleCalendar) BookEvent(ctx context.Context, title, description string, start, end time.Time) (*models.CalendarEvent, error) {
	event := &gcal.Event{
		Summary:     title,
		Description: description,
		Start:       &gcal.EventDateTime{DateTime: ToRFC3339UTC(start), TimeZone: "UTC"},
		End:         &gcal.EventDateTime{DateTime: ToRFC3339UTC(end), TimeZone: "UTC"},
	}
	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	g.logger.Info("event created", zap.String("event_id", created.Id), zap.String("summary", created.Summary))
	return fromGoogleEvent(created), nil
}

func (g *GoogleCalendar) DeleteEvent(ctx context.Context, id string) error {
	g.logger.Debug("deleting event", zap.String("event_id", id))
	err := g.svc.Events.Delete(g.calendarID, id).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return fmt.Errorf("delete event %s: %w", id, ErrEventNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

func fromGoogleEvent(e *gcal.Event) *models.CalendarEvent {
	ev := &models.CalendarEvent{ID: e.Id, Summary: e.Summary}
	if e.Start != nil {
		ev.Start, _ = time.Parse(time.RFC3339, e.Start.DateTime)
	}
	if e.End != nil {
		ev.End, _ = time.Parse(time.RFC3339, e.End.DateTime)
	}
	return ev
}
