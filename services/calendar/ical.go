package calendar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"slotbook/models"
)

const icalProductID = "-//slotbook//booking assistant//EN"

// ICalCalendar keeps events in a local .ics file. It is meant for development
// and demos where no Google account is available.
type ICalCalendar struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func NewICalCalendar(path string) *ICalCalendar {
	return &ICalCalendar{path: path, now: time.Now}
}

func (c *ICalCalendar) FindConflict(_ context.Context, start, end time.Time) (*models.CalendarEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cal, err := c.load()
	if err != nil {
		return nil, err
	}
	hits := lo.Filter(eventsOf(cal), func(e models.CalendarEvent, _ int) bool {
		return overlaps(e.Start, e.End, start, end)
	})
	if len(hits) == 0 {
		return nil, nil
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Start.Before(hits[j].Start) })
	return &hits[0], nil
}

func (c *ICalCalendar) BookEvent(_ context.Context, title, description string, start, end time.Time) (*models.CalendarEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cal, err := c.load()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ev := cal.AddEvent(id)
	ev.SetDtStampTime(c.now().UTC())
	ev.SetStartAt(start.UTC())
	ev.SetEndAt(end.UTC())
	ev.SetSummary(title)
	if description != "" {
		ev.SetDescription(description)
	}

	if err := c.save(cal); err != nil {
		return nil, err
	}
	return &models.CalendarEvent{ID: id, Summary: title, Start: start, End: end}, nil
}

func (c *ICalCalendar) DeleteEvent(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cal, err := c.load()
	if err != nil {
		return err
	}
	before := len(cal.Components)
	cal.Components = lo.Reject(cal.Components, func(comp ics.Component, _ int) bool {
		ev, ok := comp.(*ics.VEvent)
		return ok && ev.Id() == id
	})
	if len(cal.Components) == before {
		return fmt.Errorf("delete event %s: %w", id, ErrEventNotFound)
	}
	return c.save(cal)
}

func (c *ICalCalendar) load() (*ics.Calendar, error) {
	data, err := os.ReadFile(c.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read ical file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		cal := ics.NewCalendar()
		cal.SetProductId(icalProductID)
		cal.SetMethod(ics.MethodPublish)
		return cal, nil
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse ical file: %w", err)
	}
	return cal, nil
}

func (c *ICalCalendar) save(cal *ics.Calendar) error {
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("write ical file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace ical file: %w", err)
	}
	return nil
}

func eventsOf(cal *ics.Calendar) []models.CalendarEvent {
	var out []models.CalendarEvent
	for _, ev := range cal.Events() {
		start, err := ev.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ev.GetEndAt()
		if err != nil {
			continue
		}
		var summary string
		if p := ev.GetProperty(ics.ComponentPropertySummary); p != nil {
			summary = strings.TrimSpace(p.Value)
		}
		out = append(out, models.CalendarEvent{ID: ev.Id(), Summary: summary, Start: start, End: end})
	}
	return out
}
