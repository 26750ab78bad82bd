package calendar

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestICal(t *testing.T) *ICalCalendar {
	t.Helper()
	return NewICalCalendar(filepath.Join(t.TempDir(), "bookings.ics"))
}

func TestICalCalendar_BookAndFindConflict(t *testing.T) {
	cal := newTestICal(t)
	ctx := t.Context()
	start := time.Date(2025, time.June, 25, 2, 30, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	conflict, err := cal.FindConflict(ctx, start, end)
	require.NoError(t, err)
	assert.Nil(t, conflict, "empty calendar has no conflicts")

	booked, err := cal.BookEvent(ctx, "Meeting", "booked by test", start, end)
	require.NoError(t, err)
	require.NotEmpty(t, booked.ID)

	t.Run("overlapping window", func(t *testing.T) {
		got, err := cal.FindConflict(ctx, start.Add(30*time.Minute), end.Add(30*time.Minute))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, booked.ID, got.ID)
		assert.Equal(t, "Meeting", got.Summary)
		assert.True(t, got.Start.Equal(start))
	})

	t.Run("adjacent window is free", func(t *testing.T) {
		got, err := cal.FindConflict(ctx, end, end.Add(time.Hour))
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestICalCalendar_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.ics")
	start := time.Date(2025, time.June, 25, 9, 0, 0, 0, time.UTC)

	_, err := NewICalCalendar(path).BookEvent(t.Context(), "Call", "", start, start.Add(30*time.Minute))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Call")

	got, err := NewICalCalendar(path).FindConflict(t.Context(), start, start.Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Call", got.Summary)
}

func TestICalCalendar_DeleteEvent(t *testing.T) {
	cal := newTestICal(t)
	ctx := t.Context()
	start := time.Date(2025, time.June, 25, 9, 0, 0, 0, time.UTC)

	booked, err := cal.BookEvent(ctx, "Appointment", "", start, start.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, cal.DeleteEvent(ctx, booked.ID))

	got, err := cal.FindConflict(ctx, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, got)

	err = cal.DeleteEvent(ctx, booked.ID)
	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestToRFC3339UTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2025, time.June, 26, 1, 0, 0, 0, loc)
	assert.Equal(t, "2025-06-25T19:30:00Z", ToRFC3339UTC(at))
}
