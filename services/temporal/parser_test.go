package temporal

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbook/models"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

// 2025-06-24 is a Tuesday.
func fixedNow(loc *time.Location) time.Time {
	return time.Date(2025, time.June, 24, 10, 0, 0, 0, loc)
}

func clock(h, m int) civil.Time { return civil.Time{Hour: h, Minute: m} }

func TestExtractDate(t *testing.T) {
	loc := kolkata(t)
	p := New(loc)
	now := fixedNow(loc)

	testCases := []struct {
		name   string
		msg    string
		want   civil.Date
		source DateSource
	}{
		{"today", "call me Today please", civil.Date{Year: 2025, Month: time.June, Day: 24}, DateRelative},
		{"tomorrow", "tomorrow 8-9am meeting", civil.Date{Year: 2025, Month: time.June, Day: 25}, DateRelative},
		{"slash dmy", "book 5/7/2025", civil.Date{Year: 2025, Month: time.July, Day: 5}, DateNumeric},
		{"dash dmy two digit year", "on 28-02-26", civil.Date{Year: 2026, Month: time.February, Day: 28}, DateNumeric},
		{"iso in text", "meeting on 2025-06-28 at 3pm", civil.Date{Year: 2025, Month: time.June, Day: 28}, DateNumeric},
		{"iso beats dmy", "2025-07-02 or 05/07/2025", civil.Date{Year: 2025, Month: time.July, Day: 2}, DateNumeric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := p.ExtractDate(tc.msg, now)
			require.True(t, ok)
			assert.Equal(t, tc.want, got.Date)
			assert.Equal(t, tc.source, got.Source)
			assert.Nil(t, got.Clock)
		})
	}
}

func TestExtractDate_UsesReferenceTimezone(t *testing.T) {
	loc := kolkata(t)
	p := New(loc)
	// 20:00 UTC on the 24th is already the 25th in Kolkata.
	now := time.Date(2025, time.June, 24, 20, 0, 0, 0, time.UTC)

	got, ok := p.ExtractDate("today", now)
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.June, Day: 25}, got.Date)
}

func TestExtractDate_InvalidNumericDate(t *testing.T) {
	loc := kolkata(t)
	p := New(loc)

	for _, msg := range []string{"32/13/2025", "31/04/2025", "29-02-2025", "on 2025-02-30 at 3pm", "2025-13-01"} {
		t.Run(msg, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, ok := p.ExtractDate(msg, fixedNow(loc))
				assert.False(t, ok)
			})
		})
	}
}

func TestExtractDate_NothingFound(t *testing.T) {
	loc := kolkata(t)
	p := New(loc)

	_, ok := p.ExtractDate("", fixedNow(loc))
	assert.False(t, ok)
}

func TestExtractClock(t *testing.T) {
	loc := kolkata(t)
	p := New(loc)

	got, ok := p.ExtractClock("how about 3pm", fixedNow(loc))
	require.True(t, ok)
	assert.Equal(t, clock(15, 0), got)

	_, ok = p.ExtractClock("half an hour call", fixedNow(loc))
	assert.False(t, ok)
}

func TestExtractClock_Meridiem(t *testing.T) {
	loc := kolkata(t)
	p := New(loc)

	testCases := []struct {
		msg  string
		want civil.Time
	}{
		{"call at 12am tomorrow", clock(0, 0)},
		{"at 12am", clock(0, 0)},
		{"at 12:30 am", clock(0, 30)},
		{"lunch at 12pm", clock(12, 0)},
		{"standup 9:15am", clock(9, 15)},
	}
	for _, tc := range testCases {
		t.Run(tc.msg, func(t *testing.T) {
			got, ok := p.ExtractClock(tc.msg, fixedNow(loc))
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractDate_FuzzyClockMidnight(t *testing.T) {
	loc := kolkata(t)
	p := New(loc)

	got, ok := p.ExtractDate("next friday at 12am", fixedNow(loc))
	require.True(t, ok)
	assert.Equal(t, DateFuzzy, got.Source)
	require.NotNil(t, got.Clock)
	assert.Equal(t, clock(0, 0), *got.Clock)
}

func TestStripNumericDates(t *testing.T) {
	stripped := StripNumericDates("meeting on 10-11-2025 please")
	_, ok := ExtractTimeRange(stripped)
	assert.False(t, ok)
	assert.NotContains(t, stripped, "10-11-2025")
}

func TestStripNumericDates_ISO(t *testing.T) {
	stripped := StripNumericDates("2025-06-25 10-11am meeting")
	assert.NotContains(t, stripped, "2025-06-25")

	got, ok := ExtractTimeRange(stripped)
	require.True(t, ok)
	assert.Equal(t, clock(10, 0), got.Start)
	require.NotNil(t, got.End)
	assert.Equal(t, clock(11, 0), *got.End)
}

func TestParseDateGuess(t *testing.T) {
	loc := kolkata(t)
	p := New(loc)
	now := fixedNow(loc)

	got, ok := p.ParseDateGuess("2025-07-01", now)
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.July, Day: 1}, got)

	got, ok = p.ParseDateGuess("on 2025-06-25", now)
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.June, Day: 25}, got)

	got, ok = p.ParseDateGuess("tomorrow", now)
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.June, Day: 25}, got)

	_, ok = p.ParseDateGuess("  ", now)
	assert.False(t, ok)

	_, ok = p.ParseDateGuess("2025-02-30", now)
	assert.False(t, ok)
}

func TestParseTimeGuess(t *testing.T) {
	loc := kolkata(t)
	p := New(loc)
	now := fixedNow(loc)

	testCases := []struct {
		guess string
		want  models.TimeSpec
	}{
		{"15:30", models.TimeSpec{Start: clock(15, 30)}},
		{"3pm", models.TimeSpec{Start: clock(15, 0)}},
		{"12am", models.TimeSpec{Start: clock(0, 0)}},
		{"9", models.TimeSpec{Start: clock(9, 0)}},
	}
	for _, tc := range testCases {
		t.Run(tc.guess, func(t *testing.T) {
			got, ok := p.ParseTimeGuess(tc.guess, now)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	got, ok := p.ParseTimeGuess("10:00 - 11:30", now)
	require.True(t, ok)
	require.True(t, got.IsRange())
	assert.Equal(t, "10:00 - 11:30", got.String())

	_, ok = p.ParseTimeGuess("25:00", now)
	assert.False(t, ok)
	_, ok = p.ParseTimeGuess("whenever", now)
	assert.False(t, ok)
}
