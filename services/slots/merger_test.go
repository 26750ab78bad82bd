package slots

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbook/models"
	ai "slotbook/services/intelligence"
	"slotbook/services/temporal"
)

func newMerger(t *testing.T) (*Merger, time.Time) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return NewMerger(temporal.New(loc)), time.Date(2025, time.June, 24, 10, 0, 0, 0, loc)
}

func date(y int, m time.Month, d int) *civil.Date {
	return &civil.Date{Year: y, Month: m, Day: d}
}

func TestMerge_ClassicExtraction(t *testing.T) {
	m, now := newMerger(t)

	res := m.Merge(models.Slots{}, models.SlotGuess{}, ai.ErrExtractorDisabled, "tomorrow 8-9am meeting", now)

	assert.False(t, res.Degraded)
	assert.Equal(t, date(2025, time.June, 25), res.Slots.Date)
	require.NotNil(t, res.Slots.Time)
	assert.Equal(t, "08:00 - 09:00", res.Slots.Time.String())
	require.NotNil(t, res.Slots.Duration)
	assert.Equal(t, time.Hour, res.Slots.Duration.Length)
	assert.Equal(t, "Meeting", res.Slots.Title)
	assert.True(t, res.Slots.Complete())
}

func TestMerge_GuessOverridesClassic(t *testing.T) {
	m, now := newMerger(t)
	guess := models.SlotGuess{Date: "2025-07-01", Time: "14:30", Duration: "45 minutes", Title: "Dentist"}

	res := m.Merge(models.Slots{}, guess, nil, "today 9am meeting for 1 hour", now)

	assert.False(t, res.Degraded)
	assert.Equal(t, date(2025, time.July, 1), res.Slots.Date)
	assert.Equal(t, "14:30", res.Slots.Time.String())
	assert.Equal(t, 45*time.Minute, res.Slots.Duration.Length)
	assert.Equal(t, "Dentist", res.Slots.Title)
}

func TestMerge_UnparseableGuessFallsBack(t *testing.T) {
	m, now := newMerger(t)
	guess := models.SlotGuess{Date: "2025-02-30", Time: "whenever"}

	res := m.Merge(models.Slots{}, guess, nil, "tomorrow at 3pm", now)

	assert.Equal(t, date(2025, time.June, 25), res.Slots.Date)
	require.NotNil(t, res.Slots.Time)
	assert.Equal(t, "15:00", res.Slots.Time.String())
}

func TestMerge_DurationGuessKeptAsLabel(t *testing.T) {
	m, now := newMerger(t)

	res := m.Merge(models.Slots{}, models.SlotGuess{Duration: "a while"}, nil, "", now)

	require.NotNil(t, res.Slots.Duration)
	assert.Equal(t, "a while", res.Slots.Duration.Label)
	assert.Zero(t, res.Slots.Duration.Length)
}

func TestMerge_KeepsEarlierSlots(t *testing.T) {
	m, now := newMerger(t)
	current := models.Slots{
		Date:  date(2025, time.June, 30),
		Time:  &models.TimeSpec{Start: civil.Time{Hour: 11}},
		Title: "Call",
	}

	res := m.Merge(current, models.SlotGuess{}, ai.ErrExtractorDisabled, "meeting at 4pm for 2 hours", now)

	assert.Equal(t, date(2025, time.June, 30), res.Slots.Date, "a bare clock does not move the date")
	assert.Equal(t, "11:00", res.Slots.Time.String(), "a single clock does not replace a time")
	assert.Equal(t, "Call", res.Slots.Title)
	assert.Equal(t, 2*time.Hour, res.Slots.Duration.Length)
}

func TestMerge_ExplicitValuesReplaceEarlierTurns(t *testing.T) {
	m, now := newMerger(t)
	current := models.Slots{
		Date: date(2025, time.June, 30),
		Time: &models.TimeSpec{Start: civil.Time{Hour: 11}},
	}

	res := m.Merge(current, models.SlotGuess{}, ai.ErrExtractorDisabled, "actually 26/06/2025 from 2-3pm", now)

	assert.Equal(t, date(2025, time.June, 26), res.Slots.Date)
	assert.Equal(t, "14:00 - 15:00", res.Slots.Time.String())
}

func TestMerge_InvalidNumericDate(t *testing.T) {
	m, now := newMerger(t)

	res := m.Merge(models.Slots{}, models.SlotGuess{}, ai.ErrExtractorDisabled, "32/13/2025", now)

	assert.Nil(t, res.Slots.Date)
	assert.Nil(t, res.Slots.Time)
}

func TestMerge_Degraded(t *testing.T) {
	m, now := newMerger(t)

	cases := []struct {
		name  string
		guess models.SlotGuess
		err   error
		want  bool
	}{
		{"extractor error", models.SlotGuess{}, errors.New("429"), true},
		{"empty guess", models.SlotGuess{}, nil, true},
		{"disabled", models.SlotGuess{}, ai.ErrExtractorDisabled, false},
		{"configured provider failed to start", models.SlotGuess{}, ai.UnavailableExtractor{Provider: "gemini", Cause: ai.ErrExtractorDisabled}.Err(), true},
		{"useful guess", models.SlotGuess{Title: "Call"}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := m.Merge(models.Slots{}, tc.guess, tc.err, "hello", now)
			assert.Equal(t, tc.want, res.Degraded)
		})
	}
}

func TestMerge_ISODateInMessage(t *testing.T) {
	m, now := newMerger(t)

	res := m.Merge(models.Slots{}, models.SlotGuess{}, ai.ErrExtractorDisabled, "meeting on 2025-06-28 at 3pm", now)
	assert.Equal(t, date(2025, time.June, 28), res.Slots.Date)
	require.NotNil(t, res.Slots.Time)
	assert.Equal(t, "15:00", res.Slots.Time.String())

	res = m.Merge(models.Slots{}, models.SlotGuess{}, ai.ErrExtractorDisabled, "2025-06-25 10-11am meeting", now)
	assert.Equal(t, date(2025, time.June, 25), res.Slots.Date)
	require.NotNil(t, res.Slots.Time)
	assert.Equal(t, "10:00 - 11:00", res.Slots.Time.String())
	require.NotNil(t, res.Slots.Duration)
	assert.Equal(t, time.Hour, res.Slots.Duration.Length)
}

func TestMerge_NewRangeRecomputesInferredDuration(t *testing.T) {
	m, now := newMerger(t)

	first := m.Merge(models.Slots{}, models.SlotGuess{}, ai.ErrExtractorDisabled, "tomorrow 8-9am", now)
	require.NotNil(t, first.Slots.Duration)
	assert.Equal(t, time.Hour, first.Slots.Duration.Length)

	second := m.Merge(first.Slots, models.SlotGuess{}, ai.ErrExtractorDisabled, "make it 8-10am", now)
	assert.Equal(t, "08:00 - 10:00", second.Slots.Time.String())
	require.NotNil(t, second.Slots.Duration)
	assert.Equal(t, 2*time.Hour, second.Slots.Duration.Length)
	assert.Equal(t, "2h", second.Slots.Duration.Label)
}

func TestMerge_NewRangeKeepsStatedDuration(t *testing.T) {
	m, now := newMerger(t)
	stated := models.NewDuration(30 * time.Minute)
	current := models.Slots{
		Time:     &models.TimeSpec{Start: civil.Time{Hour: 8}, End: &civil.Time{Hour: 9}},
		Duration: &stated,
	}

	res := m.Merge(current, models.SlotGuess{}, ai.ErrExtractorDisabled, "8-10am", now)

	assert.Equal(t, 30*time.Minute, res.Slots.Duration.Length)
}
