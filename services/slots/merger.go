// Package slots folds one chat turn into the running booking slots.
package slots

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"

	"slotbook/models"
	ai "slotbook/services/intelligence"
	"slotbook/services/temporal"
)

// DegradedNotice is appended to the reply when the NL extractor could not help.
const DegradedNotice = "\n⚠️ AI is temporarily unavailable or rate-limited. Using classic extraction. Some flexible language may not be understood."

// Result is the merged slot set for a turn.
type Result struct {
	Slots models.Slots
	// Degraded is set when the extractor failed or returned nothing, so the
	// turn relied on pattern extraction alone.
	Degraded bool
}

// Merger applies extractor guesses first, then fills the gaps with the
// temporal parser and keyword rules.
type Merger struct {
	parser *temporal.Parser
}

func NewMerger(parser *temporal.Parser) *Merger {
	return &Merger{parser: parser}
}

// Merge never clears a filled slot. Extractor guesses overwrite; classic
// extraction only fills slots that are still empty, except that an explicit
// date ("today", "25/06/2025") or a time range in the message replaces the
// value from an earlier turn. Neither overrides a guess made this turn.
func (m *Merger) Merge(current models.Slots, guess models.SlotGuess, extractErr error, message string, now time.Time) Result {
	out := current
	fromGuess := m.applyGuess(&out, guess, extractErr, now)

	var fuzzyClock *civil.Time
	if !fromGuess[models.SlotDate] {
		if dm, ok := m.parser.ExtractDate(message, now); ok {
			if dm.Source != temporal.DateFuzzy || out.Date == nil {
				d := dm.Date
				out.Date = &d
			}
			fuzzyClock = dm.Clock
		}
	}

	if !fromGuess[models.SlotTime] {
		stripped := temporal.StripNumericDates(message)
		if tr, ok := temporal.ExtractTimeRange(stripped); ok {
			if inferredDuration(out) {
				out.Duration = nil
			}
			out.Time = &tr
		} else if out.Time == nil {
			if fuzzyClock != nil {
				out.Time = &models.TimeSpec{Start: *fuzzyClock}
			} else if c, ok := m.parser.ExtractClock(stripped, now); ok {
				out.Time = &models.TimeSpec{Start: c}
			}
		}
	}

	if out.Duration == nil && out.Time != nil && out.Time.IsRange() {
		d := models.NewDuration(out.Time.Span())
		out.Duration = &d
	}
	if out.Duration == nil {
		if d, ok := temporal.ExtractDuration(message); ok {
			out.Duration = &d
		}
	}

	if out.Title == "" {
		if title, ok := temporal.ExtractTitle(message); ok {
			out.Title = title
		}
	}

	return Result{Slots: out, Degraded: degraded(guess, extractErr)}
}

// applyGuess writes every guess that normalizes and reports which slots it set.
func (m *Merger) applyGuess(out *models.Slots, guess models.SlotGuess, extractErr error, now time.Time) map[models.SlotName]bool {
	set := make(map[models.SlotName]bool, len(models.RequiredSlots))
	if extractErr != nil {
		return set
	}
	for _, name := range models.RequiredSlots {
		raw := guess.Get(name)
		if raw == "" {
			continue
		}
		switch name {
		case models.SlotDate:
			if d, ok := m.parser.ParseDateGuess(raw, now); ok {
				out.Date = &d
				set[name] = true
			}
		case models.SlotTime:
			if t, ok := m.parser.ParseTimeGuess(raw, now); ok {
				out.Time = &t
				set[name] = true
			}
		case models.SlotDuration:
			if d, ok := temporal.ParseDurationGuess(raw); ok {
				out.Duration = &d
				set[name] = true
			}
		case models.SlotTitle:
			out.Title = raw
			set[name] = true
		}
	}
	return set
}

// inferredDuration reports whether the duration was derived from the current
// range rather than stated by the user.
func inferredDuration(s models.Slots) bool {
	if s.Time == nil || !s.Time.IsRange() || s.Duration == nil {
		return false
	}
	return *s.Duration == models.NewDuration(s.Time.Span())
}

func degraded(guess models.SlotGuess, extractErr error) bool {
	if extractErr != nil {
		return !errors.Is(extractErr, ai.ErrExtractorDisabled)
	}
	return guess.IsEmpty()
}
