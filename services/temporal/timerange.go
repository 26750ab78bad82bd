package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"slotbook/models"
)

// The separator is any run of '-', 't', 'o', which also covers the word "to".
var timeRangeRe = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*[-to]+\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

var singleClockRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ExtractTimeRange finds "H[:MM][am|pm] <sep> H[:MM][am|pm]" in the message.
// A range whose end is not after its start is not a range.
func ExtractTimeRange(msg string) (models.TimeSpec, bool) {
	m := timeRangeRe.FindStringSubmatch(strings.ToLower(msg))
	if m == nil {
		return models.TimeSpec{}, false
	}
	h1, _ := strconv.Atoi(m[1])
	m1 := atoiOr(m[2], 0)
	h2, _ := strconv.Atoi(m[4])
	m2 := atoiOr(m[5], 0)
	mer1, mer2 := m[3], m[6]

	if !validClock(h1, m1, mer1) || !validClock(h2, m2, mer2) {
		return models.TimeSpec{}, false
	}

	start, end := resolveRange(h1, m1, mer1, h2, m2, mer2)
	if !onRefDay(end).After(onRefDay(start)) {
		return models.TimeSpec{}, false
	}
	return models.TimeSpec{Start: start, End: &end}, true
}

// resolveRange turns both ends into 24h clock times. An am/pm marker on only
// one end is shared with the other when that keeps the range forward; when
// neither end is marked, hours 1..7 are read as afternoon.
func resolveRange(h1, m1 int, mer1 string, h2, m2 int, mer2 string) (civil.Time, civil.Time) {
	switch {
	case mer1 == "" && mer2 != "":
		if shared := to24h(h1, mer2); shared*60+m1 < to24h(h2, mer2)*60+m2 {
			mer1 = mer2
		}
	case mer1 != "" && mer2 == "":
		if shared := to24h(h2, mer1); to24h(h1, mer1)*60+m1 < shared*60+m2 {
			mer2 = mer1
		}
	case mer1 == "" && mer2 == "":
		h1, h2 = businessHour(h1), businessHour(h2)
	}
	return civil.Time{Hour: to24h(h1, mer1), Minute: m1}, civil.Time{Hour: to24h(h2, mer2), Minute: m2}
}

func businessHour(h int) int {
	if h >= 1 && h <= 7 {
		return h + 12
	}
	return h
}

// to24h: "pm" adds 12 below noon, "12am" is midnight, no marker leaves the hour.
func to24h(h int, meridiem string) int {
	switch {
	case meridiem == "pm" && h < 12:
		return h + 12
	case meridiem == "am" && h == 12:
		return 0
	}
	return h
}

func validClock(h, m int, meridiem string) bool {
	if m < 0 || m > 59 {
		return false
	}
	if meridiem != "" {
		return h >= 1 && h <= 12
	}
	return h >= 0 && h <= 23
}

func onRefDay(c civil.Time) civil.DateTime {
	return civil.DateTime{Date: civil.Date{Year: 2000, Month: time.January, Day: 1}, Time: c}
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ParseTimeGuess normalizes an extractor's time guess: a range, a bare clock
// ("15:30", "3pm"), or any phrase the fuzzy parser can read a clock from.
func (p *Parser) ParseTimeGuess(guess string, now time.Time) (models.TimeSpec, bool) {
	guess = strings.TrimSpace(strings.ToLower(guess))
	if guess == "" {
		return models.TimeSpec{}, false
	}
	if tr, ok := ExtractTimeRange(guess); ok {
		return tr, true
	}
	if m := singleClockRe.FindStringSubmatch(guess); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins := atoiOr(m[2], 0)
		if validClock(h, mins, m[3]) {
			return models.TimeSpec{Start: civil.Time{Hour: to24h(h, m[3]), Minute: mins}}, true
		}
		return models.TimeSpec{}, false
	}
	if c, ok := p.ExtractClock(guess, now); ok {
		return models.TimeSpec{Start: c}, true
	}
	return models.TimeSpec{}, false
}
