package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateSource records which rule produced a date.
type DateSource int

const (
	DateRelative DateSource = iota + 1 // "today" / "tomorrow"
	DateNumeric                        // D/M/Y or D-M-Y
	DateFuzzy                          // general-purpose phrase parser
)

// DateMatch is a date found in a message. Clock is set only when a fuzzy
// match also named a time of day.
type DateMatch struct {
	Date   civil.Date
	Source DateSource
	Clock  *civil.Time
}

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var isoInTextRe = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

var numericDateRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)

// ExtractDate applies the date rules in order, first match wins: relative
// keyword, ISO Y-M-D, numeric D/M/Y, fuzzy phrase. A numeric date that does
// not exist on the calendar yields no date and stops the search.
func (p *Parser) ExtractDate(msg string, now time.Time) (DateMatch, bool) {
	lower := strings.ToLower(msg)
	today := p.Today(now)

	switch {
	case strings.Contains(lower, "today"):
		return DateMatch{Date: today, Source: DateRelative}, true
	case strings.Contains(lower, "tomorrow"):
		return DateMatch{Date: today.AddDays(1), Source: DateRelative}, true
	}

	if iso := isoInTextRe.FindString(msg); iso != "" {
		d, err := civil.ParseDate(iso)
		if err != nil || !d.IsValid() {
			return DateMatch{}, false
		}
		return DateMatch{Date: d, Source: DateNumeric}, true
	}

	if m := numericDateRe.FindStringSubmatch(msg); m != nil {
		d, ok := numericDate(m[1], m[2], m[3])
		if !ok {
			return DateMatch{}, false
		}
		return DateMatch{Date: d, Source: DateNumeric}, true
	}

	fm, ok := p.parseFuzzy(msg, now)
	if !ok {
		return DateMatch{}, false
	}
	match := DateMatch{Date: civil.DateOf(fm.at), Source: DateFuzzy}
	if c, ok := explicitClock(msg); ok {
		match.Clock = &c
	} else if fm.hasClock {
		c := clockOf(fm.at)
		match.Clock = &c
	}
	return match, true
}

func numericDate(day, month, year string) (civil.Date, bool) {
	if len(year) == 2 {
		year = "20" + year
	}
	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil {
		return civil.Date{}, false
	}
	date := civil.Date{Year: y, Month: time.Month(m), Day: d}
	if !date.IsValid() {
		return civil.Date{}, false
	}
	return date, true
}

// StripNumericDates blanks out D/M/Y and Y-M-D fragments so their digits are
// not mistaken for a time range ("10-11-2025", "2025-06-25").
func StripNumericDates(msg string) string {
	msg = isoInTextRe.ReplaceAllString(msg, " ")
	return numericDateRe.ReplaceAllString(msg, " ")
}

// ParseDateGuess normalizes an extractor's date guess: ISO first, then the
// same rules used for raw messages.
func (p *Parser) ParseDateGuess(guess string, now time.Time) (civil.Date, bool) {
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return civil.Date{}, false
	}
	if isoDateRe.MatchString(guess) {
		d, err := civil.ParseDate(guess)
		if err != nil || !d.IsValid() {
			return civil.Date{}, false
		}
		return d, true
	}
	m, ok := p.ExtractDate(guess, now)
	if !ok {
		return civil.Date{}, false
	}
	return m.Date, true
}
