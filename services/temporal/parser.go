// Package temporal turns free-text fragments of a chat message into calendar
// primitives: a date, a time of day or range, a duration and a title keyword.
// Every extractor reports "nothing found" through its boolean result; none of
// them return errors.
package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Parser holds the fuzzy phrase parser and the fixed reference timezone.
// It is safe for concurrent use.
type Parser struct {
	loc   *time.Location
	fuzzy *when.Parser
}

// New builds a parser anchored to loc. A nil loc means UTC.
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{loc: loc, fuzzy: w}
}

// Location is the reference timezone.
func (p *Parser) Location() *time.Location { return p.loc }

// Today is the calendar date of now in the reference timezone.
func (p *Parser) Today(now time.Time) civil.Date {
	return civil.DateOf(now.In(p.loc))
}

// clockWordRe decides whether a fuzzy match actually carried a time of day,
// as opposed to inheriting the clock of the base instant.
var clockWordRe = regexp.MustCompile(`(?i)\d{1,2}\s*(?:am|pm|a\.m\.|p\.m\.)|\d{1,2}:\d{2}|\bnoon\b|\bmidnight\b`)

// fuzzyMatch is one phrase found by the general-purpose parser.
type fuzzyMatch struct {
	at       time.Time
	hasClock bool
}

func (p *Parser) parseFuzzy(msg string, now time.Time) (fuzzyMatch, bool) {
	if strings.TrimSpace(msg) == "" {
		return fuzzyMatch{}, false
	}
	base := now.In(p.loc)
	r, err := p.fuzzy.Parse(msg, base)
	if err != nil || r == nil {
		return fuzzyMatch{}, false
	}
	return fuzzyMatch{
		at:       r.Time.In(p.loc),
		hasClock: clockWordRe.MatchString(r.Text),
	}, true
}

var meridiemClockRe = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)

// explicitClock reads the first "H[:MM] am|pm" token itself, so "12am" is
// midnight regardless of how the fuzzy parser resolves it.
func explicitClock(msg string) (civil.Time, bool) {
	m := meridiemClockRe.FindStringSubmatch(strings.ToLower(msg))
	if m == nil {
		return civil.Time{}, false
	}
	h, _ := strconv.Atoi(m[1])
	mins := atoiOr(m[2], 0)
	if !validClock(h, mins, m[3]) {
		return civil.Time{}, false
	}
	return civil.Time{Hour: to24h(h, m[3]), Minute: mins}, true
}

// ExtractClock finds a single time of day in free text: an explicit am/pm
// token first, then whatever the fuzzy parser can read.
func (p *Parser) ExtractClock(msg string, now time.Time) (civil.Time, bool) {
	if c, ok := explicitClock(msg); ok {
		return c, true
	}
	m, ok := p.parseFuzzy(msg, now)
	if !ok || !m.hasClock {
		return civil.Time{}, false
	}
	return clockOf(m.at), true
}

func clockOf(t time.Time) civil.Time {
	return civil.Time{Hour: t.Hour(), Minute: t.Minute()}
}
