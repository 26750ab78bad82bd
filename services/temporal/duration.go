package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"slotbook/models"
)

type durationRule struct {
	re     *regexp.Regexp
	length func(m []string) time.Duration
}

func hoursOf(group int) func([]string) time.Duration {
	return func(m []string) time.Duration {
		return time.Duration(atoiOr(m[group], 0)) * time.Hour
	}
}

func minutesOf(group int) func([]string) time.Duration {
	return func(m []string) time.Duration {
		return time.Duration(atoiOr(m[group], 0)) * time.Minute
	}
}

func fixed(d time.Duration) func([]string) time.Duration {
	return func([]string) time.Duration { return d }
}

// durationRules are tried top to bottom; the first match wins. The compound
// rule comes first so "2 hours and 30 minutes" is not cut at "2 hours".
var durationRules = []durationRule{
	{regexp.MustCompile(`(\d+)\s*(?:hours?|hrs?|h)\s*(?:and\s*)?(\d+)\s*(?:minutes?|mins?|m)\b`), func(m []string) time.Duration {
		return hoursOf(1)(m) + minutesOf(2)(m)
	}},
	{regexp.MustCompile(`(\d+)\s*hours?`), hoursOf(1)},
	{regexp.MustCompile(`(\d+)\s*mins?`), minutesOf(1)},
	{regexp.MustCompile(`(\d+)\s*minutes?`), minutesOf(1)},
	{regexp.MustCompile(`(\d+)\s*h\b`), hoursOf(1)},
	{regexp.MustCompile(`half an hour`), fixed(30 * time.Minute)},
	{regexp.MustCompile(`quarter of an hour`), fixed(15 * time.Minute)},
	{regexp.MustCompile(`(\d+)\s*hr`), hoursOf(1)},
	{regexp.MustCompile(`(\d+)\s*m\b`), minutesOf(1)},
	{regexp.MustCompile(`(one|1)\s*hour`), fixed(time.Hour)},
	{regexp.MustCompile(`(two|2)\s*hours`), fixed(2 * time.Hour)},
	{regexp.MustCompile(`(three|3)\s*hours`), fixed(3 * time.Hour)},
	{regexp.MustCompile(`(thirty|30)\s*minutes?`), fixed(30 * time.Minute)},
	{regexp.MustCompile(`(fifteen|15)\s*minutes?`), fixed(15 * time.Minute)},
}

// ExtractDuration returns the first duration rule that matches the message.
// A zero-length match ("0 hours") counts as no duration.
func ExtractDuration(msg string) (models.Duration, bool) {
	lower := strings.ToLower(msg)
	for _, rule := range durationRules {
		m := rule.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		length := rule.length(m)
		if length <= 0 {
			return models.Duration{}, false
		}
		return models.NewDuration(length), true
	}
	return models.Duration{}, false
}

var compactDurationRe = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?$`)

// ParseDurationGuess normalizes an extractor's duration guess. Text that no
// rule understands is kept as a label with zero length rather than dropped.
func ParseDurationGuess(guess string) (models.Duration, bool) {
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return models.Duration{}, false
	}
	if m := compactDurationRe.FindStringSubmatch(strings.ToLower(guess)); m != nil && (m[1] != "" || m[2] != "") {
		length := time.Duration(atoiOr(m[1], 0))*time.Hour + time.Duration(atoiOr(m[2], 0))*time.Minute
		if length > 0 {
			return models.NewDuration(length), true
		}
	}
	if d, ok := ExtractDuration(guess); ok {
		return d, true
	}
	if n, err := strconv.Atoi(guess); err == nil && n > 0 {
		return models.NewDuration(time.Duration(n) * time.Minute), true
	}
	return models.Duration{Label: guess}, true
}
