package temporal

import "strings"

var titleKeywords = []struct {
	keyword string
	title   string
}{
	{"meeting", "Meeting"},
	{"call", "Call"},
	{"appointment", "Appointment"},
}

// ExtractTitle spots the first known event keyword in the message.
func ExtractTitle(msg string) (string, bool) {
	lower := strings.ToLower(msg)
	for _, kw := range titleKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.title, true
		}
	}
	return "", false
}
