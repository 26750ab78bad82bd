package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"slotbook/models"
)

func buildSlotPrompt(message string, now time.Time) string {
	return "Extract the following booking details from this message as JSON: " +
		"date (YYYY-MM-DD), time (HH:MM or range), duration (e.g. one hour, thirty minutes), and title (meeting/call/appointment). " +
		"If a detail is missing, set its value to null. " +
		"Always use written numbers (e.g., 'one hour' not '1 hour'). " +
		fmt.Sprintf("Today is %s (%s). ", now.Format("2006-01-02"), now.Format("Monday")) +
		fmt.Sprintf("Message: %s\n", message) +
		"Respond ONLY with a single JSON object, with no extra text."
}

// parseSlotJSON reads the first {...} object out of a model reply, tolerating
// code fences and chatter around it. Null and missing keys mean no guess;
// non-string values are rendered with their JSON text.
func parseSlotJSON(text string) (models.SlotGuess, error) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, "```") {
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
	}
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first < 0 || last <= first {
		return models.SlotGuess{}, ErrNoSlots
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(text[first:last+1]), &raw); err != nil {
		return models.SlotGuess{}, fmt.Errorf("%w: %v", ErrNoSlots, err)
	}

	return models.SlotGuess{
		Date:     stringValue(raw["date"]),
		Time:     stringValue(raw["time"]),
		Duration: stringValue(raw["duration"]),
		Title:    stringValue(raw["title"]),
	}, nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if strings.EqualFold(strings.TrimSpace(val), "null") {
			return ""
		}
		return strings.TrimSpace(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
