package dialogue

import "slotbook/models"

const (
	usageTip = " (Tip: You can use natural language, e.g. 'tomorrow 8-9am meeting')"

	replyStartOver  = "Let's start over. What would you like to book?"
	replyDeclined   = "Okay, your previous event is unchanged. Let me know if you want to book a different slot."
	replyStoreError = "Sorry, I couldn't load our conversation: %v. Please try again."
)

var slotPrompts = map[models.SlotName]string{
	models.SlotDate:     "What date would you like to book?",
	models.SlotTime:     "What time do you prefer?",
	models.SlotDuration: "How long should the appointment be?",
	models.SlotTitle:    "What is the appointment for? (e.g., meeting, call)",
}

// PromptFor is the question asked when name is the first missing slot.
func PromptFor(name models.SlotName) string {
	return slotPrompts[name] + usageTip
}
