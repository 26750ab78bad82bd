package models

import "time"

// Phase is the decision point a conversation is waiting on.
type Phase string

const (
	AwaitingSlots                 Phase = "awaiting_slots"
	AwaitingOverwriteConfirmation Phase = "awaiting_overwrite_confirmation"
)

// PendingOverwrite is held while the user decides whether a conflicting
// event should be deleted and replaced by the proposed booking.
type PendingOverwrite struct {
	ConflictingEventID string    `json:"conflictingEventId"`
	ConflictSummary    string    `json:"conflictSummary,omitempty"`
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
}

// Conversation is the per-user dialogue state. The zero value is a fresh
// conversation awaiting slots.
type Conversation struct {
	Slots   Slots             `json:"slots"`
	Pending *PendingOverwrite `json:"pendingOverwrite,omitempty"`
}

// Phase derives the current decision point from the pending sub-state.
func (c Conversation) Phase() Phase {
	if c.Pending != nil {
		return AwaitingOverwriteConfirmation
	}
	return AwaitingSlots
}

// IsEmpty reports whether the conversation carries no progress at all.
func (c Conversation) IsEmpty() bool {
	return c.Pending == nil && c.Slots.IsEmpty()
}
