// File: services/intelligence/extractor.go
package ai

import (
	"context"
	"errors"
	"fmt"

	"slotbook/models"
)

var (
	// ErrExtractorDisabled is returned when no NL provider is configured.
	ErrExtractorDisabled = errors.New("slot extractor disabled")
	// ErrExtractorUnavailable is returned when a configured provider could not be built.
	ErrExtractorUnavailable = errors.New("slot extractor unavailable")
	// ErrNoSlots is returned when the model answered but no JSON object could be read.
	ErrNoSlots = errors.New("no slots in model output")
)

// SlotExtractor is the best-effort natural-language capability. Callers must
// bound ctx; a failure is an expected outcome, never fatal to a turn.
type SlotExtractor interface {
	ExtractSlots(ctx context.Context, message string) (models.SlotGuess, error)
}

// NoopExtractor is used when EXTRACTOR_PROVIDER=none.
type NoopExtractor struct{}

func (NoopExtractor) ExtractSlots(context.Context, string) (models.SlotGuess, error) {
	return models.SlotGuess{}, ErrExtractorDisabled
}

// UnavailableExtractor stands in for a provider that was configured but failed
// to start. Unlike NoopExtractor its error puts turns in degraded mode.
type UnavailableExtractor struct {
	Provider string
	Cause    error
}

func (u UnavailableExtractor) ExtractSlots(context.Context, string) (models.SlotGuess, error) {
	return models.SlotGuess{}, u.Err()
}

// Err wraps ErrExtractorUnavailable only, never the cause's chain.
func (u UnavailableExtractor) Err() error {
	return fmt.Errorf("%s: %w: %v", u.Provider, ErrExtractorUnavailable, u.Cause)
}
