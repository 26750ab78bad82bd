// Package dialogue runs the slot-filling conversation: it decides, one
// message at a time, whether to settle a pending overwrite, start over, ask
// for the next missing slot or hand the booking to the orchestrator.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/services/booking"
	ai "slotbook/services/intelligence"
	"slotbook/services/slots"
	"slotbook/services/temporal"
)

const defaultExtractTimeout = 10 * time.Second

// Machine owns every conversation in its Store. Turns for different users
// may run in parallel; turns for one user must be serialized by the caller.
type Machine struct {
	store          Store
	extractor      ai.SlotExtractor
	merger         *slots.Merger
	booker         *booking.Orchestrator
	logger         *zap.Logger
	now            func() time.Time
	extractTimeout time.Duration
}

type Option func(*Machine)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithExtractTimeout bounds each extractor call.
func WithExtractTimeout(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.extractTimeout = d
		}
	}
}

func NewMachine(
	store Store,
	extractor ai.SlotExtractor,
	parser *temporal.Parser,
	booker *booking.Orchestrator,
	logger *zap.Logger,
	opts ...Option,
) *Machine {
	if extractor == nil {
		extractor = ai.NoopExtractor{}
	}
	m := &Machine{
		store:          store,
		extractor:      extractor,
		merger:         slots.NewMerger(parser),
		booker:         booker,
		logger:         logger,
		now:            time.Now,
		extractTimeout: defaultExtractTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ProcessMessage handles one turn and returns the reply. Every failure is
// reported in the reply text; a failed booking always leaves the user with a
// fresh conversation.
func (m *Machine) ProcessMessage(ctx context.Context, userID, message string) string {
	logger := m.logger.With(zap.String("user_id", userID))

	conv, err := m.store.Get(ctx, userID)
	if err != nil {
		logger.Error("failed to load conversation", zap.Error(err))
		return fmt.Sprintf(replyStoreError, err)
	}
	lower := strings.ToLower(message)

	if conv.Phase() == models.AwaitingOverwriteConfirmation {
		pending := *conv.Pending
		m.reset(ctx, logger, userID)
		if !strings.Contains(lower, "yes") {
			logger.Debug("overwrite declined", zap.String("event_id", pending.ConflictingEventID))
			return replyDeclined
		}
		logger.Debug("overwrite confirmed", zap.String("event_id", pending.ConflictingEventID))
		return m.booker.Overwrite(ctx, userID, conv.Slots, pending).Reply
	}

	if strings.Contains(lower, "reset") {
		m.reset(ctx, logger, userID)
		return replyStartOver
	}

	guess, extractErr := m.extract(ctx, logger, message)
	merged := m.merger.Merge(conv.Slots, guess, extractErr, message, m.now())
	conv.Slots = merged.Slots

	notice := ""
	if merged.Degraded {
		notice = slots.DegradedNotice
	}

	if missing := conv.Slots.Missing(); len(missing) > 0 {
		if err := m.store.Put(ctx, userID, conv); err != nil {
			logger.Error("failed to save conversation", zap.Error(err))
			return fmt.Sprintf(replyStoreError, err)
		}
		logger.Debug("awaiting slot", zap.String("slot", string(missing[0])))
		return PromptFor(missing[0]) + notice
	}

	outcome := m.booker.Book(ctx, userID, conv.Slots)
	if outcome.Pending == nil {
		m.reset(ctx, logger, userID)
		return outcome.Reply + notice
	}

	conv.Pending = outcome.Pending
	if err := m.store.Put(ctx, userID, conv); err != nil {
		logger.Error("failed to save pending overwrite", zap.Error(err))
		m.reset(ctx, logger, userID)
		return fmt.Sprintf(replyStoreError, err)
	}
	return outcome.Reply + notice
}

// Reset drops whatever the user had in progress.
func (m *Machine) Reset(ctx context.Context, userID string) error {
	return m.store.Reset(ctx, userID)
}

func (m *Machine) reset(ctx context.Context, logger *zap.Logger, userID string) {
	if err := m.store.Reset(ctx, userID); err != nil {
		logger.Error("failed to reset conversation", zap.Error(err))
	}
}

func (m *Machine) extract(ctx context.Context, logger *zap.Logger, message string) (models.SlotGuess, error) {
	ctx, cancel := context.WithTimeout(ctx, m.extractTimeout)
	defer cancel()

	guess, err := m.extractor.ExtractSlots(ctx, message)
	if errors.Is(err, ai.ErrExtractorDisabled) || errors.Is(err, ai.ErrExtractorUnavailable) {
		return models.SlotGuess{}, err
	}
	if err != nil {
		logger.Warn("slot extraction failed, using classic extraction", zap.Error(err))
		return models.SlotGuess{}, err
	}
	logger.Debug("extractor output",
		zap.String("date", guess.Date),
		zap.String("time", guess.Time),
		zap.String("duration", guess.Duration),
		zap.String("title", guess.Title),
	)
	return guess, nil
}
