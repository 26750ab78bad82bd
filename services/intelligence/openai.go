package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"slotbook/models"
)

// OpenAIExtractor is the alternative slot extractor backed by chat completions.
type OpenAIExtractor struct {
	client openai.Client
	model  string
	now    func() time.Time
	logger *zap.Logger
}

func NewOpenAIExtractor(apiKey, model string, loc *time.Location, logger *zap.Logger) (*OpenAIExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w: OPENAI_API_KEY not set", ErrExtractorDisabled)
	}
	return &OpenAIExtractor{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		now:    func() time.Time { return time.Now().In(loc) },
		logger: logger,
	}, nil
}

func (o *OpenAIExtractor) ExtractSlots(ctx context.Context, message string) (models.SlotGuess, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildSlotPrompt(message, o.now())),
		},
	})
	if err != nil {
		return models.SlotGuess{}, fmt.Errorf("openai completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.SlotGuess{}, fmt.Errorf("openai: %w: no choices", ErrNoSlots)
	}
	text := resp.Choices[0].Message.Content
	o.logger.Debug("openai output", zap.String("text", text))
	return parseSlotJSON(text)
}
