// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"slotbook/models"
)

// GeminiExtractor asks a Gemini model for the booking slots in a message.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	now    func() time.Time
	logger *zap.Logger
}

func NewGeminiExtractor(ctx context.Context, apiKey, modelName string, loc *time.Location, logger *zap.Logger) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w: GOOGLE_GEMINI_API_KEY not set", ErrExtractorDisabled)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	return &GeminiExtractor{
		client: client,
		model:  model,
		now:    func() time.Time { return time.Now().In(loc) },
		logger: logger,
	}, nil
}

func (g *GeminiExtractor) ExtractSlots(ctx context.Context, message string) (models.SlotGuess, error) {
	text, err := g.generateContent(ctx, buildSlotPrompt(message, g.now()))
	if err != nil {
		return models.SlotGuess{}, err
	}
	g.logger.Debug("gemini output", zap.String("text", text))
	return parseSlotJSON(text)
}

func (g *GeminiExtractor) generateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: %w: empty candidate list", ErrNoSlots)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiExtractor) Close() error {
	return g.client.Close()
}
