package gemini

import (
	"context"
	"fmt"

	"github.com/svalluru/MeetingsAPI/internal/rag/llm"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

func NewGeminiClient(ctx context.Context, modelName string, apikey string) (llm.Provider, error) {
	logger := logger_i.NewLogger("llm_gemini")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName, logger: logger}, nil
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := c.logger.With("traceId", ctx.Value("traceId"))

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}
