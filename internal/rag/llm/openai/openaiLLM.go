package openai

import (
	"context"
	"errors"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/svalluru/MeetingsAPI/internal/rag/llm"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

type llmClient struct {
	openai    openaisdk.Client
	modelName string
	logger    *logger_i.Logger
}

func NewOpenAIClient(apikey string, modelName string) (llm.Provider, error) {
	if apikey == "" {
		return nil, fmt.Errorf("openai llm client: missing api key")
	}
	return &llmClient{
		openai:    openaisdk.NewClient(option.WithAPIKey(apikey)),
		modelName: modelName,
		logger:    logger_i.NewLogger("llm_openai"),
	}, nil
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := c.logger.With("traceId", ctx.Value("traceId"))

	completion, err := c.openai.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Model: openaisdk.ChatModel(c.modelName),
	})
	if err != nil {
		log.Error("OpenAI generation failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
