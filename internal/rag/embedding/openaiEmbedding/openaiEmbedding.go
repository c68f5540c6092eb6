package openaiEmbedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/svalluru/MeetingsAPI/internal/rag/embedding"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

type client struct {
	openai openai.Client
	model  string
	logger *logger_i.Logger
}

func NewOpenAIEmbedder(apikey string, modelName string) (embedding.Embedder, error) {
	if apikey == "" {
		return nil, fmt.Errorf("openai embedding client: missing api key")
	}
	return &client{
		openai: openai.NewClient(option.WithAPIKey(apikey)),
		model:  modelName,
		logger: logger_i.NewLogger("openai_embedding"),
	}, nil
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	return c.embed(ctx, chunks)
}

func (c *client) embed(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value("traceId"))

	res, err := c.openai.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		log.Error("Error getting embeddings from OpenAI", "error", err.Error())
		return nil, err
	}
	if len(res.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(res.Data), len(texts))
	}

	// the API does not guarantee response order, each datum carries the
	// index of the input it belongs to
	vectors := make([][]float32, len(res.Data))
	for _, d := range res.Data {
		if d.Index < 0 || int(d.Index) >= len(vectors) {
			return nil, fmt.Errorf("openai returned embedding index %d for %d inputs", d.Index, len(texts))
		}
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}
