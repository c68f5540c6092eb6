package googleEmbedding

import (
	"context"
	"fmt"
	"time"

	"github.com/svalluru/MeetingsAPI/internal/rag/embedding"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	logger    *logger_i.Logger
}

func NewGoogleEmbedder(ctx context.Context, modelName string, apikey string, dimension int32) (embedding.Embedder, error) {
	logger := logger_i.NewLogger("google_embedding")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client", "error", err)
		return nil, fmt.Errorf("google embedding client: %w", err)
	}

	logger.Info("Google Embedding client created", "model", modelName)
	return &client{
		genAi:     c,
		model:     modelName,
		dimension: dimension,
		logger:    logger,
	}, nil
}

// GetEmbedding embeds a single user question with the query task type.
func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := c.logger.With("traceId", ctx.Value("traceId"))

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(query),
		&genai.EmbedContentConfig{OutputDimensionality: &c.dimension, TaskType: "RETRIEVAL_QUERY"})
	if err != nil {
		log.Error("Error getting query embedding from Google", "error", err.Error())
		return nil, err
	}
	return result.Embeddings[0].Values, nil
}

// BatchEmbedding embeds chunk texts with the document task type. A rate
// limit response gets one retry after a short backoff.
func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value("traceId"))

	res, err := c.doCall(ctx, getContent(chunks))
	if err != nil || res == nil {
		if doRetry(err, log) {
			log.Debug("Retrying in 5 seconds")
			time.Sleep(5 * time.Second)

			res, err = c.doCall(ctx, getContent(chunks))
		}
		if err != nil || res == nil {
			log.Error("Error getting batch embeddings from Google", "error", err)
			return nil, err
		}
	}

	var embeddingResults [][]float32
	for _, r := range res.Embeddings {
		embeddingResults = append(embeddingResults, r.Values)
	}
	return embeddingResults, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content,
		&genai.EmbedContentConfig{OutputDimensionality: &c.dimension, TaskType: "RETRIEVAL_DOCUMENT"})
}
