package embedding

import "context"

// Embedder generates embeddings for queries and for chunk batches.
// BatchEmbedding preserves input order: vector i belongs to chunks[i].
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}
