package rag_test

import (
	"context"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

// MockVectorStore implements vectorDB.Store
type MockVectorStore struct {
	// Control fields to simulate different behaviors
	OnSearch          func(ctx context.Context, embedding []float32, topK int, meetingIDs []string) ([]meetingModel.VectorRecord, error)
	OnStoreVectors    func(ctx context.Context, records []meetingModel.VectorRecord) error
	OnDeleteByMeeting func(ctx context.Context, meetingID string) error
}

func (m *MockVectorStore) EnsureReady(ctx context.Context) error {
	return nil
}

func (m *MockVectorStore) StoreVectors(ctx context.Context, records []meetingModel.VectorRecord) error {
	if m.OnStoreVectors != nil {
		return m.OnStoreVectors(ctx, records)
	}
	return nil
}

func (m *MockVectorStore) Search(ctx context.Context, embedding []float32, topK int, meetingIDs []string) ([]meetingModel.VectorRecord, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, embedding, topK, meetingIDs)
	}
	return nil, nil
}

func (m *MockVectorStore) DeleteByMeeting(ctx context.Context, meetingID string) error {
	if m.OnDeleteByMeeting != nil {
		return m.OnDeleteByMeeting(ctx, meetingID)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1, 0.2}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	out := make([][]float32, len(chunks))
	for i := range out {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

// MockLLM scripts responses per prompt so one provider can serve both
// the answer generation and the guardrail verdicts.
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mock answer", nil
}
