package memoryDB

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/internal/rag/vectorDB"
)

// Store is a brute-force cosine index for local runs and tests.
type Store struct {
	mu      sync.RWMutex
	records map[string]meetingModel.VectorRecord
}

func NewMemoryStore() *Store {
	return &Store{records: make(map[string]meetingModel.VectorRecord)}
}

var _ vectorDB.Store = (*Store)(nil)

func (s *Store) EnsureReady(ctx context.Context) error {
	return nil
}

func (s *Store) StoreVectors(ctx context.Context, records []meetingModel.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.records[rec.ChunkID] = rec
	}
	return nil
}

func (s *Store) Search(ctx context.Context, embedding []float32, topK int, meetingIDs []string) ([]meetingModel.VectorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := make(map[string]struct{}, len(meetingIDs))
	for _, id := range meetingIDs {
		filter[id] = struct{}{}
	}

	var scored []meetingModel.VectorRecord
	for _, rec := range s.records {
		if len(filter) > 0 {
			if _, ok := filter[rec.MeetingID]; !ok {
				continue
			}
		}
		copyRec := rec
		copyRec.Embedding = nil //search results never expose embeddings
		copyRec.Score = cosineSimilarity(embedding, rec.Embedding)
		scored = append(scored, copyRec)
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (s *Store) DeleteByMeeting(ctx context.Context, meetingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range s.records {
		if rec.MeetingID == meetingID {
			delete(s.records, id)
		}
	}
	return nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
