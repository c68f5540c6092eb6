package evalStore

import (
	"context"
	"sync"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

type memoryEvalStore struct {
	mu      sync.RWMutex
	results []meetingModel.EvalResult
}

// NewMemoryEvalStore keeps evaluation history in process memory.
func NewMemoryEvalStore() Store {
	return &memoryEvalStore{}
}

func (s *memoryEvalStore) SaveResult(ctx context.Context, result meetingModel.EvalResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *memoryEvalStore) ListResults(ctx context.Context, meetingID string, limit int) ([]meetingModel.EvalResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []meetingModel.EvalResult
	for i := len(s.results) - 1; i >= 0; i-- {
		if meetingID != "" && s.results[i].MeetingID != meetingID {
			continue
		}
		matched = append(matched, s.results[i])
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}
