package vectorDB

import (
	"context"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

// Store is the vector index port. Search results are ordered by
// descending similarity and never carry embeddings back to callers.
type Store interface {
	EnsureReady(ctx context.Context) error
	StoreVectors(ctx context.Context, records []meetingModel.VectorRecord) error
	Search(ctx context.Context, embedding []float32, topK int, meetingIDs []string) ([]meetingModel.VectorRecord, error)
	DeleteByMeeting(ctx context.Context, meetingID string) error
}
