package evalStore

import (
	"context"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

// Store is the evaluation history port. ListResults returns the most
// recent results first, scoped to one meeting when meetingID is set.
type Store interface {
	SaveResult(ctx context.Context, result meetingModel.EvalResult) error
	ListResults(ctx context.Context, meetingID string, limit int) ([]meetingModel.EvalResult, error)
}
