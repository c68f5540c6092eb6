package evalStore

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/svalluru/MeetingsAPI/internal/data/redisStore"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

const (
	allResultsKey    = "evaluations:all"
	meetingKeyPrefix = "evaluations:meeting:"
)

type redisEvalStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// NewRedisEvalStore persists evaluation results as JSON entries on
// Redis lists, one global list plus one list per meeting.
func NewRedisEvalStore(store *redisStore.Store) Store {
	return &redisEvalStore{
		store:  store,
		logger: logger_i.NewLogger("EvalStore"),
	}
}

func (s *redisEvalStore) SaveResult(ctx context.Context, result meetingModel.EvalResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return goerr.Wrap(err, "failed to encode eval result", goerr.V("evalID", result.EvalID))
	}

	if err := s.store.ListPush(ctx, allResultsKey, payload); err != nil {
		return goerr.Wrap(err, "failed to persist eval result", goerr.V("evalID", result.EvalID))
	}
	if result.MeetingID != "" {
		if err := s.store.ListPush(ctx, meetingKeyPrefix+result.MeetingID, payload); err != nil {
			return goerr.Wrap(err, "failed to persist eval result for meeting", goerr.V("meetingID", result.MeetingID))
		}
	}
	return nil
}

func (s *redisEvalStore) ListResults(ctx context.Context, meetingID string, limit int) ([]meetingModel.EvalResult, error) {
	key := allResultsKey
	if meetingID != "" {
		key = meetingKeyPrefix + meetingID
	}

	entries, err := s.store.ListGetRecent(ctx, key, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load eval history", goerr.V("key", key))
	}

	results := make([]meetingModel.EvalResult, 0, len(entries))
	// Entries come back in push order, walk them backwards so the
	// newest result lands first.
	for i := len(entries) - 1; i >= 0; i-- {
		var result meetingModel.EvalResult
		if err := json.Unmarshal([]byte(entries[i]), &result); err != nil {
			s.logger.Warn("Skipping undecodable eval entry", "key", key, "error:", err)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}
