package evaluation

import (
	"context"
	"time"

	"github.com/svalluru/MeetingsAPI/internal/apperr"
	"github.com/svalluru/MeetingsAPI/internal/data/evalStore"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/internal/evalscorer"
	"github.com/svalluru/MeetingsAPI/internal/metrics"
	"github.com/svalluru/MeetingsAPI/internal/rag"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 100

// Service runs a query end to end, scores the answer against its own
// retrieved context, and keeps the history.
type Service struct {
	ragSvc rag.Service
	scorer evalscorer.Client
	store  evalStore.Store
	logger *logger_i.Logger
}

func NewService(ragSvc rag.Service, scorer evalscorer.Client, store evalStore.Store) *Service {
	return &Service{
		ragSvc: ragSvc,
		scorer: scorer,
		store:  store,
		logger: logger_i.NewLogger("Evaluation"),
	}
}

// Evaluate answers the question, then measures faithfulness and answer
// relevancy. A scorer outage degrades the scores to null rather than
// failing the evaluation.
func (s *Service) Evaluate(ctx context.Context, question, meetingID string) (meetingModel.EvalResult, error) {
	started := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("evaluation", time.Since(started)) }()

	var filter []string
	if meetingID != "" {
		filter = []string{meetingID}
	}

	answer, err := s.ragSvc.ProcessQuery(ctx, question, filter)
	if err != nil {
		return meetingModel.EvalResult{}, apperr.Evaluation(err, meetingID)
	}

	var faithfulness, relevancy *float64
	scores, err := s.scorer.Score(ctx, question, answer.Answer, answer.RetrievedContext)
	if err != nil {
		s.logger.Warn("scoring failed, keeping null scores", "error", err)
	} else {
		faithfulness = scores.Faithfulness
		relevancy = scores.AnswerRelevancy
	}

	resultMeetingID := meetingID
	if resultMeetingID == "" && len(answer.MeetingIDs) > 0 {
		resultMeetingID = answer.MeetingIDs[0]
	}

	result := meetingModel.EvalResult{
		EvalID:           uuid.New().String(),
		MeetingID:        resultMeetingID,
		Question:         question,
		Answer:           answer.Answer,
		RetrievedContext: answer.RetrievedContext,
		Faithfulness:     faithfulness,
		AnswerRelevancy:  relevancy,
		OverallScore:     overallScore(faithfulness, relevancy),
		EvaluatedAt:      time.Now().UTC().Format(time.RFC3339),
		LatencyMs:        float64(time.Since(started).Milliseconds()),
	}

	if err := s.store.SaveResult(ctx, result); err != nil {
		return meetingModel.EvalResult{}, apperr.Evaluation(err, resultMeetingID)
	}

	s.logger.Info("evaluation complete", "evalID", result.EvalID,
		"overall", result.OverallScore, "latencyMs", result.LatencyMs)
	return result, nil
}

// ListHistory returns past evaluation results, newest first.
func (s *Service) ListHistory(ctx context.Context, meetingID string, limit int) ([]meetingModel.EvalResult, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.ListResults(ctx, meetingID, limit)
}

// overallScore is the mean of the metrics that produced a value.
func overallScore(scores ...*float64) *float64 {
	var sum float64
	var n int
	for _, score := range scores {
		if score != nil {
			sum += *score
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}
