package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/svalluru/MeetingsAPI/internal/data/evalStore"
	"github.com/svalluru/MeetingsAPI/internal/domain/jobModel"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/internal/evalscorer"
)

type mockRag struct {
	OnProcessQuery func(ctx context.Context, question string, meetingIDs []string) (meetingModel.CitedAnswer, error)
}

func (m *mockRag) IngestMeeting(ctx context.Context, job jobModel.Job) jobModel.Job {
	return job
}

func (m *mockRag) ProcessQuery(ctx context.Context, question string, meetingIDs []string) (meetingModel.CitedAnswer, error) {
	if m.OnProcessQuery != nil {
		return m.OnProcessQuery(ctx, question, meetingIDs)
	}
	return meetingModel.CitedAnswer{
		Answer:           "the launch moved to friday",
		RetrievedContext: []string{"[00:00:20] Alice: move the launch to friday"},
		MeetingIDs:       []string{"m1"},
	}, nil
}

type mockScorer struct {
	OnScore func(ctx context.Context, question, answer string, contexts []string) (evalscorer.Scores, error)
}

func (m *mockScorer) Score(ctx context.Context, question, answer string, contexts []string) (evalscorer.Scores, error) {
	if m.OnScore != nil {
		return m.OnScore(ctx, question, answer, contexts)
	}
	f, r := 0.8, 0.6
	return evalscorer.Scores{Faithfulness: &f, AnswerRelevancy: &r}, nil
}

func TestEvaluate_ComputesOverall(t *testing.T) {
	store := evalStore.NewMemoryEvalStore()
	svc := NewService(&mockRag{}, &mockScorer{}, store)

	result, err := svc.Evaluate(context.Background(), "when is the launch?", "m1")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if result.EvalID == "" {
		t.Error("EvalID not assigned")
	}
	if result.OverallScore == nil || *result.OverallScore != 0.7 {
		t.Errorf("Wrong overall score: %v", result.OverallScore)
	}
	if result.MeetingID != "m1" {
		t.Errorf("Wrong meeting id: %s", result.MeetingID)
	}
	if result.EvaluatedAt == "" {
		t.Error("EvaluatedAt not stamped")
	}

	saved, _ := store.ListResults(context.Background(), "m1", 10)
	if len(saved) != 1 || saved[0].EvalID != result.EvalID {
		t.Errorf("Result not persisted: %+v", saved)
	}
}

func TestEvaluate_ScorerOutageKeepsNullScores(t *testing.T) {
	store := evalStore.NewMemoryEvalStore()
	svc := NewService(&mockRag{}, &mockScorer{
		OnScore: func(ctx context.Context, q, a string, c []string) (evalscorer.Scores, error) {
			return evalscorer.Scores{}, errors.New("scorer down")
		},
	}, store)

	result, err := svc.Evaluate(context.Background(), "question", "m1")
	if err != nil {
		t.Fatalf("Evaluate should not fail on scorer outage: %v", err)
	}
	if result.Faithfulness != nil || result.AnswerRelevancy != nil || result.OverallScore != nil {
		t.Errorf("Expected null scores: %+v", result)
	}
}

func TestEvaluate_PartialScore(t *testing.T) {
	f := 0.9
	svc := NewService(&mockRag{}, &mockScorer{
		OnScore: func(ctx context.Context, q, a string, c []string) (evalscorer.Scores, error) {
			return evalscorer.Scores{Faithfulness: &f}, nil
		},
	}, evalStore.NewMemoryEvalStore())

	result, err := svc.Evaluate(context.Background(), "question", "m1")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if result.OverallScore == nil || *result.OverallScore != 0.9 {
		t.Errorf("Overall should be the single available metric: %v", result.OverallScore)
	}
	if result.AnswerRelevancy != nil {
		t.Error("Missing metric should stay null")
	}
}

func TestEvaluate_MeetingIDFromAnswer(t *testing.T) {
	svc := NewService(&mockRag{}, &mockScorer{}, evalStore.NewMemoryEvalStore())

	result, err := svc.Evaluate(context.Background(), "question", "")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if result.MeetingID != "m1" {
		t.Errorf("Expected meeting id from the answer, got %q", result.MeetingID)
	}
}

func TestEvaluate_QueryFailure(t *testing.T) {
	svc := NewService(&mockRag{
		OnProcessQuery: func(ctx context.Context, q string, ids []string) (meetingModel.CitedAnswer, error) {
			return meetingModel.CitedAnswer{}, errors.New("vector store down")
		},
	}, &mockScorer{}, evalStore.NewMemoryEvalStore())

	if _, err := svc.Evaluate(context.Background(), "question", "m1"); err == nil {
		t.Error("Expected query failure to surface")
	}
}

func TestListHistory_DefaultLimit(t *testing.T) {
	store := evalStore.NewMemoryEvalStore()
	svc := NewService(&mockRag{}, &mockScorer{}, store)

	for i := 0; i < 3; i++ {
		if _, err := svc.Evaluate(context.Background(), "question", "m1"); err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
	}

	history, err := svc.ListHistory(context.Background(), "m1", 0)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("Expected 3 results, got %d", len(history))
	}
}
