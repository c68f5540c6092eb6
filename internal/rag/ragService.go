package rag

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/svalluru/MeetingsAPI/internal/apperr"
	"github.com/svalluru/MeetingsAPI/internal/config"
	"github.com/svalluru/MeetingsAPI/internal/data/artifactStore"
	"github.com/svalluru/MeetingsAPI/internal/domain/jobModel"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/internal/metrics"
	"github.com/svalluru/MeetingsAPI/internal/rag/embedding"
	"github.com/svalluru/MeetingsAPI/internal/rag/guardrail"
	"github.com/svalluru/MeetingsAPI/internal/rag/ingest"
	"github.com/svalluru/MeetingsAPI/internal/rag/llm"
	"github.com/svalluru/MeetingsAPI/internal/rag/vectorDB"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - This is the PUBLIC contract.
  - It defines the "behavior" (what the worker and handlers can do).
  - We expose this to keep callers decoupled from our specific logic.

2. service (Private Struct):
  - This is the PRIVATE implementation.
  - It holds the "state" (store clients and LLM providers).
  - It is lowercase to prevent external packages from accessing our
    internal dependencies (vectorDB, llmProvider) directly.

3. Pointer Receiver (*service):
  - By defining methods on (*service), the struct IMPLICITLY satisfies
    the Service interface.
  - if it quacks like a duck, -it's a duck (Duck Typing)

4. Dependency Injection (NewService):
  - This constructor links the private struct to the public interface.
  - It allows us to swap real DBs for mocks during testing without
    changing the worker's code.
*/

const groundedQAPrompt = "You are a meeting intelligence assistant. Answer the user's question " +
	"using ONLY the context passages below. If the answer is not in the " +
	"context, say so explicitly.\n\n" +
	"CONTEXT:\n%s\n\n" +
	"QUESTION: %s\n\n" +
	"Answer:"

const refusalAnswer = "I'm sorry, but I cannot process that query for safety or professional reasons."

const noHitsAnswer = "I couldn't find any relevant sections in the transcripts to answer your question."

// Service is all the worker and handlers see of the RAG internals.
type Service interface {
	IngestMeeting(ctx context.Context, job jobModel.Job) jobModel.Job
	ProcessQuery(ctx context.Context, question string, meetingIDs []string) (meetingModel.CitedAnswer, error)
}

type service struct {
	pipeline    *ingest.Pipeline
	vectorDB    vectorDB.Store
	llmProvider llm.Provider
	embedder    embedding.Embedder
	guardrails  *guardrail.Service
	artifacts   artifactStore.Store
	topK        int
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(pipeline *ingest.Pipeline, vector vectorDB.Store, llmProvider llm.Provider, em embedding.Embedder, guardrails *guardrail.Service, artifacts artifactStore.Store, topK int) Service {
	return &service{
		pipeline:    pipeline,
		vectorDB:    vector,
		llmProvider: llmProvider,
		embedder:    em,
		guardrails:  guardrails,
		artifacts:   artifacts,
		topK:        topK,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) ProcessQuery(ctx context.Context, question string, meetingIDs []string) (meetingModel.CitedAnswer, error) {
	started := time.Now()
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if strings.TrimSpace(question) == "" {
		return meetingModel.CitedAnswer{}, goerr.Wrap(apperr.ErrValidation, "question cannot be empty")
	}

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	inMethodLogger.Info("query started", "question_len", len(question), "meeting_filter", meetingIDs)

	// Input safety check
	if !s.executeInputGuardrailStep(processContext, question) {
		return meetingModel.CitedAnswer{
			Answer:           refusalAnswer,
			Citations:        []meetingModel.Citation{},
			RetrievedContext: []string{},
			MeetingIDs:       []string{},
			LatencyMs:        elapsedMs(started),
		}, nil
	}

	// Embedding
	queryEmbedding, err := s.executeEmbeddingStep(processContext, question)
	if err != nil {
		return meetingModel.CitedAnswer{}, apperr.Query(err, question)
	}

	// Vector search
	results, err := s.executeVectorSearchStep(processContext, queryEmbedding, meetingIDs)
	if err != nil {
		return meetingModel.CitedAnswer{}, apperr.Query(err, question)
	}

	if len(results) == 0 {
		return meetingModel.CitedAnswer{
			Answer:           noHitsAnswer,
			Citations:        []meetingModel.Citation{},
			RetrievedContext: []string{},
			MeetingIDs:       []string{},
			LatencyMs:        elapsedMs(started),
		}, nil
	}

	hitMeetingIDs := uniqueMeetingIDs(results)
	chunkMapIndex := s.loadChunkMaps(processContext, hitMeetingIDs)

	contextTexts := make([]string, len(results))
	for i, r := range results {
		contextTexts[i] = r.Text
	}
	contextBlock := strings.Join(contextTexts, "\n---\n")

	// LLM generation
	answerText, err := s.executeLLMStep(processContext, fmt.Sprintf(groundedQAPrompt, contextBlock, question))
	if err != nil {
		return meetingModel.CitedAnswer{}, apperr.Query(err, question)
	}

	// Grounding verification
	grounded, safeAnswer := s.executeGroundingStep(processContext, answerText, contextTexts)
	if !grounded {
		inMethodLogger.Warn("grounding override", "original_len", len(answerText))
		answerText = safeAnswer
	}

	citations := buildCitations(results, chunkMapIndex)

	latency := elapsedMs(started)
	inMethodLogger.Info("query completed",
		"chunks_retrieved", len(results), "citations", len(citations), "latency_ms", latency)

	return meetingModel.CitedAnswer{
		Answer:           answerText,
		Citations:        citations,
		RetrievedContext: contextTexts,
		MeetingIDs:       hitMeetingIDs,
		LatencyMs:        latency,
	}, nil
}

func (s *service) IngestMeeting(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("meeting_ingestion", time.Since(start)) }()

	payload := job.JobPayload
	if payload.TempPath != "" {
		defer func() {
			if err := os.Remove(payload.TempPath); err != nil && !os.IsNotExist(err) {
				s.logger.Error("Error removing temp upload", "path", payload.TempPath, "error", err)
			}
		}()
	}

	report, err := s.pipeline.Run(ctx, payload.MeetingID, payload.Filename, payload.TempPath,
		func(step jobModel.InternalStatus) { job.CurrentStep = step })
	job.JobPayload.Report = &report
	job.JobPayload.TempPath = ""
	if err != nil {
		return s.jobError(job, err, "INGESTION_FAILURE", true)
	}

	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	return job
}

func uniqueMeetingIDs(results []meetingModel.VectorRecord) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range results {
		if _, ok := seen[r.MeetingID]; ok {
			continue
		}
		seen[r.MeetingID] = struct{}{}
		ids = append(ids, r.MeetingID)
	}
	sort.Strings(ids)
	return ids
}

func elapsedMs(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000.0
}
