package rag

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/svalluru/MeetingsAPI/internal/data/artifactStore"
	"github.com/svalluru/MeetingsAPI/internal/domain/jobModel"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/internal/metrics"
)

const citationSnippetLength = 200

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeInputGuardrailStep(ctx context.Context, question string) bool {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("input_guardrail", time.Since(start)) }()

	return s.guardrails.ValidateInput(ctx, question)
}

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, question)
}

func (s *service) executeVectorSearchStep(ctx context.Context, emb []float32, meetingIDs []string) ([]meetingModel.VectorRecord, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Search(ctx, emb, s.topK, meetingIDs)
}

func (s *service) executeLLMStep(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, prompt)
}

func (s *service) executeGroundingStep(ctx context.Context, answer string, contexts []string) (bool, string) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("grounding_guardrail", time.Since(start)) }()

	return s.guardrails.VerifyGrounding(ctx, answer, contexts)
}

// loadChunkMaps indexes every hit meeting's chunk_map.json by chunk id.
// Missing or corrupt maps degrade citations but never block the answer.
func (s *service) loadChunkMaps(ctx context.Context, meetingIDs []string) map[string]meetingModel.ChunkMapEntry {
	index := make(map[string]meetingModel.ChunkMapEntry)
	for _, mid := range meetingIDs {
		raw, err := s.artifacts.DownloadDerived(ctx, mid, artifactStore.ChunkMapArtifact)
		if err != nil {
			s.logger.Warn("chunk map load failed", "meetingID", mid, "error", err)
			continue
		}

		var entries []meetingModel.ChunkMapEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			s.logger.Warn("chunk map decode failed", "meetingID", mid, "error", err)
			continue
		}
		for _, entry := range entries {
			index[entry.ChunkID] = entry
		}
	}
	return index
}

// buildCitations maps vector results back to chunk-map metadata. A chunk
// missing from the index still gets cited from the record itself, just
// without time ranges.
func buildCitations(results []meetingModel.VectorRecord, index map[string]meetingModel.ChunkMapEntry) []meetingModel.Citation {
	citations := make([]meetingModel.Citation, 0, len(results))
	for _, r := range results {
		if entry, ok := index[r.ChunkID]; ok {
			citations = append(citations, meetingModel.Citation{
				ChunkID:        r.ChunkID,
				MeetingID:      r.MeetingID,
				Speaker:        entry.Speaker,
				TimestampStart: entry.TimestampStart,
				TimestampEnd:   entry.TimestampEnd,
				Snippet:        entry.Snippet,
			})
			continue
		}

		speaker := r.Metadata["speaker"]
		if speaker == "" {
			speaker = "Unknown"
		}
		snippet := r.Text
		if len(snippet) > citationSnippetLength {
			cut := citationSnippetLength
			for cut > 0 && !utf8.RuneStart(snippet[cut]) {
				cut--
			}
			snippet = snippet[:cut]
		}
		citations = append(citations, meetingModel.Citation{
			ChunkID:   r.ChunkID,
			MeetingID: r.MeetingID,
			Speaker:   speaker,
			Snippet:   snippet,
		})
	}
	return citations
}
