package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	MeetingID string            `json:"meeting_id,omitempty" example:"mtg_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type IngestionResult struct {
	MeetingID        string   `json:"meeting_id"`
	Status           string   `json:"status" example:"READY"`
	ChunksCreated    int      `json:"chunks_created"`
	EmbeddingsStored int      `json:"embeddings_stored"`
	DerivedArtifacts []string `json:"derived_artifacts,omitempty"`
	DurationMs       float64  `json:"duration_ms"`
}

type Result struct {
	Status    string           `json:"status"`
	Ingestion *IngestionResult `json:"ingestion,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	MeetingID string `json:"meeting_id"`
	StatusURL string `json:"status_url"`
}

type CitationResponse struct {
	ChunkID        string `json:"chunk_id"`
	MeetingID      string `json:"meeting_id"`
	Speaker        string `json:"speaker" example:"Alice"`
	TimestampStart string `json:"timestamp_start" example:"00:01:15"`
	TimestampEnd   string `json:"timestamp_end" example:"00:02:40"`
	Snippet        string `json:"snippet"`
}

type QueryResponse struct {
	Answer           string             `json:"answer"`
	Citations        []CitationResponse `json:"citations"`
	RetrievedContext []string           `json:"retrieved_context"`
	MeetingIDs       []string           `json:"meeting_ids"`
	LatencyMs        float64            `json:"latency_ms"`
}

type MeetingResponse struct {
	MeetingID       string    `json:"meeting_id"`
	Title           string    `json:"title" example:"weekly planning"`
	MeetingDate     string    `json:"meeting_date,omitempty" example:"2026-08-24"`
	Participants    []string  `json:"participants,omitempty"`
	Status          string    `json:"ingestion_status" example:"READY"`
	ChunkCount      int       `json:"chunk_count,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	IngestedAt      time.Time `json:"ingested_at,omitempty"`
}

type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
	Count    int               `json:"count"`
}

type EvaluationResponse struct {
	EvalID          string   `json:"eval_id"`
	MeetingID       string   `json:"meeting_id"`
	Question        string   `json:"question"`
	Answer          string   `json:"answer"`
	Faithfulness    *float64 `json:"faithfulness"`
	AnswerRelevancy *float64 `json:"answer_relevancy"`
	OverallScore    *float64 `json:"overall_score"`
	EvaluatedAt     string   `json:"evaluated_at"`
	LatencyMs       float64  `json:"latency_ms"`
}

type EvaluationListResponse struct {
	Evaluations []EvaluationResponse `json:"evaluations"`
	Count       int                  `json:"count"`
}

// requests---------------------

type QueryRequest struct {
	Question   string   `json:"question" validate:"required"`
	MeetingIDs []string `json:"meeting_ids,omitempty"`
}

type EvaluateRequest struct {
	Question  string `json:"question" validate:"required"`
	MeetingID string `json:"meeting_id,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
