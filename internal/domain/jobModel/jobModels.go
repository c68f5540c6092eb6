package jobModel

import (
	"context"
	"time"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "Init"
	ArtifactCall     InternalStatus = "ArtifactStore"
	MetadataCall     InternalStatus = "MetadataStore"
	ParseCall        InternalStatus = "Parse"
	ChunkingCall     InternalStatus = "Chunking"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	VectorDBCall     InternalStatus = "VectorDB"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"
)

// Job tracks one asynchronous meeting ingestion.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	MeetingID string `json:"meeting_id"`
	Filename  string `json:"filename"`
	// TempPath points at the uploaded bytes on local disk until the
	// pipeline has copied them into the artifact store.
	TempPath string `json:"temp_path,omitempty"`

	Report *meetingModel.IngestionReport `json:"report,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
