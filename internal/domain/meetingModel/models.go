package meetingModel

import "time"

type IngestionStatus string

const (
	StatusPending IngestionStatus = "PENDING"
	StatusReady   IngestionStatus = "READY"
	StatusFailed  IngestionStatus = "FAILED"
)

// TranscriptSegment is one normalized line of a meeting transcript.
type TranscriptSegment struct {
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

type NormalizedTranscript struct {
	MeetingID    string              `json:"meeting_id"`
	Title        string              `json:"title"`
	Participants []string            `json:"participants"`
	Segments     []TranscriptSegment `json:"segments"`
}

// Chunk is a token-window over consecutive segments. Text renders each
// segment as "[ts] speaker: text" joined with newlines.
type Chunk struct {
	ChunkID        string   `json:"chunk_id"`
	Text           string   `json:"text"`
	TimestampStart string   `json:"timestamp_start"`
	TimestampEnd   string   `json:"timestamp_end"`
	Speaker        string   `json:"speaker"`
	Speakers       []string `json:"speakers"`
}

// VectorRecord is what the vector store holds per chunk. Search results
// come back with Embedding nil.
type VectorRecord struct {
	ChunkID   string            `json:"chunk_id"`
	MeetingID string            `json:"meeting_id"`
	Embedding []float32         `json:"embedding,omitempty"`
	Text      string            `json:"text"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Score     float32           `json:"score,omitempty"`
}

type MeetingRecord struct {
	MeetingID        string          `json:"meeting_id"`
	TitleNormalized  string          `json:"title_normalized"`
	MeetingDate      string          `json:"meeting_date,omitempty"`
	Participants     []string        `json:"participants,omitempty"`
	RawURI           string          `json:"raw_uri"`
	DerivedPrefixURI string          `json:"derived_prefix_uri"`
	DocHash          string          `json:"doc_hash"`
	Status           IngestionStatus `json:"ingestion_status"`
	ChunkCount       int             `json:"chunk_count,omitempty"`
	ErrorMessage     string          `json:"error_message,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	IngestedAt       time.Time       `json:"ingested_at,omitempty"`
}

// ChunkMapEntry is one row of the derived chunk_map.json artifact. It is
// the citation lookup for a chunk without re-reading the raw transcript.
type ChunkMapEntry struct {
	ChunkID        string `json:"chunk_id"`
	MeetingID      string `json:"meeting_id"`
	TimestampStart string `json:"timestamp_start"`
	TimestampEnd   string `json:"timestamp_end"`
	Speaker        string `json:"speaker"`
	Snippet        string `json:"snippet"`
	RawURI         string `json:"raw_uri"`
}

type Citation struct {
	ChunkID        string `json:"chunk_id"`
	MeetingID      string `json:"meeting_id"`
	Speaker        string `json:"speaker"`
	TimestampStart string `json:"timestamp_start"`
	TimestampEnd   string `json:"timestamp_end"`
	Snippet        string `json:"snippet"`
}

type CitedAnswer struct {
	Answer           string     `json:"answer"`
	Citations        []Citation `json:"citations"`
	RetrievedContext []string   `json:"retrieved_context"`
	MeetingIDs       []string   `json:"meeting_ids"`
	LatencyMs        float64    `json:"latency_ms"`
}

type IngestionReport struct {
	MeetingID        string          `json:"meeting_id"`
	Status           IngestionStatus `json:"status"`
	ChunksCreated    int             `json:"chunks_created"`
	EmbeddingsStored int             `json:"embeddings_stored"`
	DerivedArtifacts []string        `json:"derived_artifacts,omitempty"`
	DurationMs       float64         `json:"duration_ms"`
}

// EvalResult scores are pointers so a failed metric stays null instead of 0.
type EvalResult struct {
	EvalID           string   `json:"eval_id"`
	MeetingID        string   `json:"meeting_id"`
	Question         string   `json:"question"`
	Answer           string   `json:"answer"`
	RetrievedContext []string `json:"retrieved_context"`
	Faithfulness     *float64 `json:"faithfulness"`
	AnswerRelevancy  *float64 `json:"answer_relevancy"`
	OverallScore     *float64 `json:"overall_score"`
	EvaluatedAt      string   `json:"evaluated_at"`
	LatencyMs        float64  `json:"latency_ms"`
}
