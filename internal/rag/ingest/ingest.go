package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"

	"github.com/svalluru/MeetingsAPI/internal/apperr"
	"github.com/svalluru/MeetingsAPI/internal/data/artifactStore"
	"github.com/svalluru/MeetingsAPI/internal/data/metadataStore"
	"github.com/svalluru/MeetingsAPI/internal/domain/jobModel"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/internal/rag/chunker"
	"github.com/svalluru/MeetingsAPI/internal/rag/embedding"
	"github.com/svalluru/MeetingsAPI/internal/rag/parser"
	"github.com/svalluru/MeetingsAPI/internal/rag/vectorDB"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

const snippetLength = 200

// StepFunc receives pipeline progress so callers can reflect it on the
// originating job. Passing nil is fine.
type StepFunc func(step jobModel.InternalStatus)

// Pipeline turns one uploaded transcript into searchable vectors plus
// the derived artifacts needed for citations.
type Pipeline struct {
	artifacts artifactStore.Store
	metadata  metadataStore.Store
	vectors   vectorDB.Store
	embedder  embedding.Embedder
	maxTokens int
	overlap   int
	logger    *logger_i.Logger
}

func NewPipeline(artifacts artifactStore.Store, metadata metadataStore.Store, vectors vectorDB.Store, embedder embedding.Embedder, maxTokens, overlap int) *Pipeline {
	return &Pipeline{
		artifacts: artifacts,
		metadata:  metadata,
		vectors:   vectors,
		embedder:  embedder,
		maxTokens: maxTokens,
		overlap:   overlap,
		logger:    logger_i.NewLogger("Ingestion Pipeline"),
	}
}

// Run ingests the transcript at tempPath. Once the PENDING record is
// written, any later failure flips the record to FAILED best-effort and
// the original error is the one returned. The report carries the elapsed
// time whether ingestion succeeded or not.
func (p *Pipeline) Run(ctx context.Context, meetingID, filename, tempPath string, step StepFunc) (report meetingModel.IngestionReport, err error) {
	started := time.Now()
	report = meetingModel.IngestionReport{
		MeetingID: meetingID,
		Status:    meetingModel.StatusFailed,
	}
	defer func() {
		report.DurationMs = float64(time.Since(started).Microseconds()) / 1000.0
	}()
	notify := func(s jobModel.InternalStatus) {
		if step != nil {
			step(s)
		}
	}

	notify(jobModel.IngestInit)
	rawBytes, err := os.ReadFile(tempPath)
	if err != nil {
		return report, apperr.Ingestion(err, meetingID)
	}

	text, err := parser.ExtractText(tempPath)
	if err != nil {
		return report, apperr.Ingestion(err, meetingID)
	}

	docHash := sha256.Sum256(rawBytes)

	notify(jobModel.ArtifactCall)
	rawURI, err := p.artifacts.UploadRaw(ctx, meetingID, filename, rawBytes)
	if err != nil {
		return report, apperr.Ingestion(err, meetingID)
	}

	notify(jobModel.MetadataCall)
	record := meetingModel.MeetingRecord{
		MeetingID:        meetingID,
		TitleNormalized:  parser.NormalizeTitle(filename),
		RawURI:           rawURI,
		DerivedPrefixURI: p.artifacts.DerivedPrefix(meetingID),
		DocHash:          hex.EncodeToString(docHash[:]),
		Status:           meetingModel.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	if err := p.metadata.PutMeeting(ctx, record); err != nil {
		return report, apperr.Ingestion(err, meetingID)
	}

	notify(jobModel.ParseCall)
	segments, participants, err := parser.ParseTranscript(text)
	if err != nil {
		return report, p.failMeeting(ctx, meetingID, apperr.Ingestion(err, meetingID))
	}

	// second write of the still-PENDING record: participants and the
	// ingestion date are known as soon as the parse lands
	notify(jobModel.MetadataCall)
	record.Participants = participants
	record.MeetingDate = started.UTC().Format("2006-01-02")
	if err := p.metadata.PutMeeting(ctx, record); err != nil {
		return report, p.failMeeting(ctx, meetingID, apperr.Ingestion(err, meetingID))
	}

	notify(jobModel.ChunkingCall)
	chunks := chunker.ChunkSegments(segments, chunker.Options{
		MaxTokens: p.maxTokens,
		Overlap:   p.overlap,
	})
	if len(chunks) == 0 {
		return report, p.failMeeting(ctx, meetingID,
			apperr.Ingestion(goerr.New("no chunks produced from transcript"), meetingID))
	}
	report.ChunksCreated = len(chunks)

	notify(jobModel.EmbeddingAPICall)
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	embeddings, err := p.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return report, p.failMeeting(ctx, meetingID, apperr.Ingestion(err, meetingID))
	}
	if len(embeddings) != len(chunks) {
		return report, p.failMeeting(ctx, meetingID,
			apperr.Ingestion(goerr.New("embedding count mismatch",
				goerr.V("chunks", len(chunks)), goerr.V("embeddings", len(embeddings))), meetingID))
	}

	notify(jobModel.VectorDBCall)
	records := make([]meetingModel.VectorRecord, len(chunks))
	for i, c := range chunks {
		records[i] = meetingModel.VectorRecord{
			ChunkID:   c.ChunkID,
			MeetingID: meetingID,
			Embedding: embeddings[i],
			Text:      c.Text,
			Metadata: map[string]string{
				"speaker":         c.Speaker,
				"timestamp_start": c.TimestampStart,
				"timestamp_end":   c.TimestampEnd,
				"title":           record.TitleNormalized,
			},
		}
	}
	if err := p.vectors.StoreVectors(ctx, records); err != nil {
		return report, p.failMeeting(ctx, meetingID, apperr.Ingestion(err, meetingID))
	}
	report.EmbeddingsStored = len(records)

	notify(jobModel.ArtifactCall)
	chunkMap := buildChunkMap(meetingID, rawURI, chunks)
	mapBytes, err := json.Marshal(chunkMap)
	if err != nil {
		return report, p.failMeeting(ctx, meetingID, apperr.Ingestion(err, meetingID))
	}
	if _, err := p.artifacts.UploadDerived(ctx, meetingID, artifactStore.ChunkMapArtifact, mapBytes); err != nil {
		return report, p.failMeeting(ctx, meetingID, apperr.Ingestion(err, meetingID))
	}
	report.DerivedArtifacts = []string{artifactStore.ChunkMapArtifact}

	notify(jobModel.MetadataCall)
	record.ChunkCount = len(chunks)
	if err := p.metadata.PutMeeting(ctx, record); err != nil {
		return report, p.failMeeting(ctx, meetingID, apperr.Ingestion(err, meetingID))
	}
	if err := p.metadata.UpdateStatus(ctx, meetingID, meetingModel.StatusReady, ""); err != nil {
		return report, p.failMeeting(ctx, meetingID, apperr.Ingestion(err, meetingID))
	}

	notify(jobModel.Complete)
	report.Status = meetingModel.StatusReady
	p.logger.Info("Ingestion complete", "meetingID", meetingID,
		"chunks", report.ChunksCreated, "elapsed", time.Since(started))
	return report, nil
}

// truncateSnippet cuts at limit bytes without splitting a rune.
func truncateSnippet(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// failMeeting flips the record to FAILED without masking cause.
func (p *Pipeline) failMeeting(ctx context.Context, meetingID string, cause error) error {
	if err := p.metadata.UpdateStatus(ctx, meetingID, meetingModel.StatusFailed, cause.Error()); err != nil {
		p.logger.Error("Could not mark meeting FAILED", "meetingID", meetingID, "error", err)
	}
	return cause
}

func buildChunkMap(meetingID, rawURI string, chunks []meetingModel.Chunk) []meetingModel.ChunkMapEntry {
	entries := make([]meetingModel.ChunkMapEntry, len(chunks))
	for i, c := range chunks {
		snippet := truncateSnippet(c.Text, snippetLength)
		entries[i] = meetingModel.ChunkMapEntry{
			ChunkID:        c.ChunkID,
			MeetingID:      meetingID,
			TimestampStart: c.TimestampStart,
			TimestampEnd:   c.TimestampEnd,
			Speaker:        c.Speaker,
			Snippet:        snippet,
			RawURI:         rawURI,
		}
	}
	return entries
}
