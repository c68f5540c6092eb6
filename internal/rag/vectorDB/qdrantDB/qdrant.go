package qdrantDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
	"github.com/svalluru/MeetingsAPI/internal/config"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/internal/rag/vectorDB"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

type Options struct {
	Host       string
	Port       int
	UseTLS     bool
	Collection string
	Dimension  uint64
}

type store struct {
	client     *qdrant.Client
	collection string
	dimension  uint64
	logger     *logger_i.Logger
}

func NewQdrantStore(opts Options) (vectorDB.Store, error) {
	logger := logger_i.NewLogger("Qdrant")

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     opts.Host,
		Port:     opts.Port,
		UseTLS:   opts.UseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil, fmt.Errorf("qdrant client: %w", err)
	}

	return &store{
		client:     client,
		collection: opts.Collection,
		dimension:  opts.Dimension,
		logger:     logger,
	}, nil
}

func (db *store) EnsureReady(ctx context.Context) error {
	if db.collection == "" {
		return errors.New("empty collection name")
	}

	exists, err := db.client.CollectionExists(ctx, db.collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return db.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: db.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     db.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (db *store) StoreVectors(ctx context.Context, records []meetingModel.VectorRecord) error {
	for start := 0; start < len(records); start += config.VectorUpsertBatchSize {
		end := start + config.VectorUpsertBatchSize
		if end > len(records) {
			end = len(records)
		}

		batch := records[start:end]
		qdrantPoints := make([]*qdrant.PointStruct, len(batch))
		for i, rec := range batch {
			payload := map[string]any{
				"chunk_id":   rec.ChunkID,
				"meeting_id": rec.MeetingID,
				"text":       rec.Text,
			}
			for k, v := range rec.Metadata {
				payload[k] = v
			}

			qdrantPoints[i] = &qdrant.PointStruct{
				Id:      qdrant.NewID(rec.ChunkID),
				Vectors: qdrant.NewVectors(rec.Embedding...),
				Payload: qdrant.NewValueMap(payload),
			}
		}

		_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: db.collection,
			Points:         qdrantPoints,
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			return fmt.Errorf("qdrant upsert failed: %w", err)
		}
	}
	return nil
}

func (db *store) Search(ctx context.Context, embedding []float32, topK int, meetingIDs []string) ([]meetingModel.VectorRecord, error) {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	query := &qdrant.QueryPoints{
		CollectionName: db.collection,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if len(meetingIDs) > 0 {
		query.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchKeywords("meeting_id", meetingIDs...),
			},
		}
	}

	result, err := db.client.Query(ctx, query)
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	records := make([]meetingModel.VectorRecord, 0, len(result))
	for _, hit := range result {
		metadata := make(map[string]string)
		for k, v := range hit.Payload {
			switch k {
			case "chunk_id", "meeting_id", "text":
			default:
				metadata[k] = v.GetStringValue()
			}
		}
		records = append(records, meetingModel.VectorRecord{
			ChunkID:   hit.Payload["chunk_id"].GetStringValue(),
			MeetingID: hit.Payload["meeting_id"].GetStringValue(),
			Text:      hit.Payload["text"].GetStringValue(),
			Metadata:  metadata,
			Score:     hit.Score,
		})
	}

	loggr.Debug("Vector search done", "hits", len(records))
	return records, nil
}

func (db *store) DeleteByMeeting(ctx context.Context, meetingID string) error {
	_, err := db.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: db.collection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("meeting_id", meetingID),
			},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete failed: %w", err)
	}
	return nil
}

func (db *store) Close() error {
	db.logger.Info("Shutting down Qdrant")
	return db.client.Close()
}
