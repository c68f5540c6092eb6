package memoryDB

import (
	"context"
	"testing"

	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

func record(chunkID, meetingID string, embedding []float32) meetingModel.VectorRecord {
	return meetingModel.VectorRecord{
		ChunkID:   chunkID,
		MeetingID: meetingID,
		Embedding: embedding,
		Text:      "text for " + chunkID,
	}
}

func TestMemoryStore_SearchRanksByCosine(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.StoreVectors(ctx, []meetingModel.VectorRecord{
		record("exact", "m1", []float32{1, 0}),
		record("close", "m1", []float32{0.9, 0.1}),
		record("orthogonal", "m1", []float32{0, 1}),
	})
	if err != nil {
		t.Fatalf("StoreVectors failed: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0}, 2, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].ChunkID != "exact" || results[1].ChunkID != "close" {
		t.Errorf("Wrong ranking: %s, %s", results[0].ChunkID, results[1].ChunkID)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("Scores not descending: %f, %f", results[0].Score, results[1].Score)
	}
}

func TestMemoryStore_SearchStripsEmbeddings(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.StoreVectors(ctx, []meetingModel.VectorRecord{record("c1", "m1", []float32{1, 0})})

	results, _ := s.Search(ctx, []float32{1, 0}, 5, nil)

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Embedding != nil {
		t.Error("Search result leaked the stored embedding")
	}

	// The stored record must keep its embedding for future searches.
	again, _ := s.Search(ctx, []float32{1, 0}, 5, nil)
	if len(again) != 1 || again[0].Score == 0 {
		t.Error("Stored embedding was mutated by a previous search")
	}
}

func TestMemoryStore_MeetingFilter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.StoreVectors(ctx, []meetingModel.VectorRecord{
		record("a", "m1", []float32{1, 0}),
		record("b", "m2", []float32{1, 0}),
	})

	results, err := s.Search(ctx, []float32{1, 0}, 10, []string{"m2"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].MeetingID != "m2" {
		t.Errorf("Filter not applied: %+v", results)
	}
}

func TestMemoryStore_DeleteByMeeting(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.StoreVectors(ctx, []meetingModel.VectorRecord{
		record("a", "m1", []float32{1, 0}),
		record("b", "m2", []float32{1, 0}),
	})

	if err := s.DeleteByMeeting(ctx, "m1"); err != nil {
		t.Fatalf("DeleteByMeeting failed: %v", err)
	}

	results, _ := s.Search(ctx, []float32{1, 0}, 10, nil)
	if len(results) != 1 || results[0].MeetingID != "m2" {
		t.Errorf("Delete left wrong records: %+v", results)
	}
}

func TestMemoryStore_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.StoreVectors(ctx, []meetingModel.VectorRecord{record("c1", "m1", []float32{1, 0})})
	s.StoreVectors(ctx, []meetingModel.VectorRecord{record("c1", "m1", []float32{0, 1})})

	results, _ := s.Search(ctx, []float32{0, 1}, 10, nil)
	if len(results) != 1 {
		t.Fatalf("Expected 1 record after overwrite, got %d", len(results))
	}
	if results[0].Score < 0.99 {
		t.Errorf("Overwritten vector not used, score %f", results[0].Score)
	}
}
