package openaiEmbedding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &client{
		openai: openai.NewClient(option.WithAPIKey("test-key"), option.WithBaseURL(srv.URL+"/")),
		model:  "text-embedding-3-small",
		logger: logger_i.NewLogger("openai_embedding_test"),
	}
}

func TestBatchEmbedding_OutOfOrderResponse(t *testing.T) {
	// the second input's vector arrives first
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "list",
			"data": [
				{"object": "embedding", "embedding": [0.5, 0.5], "index": 1},
				{"object": "embedding", "embedding": [1.0, 0.0], "index": 0}
			],
			"model": "text-embedding-3-small",
			"usage": {"prompt_tokens": 2, "total_tokens": 2}
		}`))
	})

	vectors, err := c.BatchEmbedding(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("BatchEmbedding failed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("Expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 1.0 || vectors[0][1] != 0.0 {
		t.Errorf("Vector 0 not matched to input 0: %v", vectors[0])
	}
	if vectors[1][0] != 0.5 || vectors[1][1] != 0.5 {
		t.Errorf("Vector 1 not matched to input 1: %v", vectors[1])
	}
}

func TestBatchEmbedding_BadIndexRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "list",
			"data": [
				{"object": "embedding", "embedding": [1.0], "index": 5}
			],
			"model": "text-embedding-3-small",
			"usage": {"prompt_tokens": 1, "total_tokens": 1}
		}`))
	})

	if _, err := c.BatchEmbedding(context.Background(), []string{"only"}); err == nil {
		t.Fatal("Expected error for out-of-range embedding index")
	}
}
