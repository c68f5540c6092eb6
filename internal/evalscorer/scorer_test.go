package evalscorer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClient_Score(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/score" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Bad request body: %v", err)
		}
		if req.Question != "q" || req.Answer != "a" || len(req.Contexts) != 2 {
			t.Errorf("Request not forwarded: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"faithfulness": 0.8, "answer_relevancy": null}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	scores, err := client.Score(context.Background(), "q", "a", []string{"c1", "c2"})
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if scores.Faithfulness == nil || *scores.Faithfulness != 0.8 {
		t.Errorf("Wrong faithfulness: %v", scores.Faithfulness)
	}
	if scores.AnswerRelevancy != nil {
		t.Error("Expected null answer relevancy to stay nil")
	}
}

func TestHTTPClient_ScoreServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	if _, err := client.Score(context.Background(), "q", "a", nil); err == nil {
		t.Error("Expected error for non-200 response")
	}
}
