package evalscorer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/svalluru/MeetingsAPI/internal/customHttpClient"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

// Scores carries the metric values returned by the scoring service.
// A nil score means that metric could not be computed.
type Scores struct {
	Faithfulness    *float64 `json:"faithfulness"`
	AnswerRelevancy *float64 `json:"answer_relevancy"`
}

type Client interface {
	Score(ctx context.Context, question, answer string, contexts []string) (Scores, error)
}

type scoreRequest struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Contexts []string `json:"contexts"`
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *logger_i.Logger
}

// NewHTTPClient talks to an external answer-quality scoring service.
func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  customHttpClient.NewPooledClient(),
		logger:  logger_i.NewLogger("EvalScorer"),
	}
}

func (c *httpClient) Score(ctx context.Context, question, answer string, contexts []string) (Scores, error) {
	body, err := json.Marshal(scoreRequest{
		Question: question,
		Answer:   answer,
		Contexts: contexts,
	})
	if err != nil {
		return Scores{}, goerr.Wrap(err, "failed to encode score request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return Scores{}, goerr.Wrap(err, "failed to build score request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Scores{}, goerr.Wrap(err, "scorer unreachable", goerr.V("url", c.baseURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Scores{}, goerr.New("scorer returned non-200",
			goerr.V("status", resp.StatusCode), goerr.V("body", string(payload)))
	}

	var scores Scores
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return Scores{}, goerr.Wrap(err, "failed to decode score response")
	}

	c.logger.Debug("Scored answer", "faithfulness", scores.Faithfulness, "answerRelevancy", scores.AnswerRelevancy)
	return scores, nil
}
