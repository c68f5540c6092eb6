package apperr

import (
	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for the failure classes the HTTP layer cares about.
// Wrap sites attach structured values with goerr so logs keep the
// meeting id / question without string formatting.
var (
	ErrValidation = goerr.New("validation error")
	ErrParse      = goerr.New("transcript parse error")
	ErrNotFound   = goerr.New("record not found")
	ErrIngestion  = goerr.New("ingestion error")
	ErrQuery      = goerr.New("query error")
	ErrEvaluation = goerr.New("evaluation error")
)

func Ingestion(cause error, meetingID string) error {
	return goerr.Wrap(cause, "ingestion failed", goerr.V("meeting_id", meetingID))
}

func Query(cause error, question string) error {
	return goerr.Wrap(cause, "query failed", goerr.V("question_len", len(question)))
}

func Evaluation(cause error, meetingID string) error {
	return goerr.Wrap(cause, "evaluation failed", goerr.V("meeting_id", meetingID))
}
