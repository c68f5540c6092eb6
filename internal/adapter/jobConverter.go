package adapter

import (
	"fmt"
	"time"

	"github.com/svalluru/MeetingsAPI/internal/api"
	"github.com/svalluru/MeetingsAPI/internal/domain/jobModel"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
)

func ToInitJobResponse(id string, meetingID string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		MeetingID: meetingID,
		StatusURL: fmt.Sprintf("v1/jobs/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:    string(job.Status),
		Ingestion: ToIngestionResult(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		MeetingID: job.JobPayload.MeetingID,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToIngestionResult(payload jobModel.JobPayload) *api.IngestionResult {
	if payload.Report == nil {
		return nil
	}

	return &api.IngestionResult{
		MeetingID:        payload.Report.MeetingID,
		Status:           string(payload.Report.Status),
		ChunksCreated:    payload.Report.ChunksCreated,
		EmbeddingsStored: payload.Report.EmbeddingsStored,
		DerivedArtifacts: payload.Report.DerivedArtifacts,
		DurationMs:       payload.Report.DurationMs,
	}
}

func ToQueryResponse(answer meetingModel.CitedAnswer) api.QueryResponse {
	citations := make([]api.CitationResponse, len(answer.Citations))
	for i, c := range answer.Citations {
		citations[i] = api.CitationResponse{
			ChunkID:        c.ChunkID,
			MeetingID:      c.MeetingID,
			Speaker:        c.Speaker,
			TimestampStart: c.TimestampStart,
			TimestampEnd:   c.TimestampEnd,
			Snippet:        c.Snippet,
		}
	}

	return api.QueryResponse{
		Answer:           answer.Answer,
		Citations:        citations,
		RetrievedContext: answer.RetrievedContext,
		MeetingIDs:       answer.MeetingIDs,
		LatencyMs:        answer.LatencyMs,
	}
}

func ToMeetingResponse(record meetingModel.MeetingRecord) api.MeetingResponse {
	return api.MeetingResponse{
		MeetingID:    record.MeetingID,
		Title:        record.TitleNormalized,
		MeetingDate:  record.MeetingDate,
		Participants: record.Participants,
		Status:       string(record.Status),
		ChunkCount:   record.ChunkCount,
		ErrorMessage: record.ErrorMessage,
		CreatedAt:    record.CreatedAt,
		IngestedAt:   record.IngestedAt,
	}
}

func ToMeetingListResponse(records []meetingModel.MeetingRecord) api.MeetingListResponse {
	meetings := make([]api.MeetingResponse, len(records))
	for i, record := range records {
		meetings[i] = ToMeetingResponse(record)
	}
	return api.MeetingListResponse{Meetings: meetings, Count: len(meetings)}
}

func ToEvaluationResponse(result meetingModel.EvalResult) api.EvaluationResponse {
	return api.EvaluationResponse{
		EvalID:          result.EvalID,
		MeetingID:       result.MeetingID,
		Question:        result.Question,
		Answer:          result.Answer,
		Faithfulness:    result.Faithfulness,
		AnswerRelevancy: result.AnswerRelevancy,
		OverallScore:    result.OverallScore,
		EvaluatedAt:     result.EvaluatedAt,
		LatencyMs:       result.LatencyMs,
	}
}

func ToEvaluationListResponse(results []meetingModel.EvalResult) api.EvaluationListResponse {
	evaluations := make([]api.EvaluationResponse, len(results))
	for i, result := range results {
		evaluations[i] = ToEvaluationResponse(result)
	}
	return api.EvaluationListResponse{Evaluations: evaluations, Count: len(evaluations)}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
