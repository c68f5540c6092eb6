package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/svalluru/MeetingsAPI/internal/adapter"
	"github.com/svalluru/MeetingsAPI/internal/adapter/utils"
	"github.com/svalluru/MeetingsAPI/internal/api"
	"github.com/svalluru/MeetingsAPI/internal/apperr"
	"github.com/svalluru/MeetingsAPI/internal/config"
	"github.com/svalluru/MeetingsAPI/internal/data/metadataStore"
	"github.com/svalluru/MeetingsAPI/internal/domain/meetingModel"
	"github.com/svalluru/MeetingsAPI/internal/job"
	"github.com/svalluru/MeetingsAPI/internal/rag"
	"github.com/svalluru/MeetingsAPI/internal/rag/evaluation"
)

// Handler carries every dependency the HTTP surface needs. Built once
// in main and shared by all routes.
type Handler struct {
	jobService  *job.Service
	metadata    metadataStore.Store
	ragService  rag.Service
	evalService *evaluation.Service
}

func NewHandler(jobService *job.Service, metadata metadataStore.Store, ragService rag.Service, evalService *evaluation.Service) *Handler {
	return &Handler{
		jobService:  jobService,
		metadata:    metadata,
		ragService:  ragService,
		evalService: evalService,
	}
}

func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UploadMeetingHandler godoc
// @Summary      Upload a meeting transcript for ingestion
// @Description  Receives a transcript via multipart/form-data, saves it to a temporary directory, and queues an asynchronous ingestion job.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        transcript  formData  file  true  "The transcript file (.txt, .pdf, .docx, .rtf)"
// @Success      202  {object}  api.InitJobResponse  "Accepted - returns job and meeting IDs"
// @Failure      400  {object}  api.JobResponse  "Bad Request - missing file or unsupported format"
// @Failure      500  {object}  api.JobResponse  "Internal Server Error - Storage or Write Error"
// @Router       /v1/meetings/upload [post]
func (h *Handler) UploadMeetingHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	const maxUploadSize = 32 << 20 //32mb
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("transcript")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve transcript file")
		return
	}
	defer fileReader.Close()

	if !isSupportedTranscript(fileMetadata.Filename) {
		WriteErrorResponse(w, http.StatusBadRequest, fileMetadata.Filename, "Unsupported transcript format")
		return
	}

	tempName := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, tempName)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Write error")
		return
	}

	newJob := newJobData{
		id:        utils.GetNewUUID(),
		meetingID: utils.GetNewUUID(),
		filename:  fileMetadata.Filename,
		tempPath:  tempFilePath,
		traceId:   r.Context().Value(config.TRACE_ID_KEY).(string),
	}
	h.createIngestJob(newJob)

	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id, newJob.meetingID))
}

// GetJobStatusHandler godoc
// @Summary      Get ingestion job status
// @Description  Retrieves the current status of an ingestion job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found (returns Error object within JobResponse)"
// @Router       /v1/jobs/{id} [get]
func (h *Handler) GetJobStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	logRH.Debug("Get Status Request:", "URL path", r.URL.Path)

	if idString == "" {
		WriteErrorResponse(w, http.StatusBadRequest, idString, "Empty job ID")
		return
	}

	result, isFound := h.getJobStatus(idString, r.Context().Value(config.TRACE_ID_KEY).(string))
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// ListMeetingsHandler godoc
// @Summary      List ingested meetings
// @Description  Returns the meeting catalog, optionally filtered by ingestion status or participant.
// @Tags         Meetings
// @Produce      json
// @Param        status       query     string  false  "Filter by ingestion status (PENDING, READY, FAILED)"
// @Param        title        query     string  false  "Filter by title substring (case-insensitive)"
// @Param        date         query     string  false  "Filter by meeting date (YYYY-MM-DD)"
// @Param        participant  query     string  false  "Filter by participant name"
// @Success      200  {object}  api.MeetingListResponse
// @Failure      500  {object}  api.JobResponse
// @Router       /v1/meetings [get]
func (h *Handler) ListMeetingsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	filter := metadataStore.ListFilter{
		Status:      meetingModel.IngestionStatus(r.URL.Query().Get("status")),
		Title:       r.URL.Query().Get("title"),
		Date:        r.URL.Query().Get("date"),
		Participant: r.URL.Query().Get("participant"),
	}

	records, err := h.metadata.ListMeetings(r.Context(), filter)
	if err != nil {
		logRH.Error("Error listing meetings", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Could not list meetings")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToMeetingListResponse(records))
}

// GetMeetingHandler godoc
// @Summary      Get one meeting record
// @Description  Returns the catalog record for a single meeting.
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  api.MeetingResponse
// @Failure      404  {object}  api.JobResponse  "Meeting not found"
// @Router       /v1/meetings/{id} [get]
func (h *Handler) GetMeetingHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	meetingID := utils.GetChiURLParam(r, "id")
	record, found, err := h.metadata.GetMeeting(r.Context(), meetingID)
	if err != nil {
		logRH.Error("Error fetching meeting", "meetingID", meetingID, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, meetingID, "Could not fetch meeting")
		return
	}
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, meetingID, "Meeting not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToMeetingResponse(record))
}

// QueryHandler godoc
// @Summary      Ask a question over ingested meetings
// @Description  Runs the grounded Q&A pipeline and returns an answer with citations. Optionally restricted to specific meetings.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest  true  "Question and optional meeting filter"
// @Success      200      {object}  api.QueryResponse
// @Failure      400      {object}  api.JobResponse  "Invalid request data"
// @Failure      500      {object}  api.JobResponse  "Query pipeline failure"
// @Router       /v1/query [post]
func (h *Handler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.QueryRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the query handler reader :", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Question) == "" {
		logRH.Warn("Bad Query Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "question is required")
		return
	}

	answer, err := h.ragService.ProcessQuery(r.Context(), requestData.Question, requestData.MeetingIDs)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			WriteErrorResponse(w, http.StatusBadRequest, "", "question is required")
			return
		}
		logRH.Error("Query pipeline failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Query failed")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(answer))
}

// EvaluateHandler godoc
// @Summary      Evaluate answer quality for a question
// @Description  Runs the query pipeline, scores the answer for faithfulness and relevancy, and persists the result.
// @Tags         Evaluation
// @Accept       json
// @Produce      json
// @Param        request  body      api.EvaluateRequest  true  "Question and optional meeting ID"
// @Success      200      {object}  api.EvaluationResponse
// @Failure      400      {object}  api.JobResponse  "Invalid request data"
// @Failure      500      {object}  api.JobResponse  "Evaluation failure"
// @Router       /v1/evaluate [post]
func (h *Handler) EvaluateHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var requestData api.EvaluateRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Question) == "" {
		logRH.Warn("Bad Evaluate Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "question is required")
		return
	}

	result, err := h.evalService.Evaluate(r.Context(), requestData.Question, requestData.MeetingID)
	if err != nil {
		logRH.Error("Evaluation failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Evaluation failed")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToEvaluationResponse(result))
}

// ListEvaluationsHandler godoc
// @Summary      List evaluation history
// @Description  Returns past evaluation results, newest first, optionally scoped to one meeting.
// @Tags         Evaluation
// @Produce      json
// @Param        meeting_id  query     string  false  "Filter by meeting ID"
// @Param        limit       query     int     false  "Maximum results (default 100)"
// @Success      200  {object}  api.EvaluationListResponse
// @Failure      500  {object}  api.JobResponse
// @Router       /v1/evaluations [get]
func (h *Handler) ListEvaluationsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteErrorResponse(w, http.StatusBadRequest, "", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	results, err := h.evalService.ListHistory(r.Context(), r.URL.Query().Get("meeting_id"), limit)
	if err != nil {
		logRH.Error("Error listing evaluations", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Could not list evaluations")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToEvaluationListResponse(results))
}
