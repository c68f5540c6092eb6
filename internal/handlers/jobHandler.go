package handlers

import (
	"sync/atomic"
	"time"

	"github.com/svalluru/MeetingsAPI/internal/domain/jobModel"
	"github.com/svalluru/MeetingsAPI/internal/metrics"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

var logJH = logger_i.NewLogger("JobHandler")

type newJobData struct {
	id        string
	meetingID string
	filename  string
	tempPath  string
	traceId   string
}

func (h *Handler) createIngestJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new ingestion job")
	h.pushToJobChannel(newJob)
}

// private methods
func (h *Handler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IngestInit
	_job.JobPayload.MeetingID = newJob.meetingID
	_job.JobPayload.Filename = newJob.filename
	_job.JobPayload.TempPath = newJob.tempPath

	//metrics
	metrics.IncrementJobsInQueue()

	h.jobService.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new ingestion job")

	//ingestion involves batch processing which might take time - external system call
	//so every ingestion job signals the dispatcher for an extra worker
	//worker will be removed if it has idle time - so it should be ok
	//this also allows us to only keep 1 worker running at most times therefore cutting resource spend
	atomic.AddInt64(&h.jobService.RequestCount, 1)
	metrics.StartDispatcherSignalCount() //metrics
	h.jobService.DispatcherChannel <- true
}

func (h *Handler) getJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := contextWithTrace(traceId)
	return h.jobService.JobStore.GetJob(ctxC, id)
}
