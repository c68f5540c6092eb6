package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/svalluru/MeetingsAPI/internal/config"
	jobmodel "github.com/svalluru/MeetingsAPI/internal/domain/jobModel"
	"github.com/svalluru/MeetingsAPI/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	//ingestion runs parsing, batch embedding and vector upserts against
	//external systems, so the budget is generous
	ctx, cancel := context.WithTimeout(ctxTrace, config.IngestJobTimeout)
	defer cancel()
	logger.With("trace Id ", job.TraceId)
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job = _ragService.IngestMeeting(ctx, job)

	job.EndTime = time.Now()
	if job.Status == jobmodel.JobStatusError {
		saveJobState(ctx, job, jobmodel.JobStatusError)
		return
	}
	saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
