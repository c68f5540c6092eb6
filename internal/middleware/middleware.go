package middleware

import (
	"net/http"
	"strconv"

	"github.com/svalluru/MeetingsAPI/internal/config"
	"github.com/svalluru/MeetingsAPI/internal/metrics"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

// Chain holds the cross-cutting request plumbing. One instance is built
// in main and wraps every route.
type Chain struct {
	authToken    string
	noAuthBypass bool
	limiter      *IPRateLimiter
}

func NewChain(authToken string, noAuthBypass bool) *Chain {
	return &Chain{
		authToken:    authToken,
		noAuthBypass: noAuthBypass,
		limiter:      NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND),
	}
}

func (c *Chain) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		defer func() {
			if rc := recover(); rc != nil {
				logger_i.NewLogger("middleware").Error("Recovered from handler panic", "panic", rc, "path", r.URL.Path)
				rec.CaptureWriteHeaderMetrics(http.StatusInternalServerError)
			}
		}()
		re := c.processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func (c *Chain) processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Info("New request received")

	re = injectTrace(re)
	re = c.authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	re = c.rateLimiter(re)

	return re
}
