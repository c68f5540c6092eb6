package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/svalluru/MeetingsAPI/internal/adapter/utils"
	"github.com/svalluru/MeetingsAPI/internal/config"
	"github.com/svalluru/MeetingsAPI/internal/handlers"
	"github.com/svalluru/MeetingsAPI/internal/middleware"
	"github.com/svalluru/MeetingsAPI/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string, h *handlers.Handler, mw *middleware.Chain) {
	_logger = logger_i.NewLogger("Server")

	r := utils.NewRouter()

	r.Router.Get("/health", mw.Wrap(h.GetHandler))
	r.Router.Post("/v1/meetings/upload", mw.Wrap(h.UploadMeetingHandler))
	r.Router.Get("/v1/jobs/{id}", mw.Wrap(h.GetJobStatusHandler))
	r.Router.Get("/v1/meetings", mw.Wrap(h.ListMeetingsHandler))
	r.Router.Get("/v1/meetings/{id}", mw.Wrap(h.GetMeetingHandler))
	r.Router.Post("/v1/query", mw.Wrap(h.QueryHandler))
	r.Router.Post("/v1/evaluate", mw.Wrap(h.EvaluateHandler))
	r.Router.Get("/v1/evaluations", mw.Wrap(h.ListEvaluationsHandler))
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
