package customHttpClient

import (
	"net/http"

	"github.com/svalluru/MeetingsAPI/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// NewPooledClient returns an http.Client sharing the pooled transport.
func NewPooledClient() *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   config.ScorerRequestTimeout,
	}
}
