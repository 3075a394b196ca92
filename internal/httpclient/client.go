// Package httpclient builds the shared HTTP client used by the fetch and
// competitive services.
package httpclient

import (
	"net/http"
	"time"
)

// New creates an HTTP client with sane transport limits and the given
// request timeout.
func New(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
