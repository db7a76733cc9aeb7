// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/scout-engine/pkg/types"
)

// defaultTimeout bounds a single API call. The upstream client library
// default is no timeout at all, which can hang a batch indefinitely.
const defaultTimeout = 60 * time.Second

// NewClient builds the HTTP client used for API calls, applying the
// configured timeout or the 60s default.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// IsRateLimited reports whether the response is HTTP 429.
func IsRateLimited(resp *http.Response) bool {
	return resp.StatusCode == http.StatusTooManyRequests
}

// BodyPreview reads at most n bytes of the response body for inclusion
// in error messages. It never fails: a read error yields what was read.
func BodyPreview(resp *http.Response, n int64) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, n))
	return string(data)
}

// Drain discards and closes the response body so the connection can be
// reused.
func Drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
