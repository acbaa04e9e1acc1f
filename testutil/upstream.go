package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is a snapshot of a request seen by an Upstream.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
}

// Upstream is an httptest server that records every request it receives.
type Upstream struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

func NewUpstream(t *testing.T, handler http.HandlerFunc) *Upstream {
	t.Helper()

	upstream := &Upstream{} //nolint:exhaustruct
	upstream.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstream.mu.Lock()
		upstream.requests = append(upstream.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
		})
		upstream.mu.Unlock()

		handler(w, r)
	}))
	t.Cleanup(upstream.Close)

	return upstream
}

func (u *Upstream) Requests() []RecordedRequest {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]RecordedRequest, len(u.requests))
	copy(out, u.requests)

	return out
}

func (u *Upstream) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	requests := u.Requests()
	if len(requests) == 0 {
		t.Fatal("Upstream received no requests")
	}

	return requests[len(requests)-1]
}

func (u *Upstream) RequestCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return len(u.requests)
}
