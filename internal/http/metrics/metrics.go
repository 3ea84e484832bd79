package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

type Collector struct {
	requests    uint64
	errors      uint64
	rateLimited uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

func (c *Collector) IncErrors() {
	atomic.AddUint64(&c.errors, 1)
}

func (c *Collector) IncRateLimited() {
	atomic.AddUint64(&c.rateLimited, 1)
}

type Snapshot struct {
	Requests    uint64
	Errors      uint64
	RateLimited uint64
}

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Requests:    atomic.LoadUint64(&c.requests),
		Errors:      atomic.LoadUint64(&c.errors),
		RateLimited: atomic.LoadUint64(&c.rateLimited),
	}
}

type Handler struct {
	collector *Collector
}

func NewHandler(collector *Collector) *Handler {
	return &Handler{collector: collector}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var snap Snapshot
	if h.collector != nil {
		snap = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# HELP jobboard_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobboard_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "jobboard_requests_total %d\n", snap.Requests)
	_, _ = fmt.Fprintf(w, "# HELP jobboard_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobboard_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "jobboard_errors_total %d\n", snap.Errors)
	_, _ = fmt.Fprintf(w, "# HELP jobboard_rate_limited_total Total number of requests rejected by rate limiting.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobboard_rate_limited_total counter\n")
	_, _ = fmt.Fprintf(w, "jobboard_rate_limited_total %d\n", snap.RateLimited)
}
