package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"jobboard/internal/http/metrics"
)

// Metrics counts every request and every 5xx response, including those written by the panic recoverer.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			collector.IncRequests()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if ww.Status() >= http.StatusInternalServerError {
				collector.IncErrors()
			}
		})
	}
}
