package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
)

type RouterDependencies struct {
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	Metrics            *metrics.Collector
	Logger             *zap.Logger
	Limiter            httpmw.Limiter
	ClientIdentity     *httpmw.ClientIdentity
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	// ApplyRateLimit caps apply calls per (job, caller) each minute; zero disables it.
	ApplyRateLimit int
	RequestTimeout time.Duration
	AllowedOrigins []string
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(chimw.RequestID, httpmw.Logging(logger), httpmw.Metrics(deps.Metrics), chimw.Recoverer, httpmw.BodyLimit(maxBodyBytes))
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
	}).Handler)

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", metrics.NewHandler(deps.Metrics))

	// A nil *Collector must not become a non-nil interface.
	var observer httpmw.RateLimitObserver
	if deps.Metrics != nil {
		observer = deps.Metrics
	}
	clientIP := deps.ClientIdentity.IP
	applyLimit := httpmw.RateLimit(deps.Limiter, func(r *http.Request) string {
		if deps.ApplyRateLimit <= 0 {
			return ""
		}
		return "apply:" + chi.URLParam(r, "id") + ":" + clientIP(r)
	}, deps.ApplyRateLimit, time.Minute, observer)

	r.Group(func(r chi.Router) {
		r.Use(httpmw.RateLimit(deps.Limiter, clientIP, deps.RateLimitRequests, deps.RateLimitWindow, observer))

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", deps.JobHandler.Create)
			r.Get("/", deps.JobHandler.List)
			r.Get("/{id}", deps.JobHandler.Get)
			r.Put("/{id}", deps.JobHandler.Update)
			r.Delete("/{id}", deps.JobHandler.Delete)
			r.With(applyLimit).Post("/{id}/apply", deps.ApplicationHandler.Apply)
			r.Get("/{id}/applications", deps.ApplicationHandler.ListByJob)
		})
		r.Get("/applications/{id}", deps.ApplicationHandler.Get)
		r.Put("/applications/{id}/status", deps.ApplicationHandler.UpdateStatus)
	})

	return r
}
