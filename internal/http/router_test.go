package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"jobboard/internal/app"
	"jobboard/internal/events"
	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
	"jobboard/internal/repository/memory"
)

const examplePost = `{"title":"Engineer","company":"Acme","location":"Remote","description":"Build things","requirements":["TS"],
"salary":{"min":1000,"max":2000,"currency":"USD"},"employmentType":"FULL_TIME","category":"Eng","contactEmail":"a@b.com"}`

const exampleApply = `{"applicantName":"Jane","email":"jane@x.com","phone":"123","resumeUrl":"http://r.com/r.pdf","coverLetter":"Hi"}`

type testServer struct {
	handler   http.Handler
	collector *metrics.Collector
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	t.Helper()
	return newTestServerWith(t, func(deps *RouterDependencies) {
		deps.RateLimitRequests = rateLimit
	})
}

func newTestServerWith(t *testing.T, configure func(*RouterDependencies)) *testServer {
	t.Helper()
	repos := app.NewRepositories(memory.NewJobRepository(), memory.NewApplicationRepository())
	logger := zap.NewNop()
	jobService := app.NewJobService(repos, events.NoopPublisher{}, logger)
	applicationService := app.NewApplicationService(repos, events.NoopPublisher{}, logger)
	deps := RouterDependencies{
		JobHandler:         handlers.NewJobHandler(jobService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService),
		Metrics:            metrics.NewCollector(),
		Logger:             logger,
		Limiter:            httpmw.NewRateLimiter(),
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     5 * time.Second,
		AllowedOrigins:     []string{"*"},
	}
	if configure != nil {
		configure(&deps)
	}
	return &testServer{collector: deps.Metrics, handler: NewRouter(deps)}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

type record map[string]any

func TestWorkedExample(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := srv.do(t, http.MethodPost, "/jobs", examplePost)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[record](t, rec)
	if created["status"] != "ACTIVE" {
		t.Fatalf("expected ACTIVE, got %v", created["status"])
	}
	if applicants, ok := created["applicants"].([]any); !ok || len(applicants) != 0 {
		t.Fatalf("expected empty applicants, got %v", created["applicants"])
	}
	if created["updatedAt"] != nil {
		t.Fatalf("expected null updatedAt, got %v", created["updatedAt"])
	}
	id := created["id"].(string)

	rec = srv.do(t, http.MethodPost, "/jobs/"+id+"/apply", exampleApply)
	if rec.Code != http.StatusOK {
		t.Fatalf("apply: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	application := decode[record](t, rec)
	if application["status"] != "PENDING" || application["jobId"] != id {
		t.Fatalf("unexpected application: %v", application)
	}

	rec = srv.do(t, http.MethodPost, "/jobs/"+id+"/apply", exampleApply)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate apply: expected 400, got %d", rec.Code)
	}
	if body := decode[record](t, rec); body["error"] == nil {
		t.Fatalf("expected error body, got %v", body)
	}

	rec = srv.do(t, http.MethodGet, "/jobs/"+id, "")
	fetched := decode[record](t, rec)
	if applicants := fetched["applicants"].([]any); len(applicants) != 1 || applicants[0] != application["id"] {
		t.Fatalf("expected applicant recorded, got %v", fetched["applicants"])
	}

	rec = srv.do(t, http.MethodGet, "/applications/"+application["id"].(string), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get application: expected 200, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodGet, "/jobs/"+id+"/applications", "")
	if listed := decode[[]record](t, rec); len(listed) != 1 {
		t.Fatalf("expected one application, got %d", len(listed))
	}
}

func TestJobLifecycle(t *testing.T) {
	srv := newTestServer(t, 100)
	created := decode[record](t, srv.do(t, http.MethodPost, "/jobs", examplePost))
	id := created["id"].(string)

	rec := srv.do(t, http.MethodPut, "/jobs/"+id, `{"status":"CLOSED","company":"ignored"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	fetched := decode[record](t, srv.do(t, http.MethodGet, "/jobs/"+id, ""))
	if fetched["status"] != "CLOSED" || fetched["company"] != "Acme" {
		t.Fatalf("unexpected record after update: %v", fetched)
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, fetched["createdAt"].(string))
	updatedAt, err := time.Parse(time.RFC3339Nano, fetched["updatedAt"].(string))
	if err != nil || updatedAt.Before(createdAt) {
		t.Fatalf("unexpected updatedAt %v (createdAt %v): %v", updatedAt, createdAt, err)
	}

	if rec := srv.do(t, http.MethodPost, "/jobs/"+id+"/apply", exampleApply); rec.Code != http.StatusBadRequest {
		t.Fatalf("apply to closed job: expected 400, got %d", rec.Code)
	}

	if rec := srv.do(t, http.MethodPut, "/jobs/"+id, `{"title":42}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("non-string title: expected 400, got %d", rec.Code)
	} else if body := decode[record](t, rec); body["errors"] == nil {
		t.Fatalf("expected field errors, got %v", body)
	}
	if rec := srv.do(t, http.MethodPut, "/jobs/"+id, `{"status":"ARCHIVED"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status: expected 400, got %d", rec.Code)
	}

	if rec := srv.do(t, http.MethodDelete, "/jobs/"+id, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	for _, req := range []struct{ method, path, body string }{
		{http.MethodGet, "/jobs/" + id, ""},
		{http.MethodDelete, "/jobs/" + id, ""},
		{http.MethodPut, "/jobs/" + id, `{"title":"x"}`},
		{http.MethodPost, "/jobs/" + id + "/apply", exampleApply},
		{http.MethodGet, "/jobs/" + id + "/applications", ""},
		{http.MethodGet, "/applications/missing", ""},
		{http.MethodPut, "/applications/missing/status", `{"status":"REVIEWED"}`},
	} {
		if rec := srv.do(t, req.method, req.path, req.body); rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", req.method, req.path, rec.Code)
		}
	}
}

func TestCreateValidationResponse(t *testing.T) {
	srv := newTestServer(t, 100)
	rec := srv.do(t, http.MethodPost, "/jobs", `{"title":"","salary":{"min":5,"max":1,"currency":"GBP"},"contactEmail":"nope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decode[struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}](t, rec)
	for _, field := range []string{"title", "company", "requirements", "salary.max", "salary.currency", "contactEmail"} {
		if body.Errors[field] == "" {
			t.Fatalf("expected %s error, got %v", field, body.Errors)
		}
	}
	if rec := srv.do(t, http.MethodPost, "/jobs", `{not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed json: expected 400, got %d", rec.Code)
	}
}

func TestListFiltersOverHTTP(t *testing.T) {
	srv := newTestServer(t, 100)
	srv.do(t, http.MethodPost, "/jobs", examplePost)
	srv.do(t, http.MethodPost, "/jobs", strings.Replace(examplePost, `"category":"Eng"`, `"category":"Design"`, 1))

	items := decode[[]record](t, srv.do(t, http.MethodGet, "/jobs?category=eng", ""))
	if len(items) != 1 || items[0]["category"] != "Eng" {
		t.Fatalf("unexpected filtered items: %v", items)
	}
	items = decode[[]record](t, srv.do(t, http.MethodGet, "/jobs?employmentType=FULL_TIME&status=ACTIVE", ""))
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	items = decode[[]record](t, srv.do(t, http.MethodGet, "/jobs?status=DRAFT", ""))
	if len(items) != 0 {
		t.Fatalf("expected no drafts, got %d", len(items))
	}
}

func TestApplicationStatusOverHTTP(t *testing.T) {
	srv := newTestServer(t, 100)
	created := decode[record](t, srv.do(t, http.MethodPost, "/jobs", examplePost))
	applied := decode[record](t, srv.do(t, http.MethodPost, "/jobs/"+created["id"].(string)+"/apply", exampleApply))
	path := "/applications/" + applied["id"].(string) + "/status"

	rec := srv.do(t, http.MethodPut, path, `{"status":"SHORTLISTED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if updated := decode[record](t, rec); updated["status"] != "SHORTLISTED" || updated["updatedAt"] == nil {
		t.Fatalf("unexpected application: %v", updated)
	}
	if rec := srv.do(t, http.MethodPut, path, `{"status":"hired"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: expected 400, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, 2)
	for i := 0; i < 2; i++ {
		if rec := srv.do(t, http.MethodGet, "/jobs", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	rec := srv.do(t, http.MethodGet, "/jobs", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	if rec := srv.do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health must not be rate limited, got %d", rec.Code)
	}
	if snap := srv.collector.Snapshot(); snap.RateLimited != 1 || snap.Requests != 4 {
		t.Fatalf("unexpected metrics: %+v", snap)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, 100)
	rec := srv.do(t, http.MethodGet, "/health", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
	metricsRec := srv.do(t, http.MethodGet, "/metrics", "")
	if !strings.Contains(metricsRec.Body.String(), "jobboard_requests_total 2") {
		t.Fatalf("unexpected metrics output: %s", metricsRec.Body.String())
	}
}

func TestRateLimitWithoutMetrics(t *testing.T) {
	srv := newTestServerWith(t, func(deps *RouterDependencies) {
		deps.Metrics = nil
		deps.RateLimitRequests = 1
	})
	if rec := srv.do(t, http.MethodGet, "/jobs", ""); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	rec := srv.do(t, http.MethodGet, "/jobs", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestApplyRateLimitPerJob(t *testing.T) {
	srv := newTestServerWith(t, func(deps *RouterDependencies) {
		deps.ApplyRateLimit = 1
	})
	first := decode[record](t, srv.do(t, http.MethodPost, "/jobs", examplePost))["id"].(string)
	second := decode[record](t, srv.do(t, http.MethodPost, "/jobs", examplePost))["id"].(string)

	if rec := srv.do(t, http.MethodPost, "/jobs/"+first+"/apply", exampleApply); rec.Code != http.StatusOK {
		t.Fatalf("first apply: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	other := `{"applicantName":"Joe","email":"joe@x.com","resumeUrl":"http://r.com/j.pdf"}`
	rec := srv.do(t, http.MethodPost, "/jobs/"+first+"/apply", other)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second apply to same job: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("unexpected Retry-After %q", rec.Header().Get("Retry-After"))
	}
	if rec := srv.do(t, http.MethodPost, "/jobs/"+second+"/apply", exampleApply); rec.Code != http.StatusOK {
		t.Fatalf("apply to another job: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := srv.do(t, http.MethodGet, "/jobs/"+first+"/applications", ""); rec.Code != http.StatusOK {
		t.Fatalf("listing must not use the apply limit, got %d", rec.Code)
	}
	if snap := srv.collector.Snapshot(); snap.RateLimited != 1 {
		t.Fatalf("expected one rate limited request, got %+v", snap)
	}
}

func TestForwardedHeaderRequiresTrustedProxy(t *testing.T) {
	srv := newTestServer(t, 1)
	spoofed := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)
		return rec
	}
	if rec := spoofed("203.0.113.1"); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := spoofed("203.0.113.2"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("rotating X-Forwarded-For must not reset the limit, got %d", rec.Code)
	}
}
