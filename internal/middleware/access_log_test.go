package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"pawcare/internal/platform/logger"
	"pawcare/internal/platform/metrics"
)

func TestAccessLog_LogsAndCountsByRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(AccessLog(log, m))
	r.Get("/pets/{petID}", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "pet not found", http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/pets/a", "/pets/b", "/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/pets/{petID}", "404")); got != 2 {
		t.Fatalf("expected 2 requests for pattern, got %v", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/health", "200")); got != 1 {
		t.Fatalf("expected 1 health request, got %v", got)
	}

	out := buf.String()
	if strings.Count(out, "\n") != 3 {
		t.Fatalf("expected 3 log lines, got:\n%s", out)
	}
	if !strings.Contains(out, `"level":"warning"`) || !strings.Contains(out, `"request_id"`) {
		t.Fatalf("expected warning line with request id, got:\n%s", out)
	}
}

func TestAccessLog_NilLoggerAndMetrics(t *testing.T) {
	h := AccessLog(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/x", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}
