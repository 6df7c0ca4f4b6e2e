package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/votes/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	for _, id := range []string{"1", "2", "go-errors"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/votes/"+id, http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET /votes/%s: status %d", id, rr.Code)
		}
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/votes/{id}", "200")); got < 3 {
		t.Errorf("requests for /votes/{id} = %f, want >= 3", got)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/votes/1", "200")); got != 0 {
		t.Errorf("raw path must not become a label, got %f", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/contact", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.WriteHeader(http.StatusInternalServerError)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	tests := []struct {
		method, path, status string
	}{
		{"POST", "/contact", "400"},
		{"GET", "/health", "503"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.path, http.NoBody))
			if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.path, tc.status)); got < 1 {
				t.Errorf("requests_total{%s %s %s} = %f, want >= 1", tc.method, tc.path, tc.status, got)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-login.php", http.NoBody))

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404")); got < 1 {
		t.Errorf("unmatched requests = %f, want >= 1", got)
	}
}

func TestMiddleware_SkipsListedPaths(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware("/metrics"))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {})

	for range 3 {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metrics", "200")); got != 0 {
		t.Errorf("scrape requests recorded = %f, want 0", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/comments/{id}", "/comments/{id}"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRegisterEngineMetrics_Idempotent(t *testing.T) {
	RegisterEngineMetrics()
	RegisterEngineMetrics()

	VotesTotal.WithLabelValues("essay", "added").Inc()
	if got := testutil.ToFloat64(VotesTotal.WithLabelValues("essay", "added")); got < 1 {
		t.Errorf("votes_total = %f, want >= 1", got)
	}
	SpamDecisionsTotal.WithLabelValues("contact", "hold-for-review").Inc()
	if got := testutil.ToFloat64(SpamDecisionsTotal.WithLabelValues("contact", "hold-for-review")); got < 1 {
		t.Errorf("spam_decisions_total = %f, want >= 1", got)
	}
}
