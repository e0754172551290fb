package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCollapsesDynamicSegments(t *testing.T) {
	c := NewCollectorWith("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(c.Middleware)
	r.HandleFunc("/api/v1/photos/{photoId}/image", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/photos/img-%d/image", i), nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
	}

	if got := testutil.CollectAndCount(c.httpRequestsTotal); got != 1 {
		t.Errorf("request counter series = %d, want 1", got)
	}

	counted := testutil.ToFloat64(
		c.httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/photos/{photoId}/image", "2xx"))
	if counted != 50 {
		t.Errorf("requests for route template = %v, want 50", counted)
	}
}

func TestMiddlewareRecordsStatusCategory(t *testing.T) {
	c := NewCollectorWith("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(c.Middleware)
	r.HandleFunc("/api/v1/state", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	counted := testutil.ToFloat64(
		c.httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/state", "5xx"))
	if counted != 1 {
		t.Errorf("5xx requests = %v, want 1", counted)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "short path unchanged",
			path:     "/health",
			expected: "/health",
		},
		{
			name:     "long path capped",
			path:     "/some/very/long/unmatched/path/segment",
			expected: "/some/very/long/unmatched/path" + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.expected {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
