package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	h := RequestID(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated request id in the response headers")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied-id" {
		t.Fatalf("client-supplied id must be echoed, got %q", got)
	}
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	h := RateLimit(okHandler())

	var got429 bool
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
		req.RemoteAddr = "203.0.113.7:51000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			got429 = true
			break
		}
	}
	if !got429 {
		t.Fatal("expected a 429 once the client burst was exhausted")
	}

	// A different client keeps its own budget.
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	req.RemoteAddr = "203.0.113.8:51000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("a fresh client must not inherit another client's budget, got %d", rec.Code)
	}
}
