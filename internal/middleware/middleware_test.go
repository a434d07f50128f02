package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestID_GeneratesID(t *testing.T) {
	var seen string
	handler := RequestID(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/session", nil))

	if seen == "" {
		t.Fatal("Expected request id in context")
	}
	if got := rr.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("Expected header %s to match context id %s", got, seen)
	}
	if rr.Code != http.StatusTeapot {
		t.Errorf("Expected status to pass through, got %d", rr.Code)
	}
}

func TestRequestID_KeepsIncomingID(t *testing.T) {
	var seen string
	handler := RequestID(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "abc-123" {
		t.Errorf("Expected incoming id 'abc-123', got '%s'", seen)
	}
}
