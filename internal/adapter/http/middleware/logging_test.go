package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/infrastructure/logging"
)

func TestLoggingMiddlewarePropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var seen string
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(NewLoggingMiddleware(logger).Wrap)
	r.Get("/x", func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "req-42" {
		t.Fatalf("expected request id in context, got %q", seen)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	if entry["request_id"] != "req-42" || entry["status"] != float64(http.StatusAccepted) || entry["level"] != "info" {
		t.Fatalf("unexpected log entry %v", entry)
	}
}
