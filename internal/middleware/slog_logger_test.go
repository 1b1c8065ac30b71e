package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reenamhotel/site/internal/middleware"
)

// logLine runs one request through NewSlogLogger around next and returns the
// decoded log entry.
func logLine(t *testing.T, next http.HandlerFunc, req *http.Request) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	h := middleware.NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))(next)

	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSlogLogger_bookingSubmission(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`))
	req.RemoteAddr = "203.0.113.9:51000"
	// chimiddleware.RequestID normally puts the id there.
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42"))

	entry := logLine(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}, req)

	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/bookings", entry["path"])
	assert.EqualValues(t, http.StatusCreated, entry["status"])
	assert.EqualValues(t, len(`{"message":"ok"}`), entry["bytes"])
	assert.Equal(t, "203.0.113.9:51000", entry["remote_addr"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Contains(t, entry, "duration_ms")
}

func TestSlogLogger_levelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusFound, "INFO"},
		{http.StatusBadRequest, "WARN"},
		{http.StatusTooManyRequests, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			entry := logLine(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}, httptest.NewRequest(http.MethodGet, "/gallery", nil))

			assert.Equal(t, tc.level, entry["level"])
		})
	}
}

// A handler that never writes is reported as 200, which is what net/http sends.
func TestSlogLogger_implicitOK(t *testing.T) {
	entry := logLine(t, func(http.ResponseWriter, *http.Request) {}, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.Equal(t, "INFO", entry["level"])
}
