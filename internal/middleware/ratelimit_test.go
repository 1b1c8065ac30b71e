package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reenamhotel/site/internal/middleware"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doFrom(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestRateLimiter_burstThenReject uses a refill rate slow enough that no
// token comes back during the test.
func TestRateLimiter_burstThenReject(t *testing.T) {
	h := middleware.NewRateLimiter(0.001, 2, quietLogger()).Handler(okHandler)

	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:2222").Code)

	rec := doFrom(h, "10.0.0.1:3333")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"Too many requests. Please try again shortly."}`, rec.Body.String())
}

func TestRateLimiter_clientsAreIndependent(t *testing.T) {
	h := middleware.NewRateLimiter(0.001, 1, quietLogger()).Handler(okHandler)

	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusTooManyRequests, doFrom(h, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.2:1111").Code)
}

func TestRateLimiter_disabled(t *testing.T) {
	h := middleware.NewRateLimiter(0, 1, quietLogger()).Handler(okHandler)

	for range 5 {
		assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1111").Code)
	}
}
