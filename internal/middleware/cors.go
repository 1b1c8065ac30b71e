package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler lets the booking form, served from another origin in
// development, call the API. Origins must be exact (scheme and host, no
// trailing slash). Only GET and POST are exposed; staff requests carry
// an Authorization header, and throttled clients need to read Retry-After.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         600,
	})
	return c.Handler
}
