package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// NewBearerAuth guards staff endpoints with a shared token sent as
// "Authorization: Bearer <token>".
//
// With an empty token the staff endpoints are disabled and answer 404, so an
// unconfigured deployment never exposes guest data.
func NewBearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				writeMessage(w, http.StatusNotFound, "Not found.")
				return
			}

			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(token)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="staff"`)
				writeMessage(w, http.StatusUnauthorized, "Unauthorized.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
