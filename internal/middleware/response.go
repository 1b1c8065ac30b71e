package middleware

import (
	"encoding/json"
	"net/http"
)

// writeMessage writes the API's {"message": ...} error body.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
