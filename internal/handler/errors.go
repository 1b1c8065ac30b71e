package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reenamhotel/site/internal/domain"
)

// Messages returned to API clients. The booking form shows them verbatim.
const (
	msgBookingReceived = "Booking request received. We will contact you shortly."
	msgMissingFields   = "Missing required booking fields."
	msgInvalidFields   = "Invalid booking fields."
	msgUnknownRoomType = "Unknown room type."
	msgMalformedJSON   = "Request body must be a JSON object."
	msgBodyTooLarge    = "Request body too large."
	msgInternal        = "Internal server error."
	msgNoRoute         = "Not found."
	msgNoMethod        = "Method not allowed."
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// MessageResponse is the body of a successful booking submission.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, ErrorResponse{Message: msg, Errors: details})
}

// respondError maps a service error to a status code and body.
// Unrecognised errors are logged and become a generic 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		writeError(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, domain.ErrUnknownRoomType):
		writeError(w, http.StatusBadRequest, msgUnknownRoomType)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, msgInvalidFields)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
