package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested resource (room, page) does not
// exist in the catalog or store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when a booking fails
// business rule validation (missing required field, unknown room type).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrMissingFields is returned when a required booking field is absent or
// falsy. It wraps ErrValidation.
var ErrMissingFields = fmt.Errorf("%w: missing required booking fields", ErrValidation)

// ErrUnknownRoomType is returned when a booking names a room type with no
// online rate. It wraps ErrValidation.
var ErrUnknownRoomType = fmt.Errorf("%w: unknown room type", ErrValidation)
