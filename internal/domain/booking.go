// Package domain contains the core data types for the Reenam Hotel site.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, site).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingRequest is what a guest submits from the booking form.
// Nights, PricePerNight, and Total are the quote fields; the service
// overwrites them from the authoritative rate table before persisting.
type BookingRequest struct {
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	RoomType        string
	Name            string
	Email           string
	Phone           string
	SpecialRequests string

	Nights        int
	PricePerNight int
	Total         int
}

// Booking is a persisted booking request.
// It is never mutated after it has been appended to the store.
type Booking struct {
	ID uuid.UUID
	BookingRequest
	CreatedAt time.Time
}

// requiredFields lists the payload keys that must be present and non-falsy,
// in the order they are reported back to callers.
var requiredFields = []string{"checkIn", "checkOut", "guests", "roomType", "name", "email"}

// RequiredFields returns the JSON keys of the booking payload that must be set.
func RequiredFields() []string {
	out := make([]string, len(requiredFields))
	copy(out, requiredFields)
	return out
}

// MissingFields reports the required fields that are absent or zero.
// Whitespace-only strings count as missing.
func (r BookingRequest) MissingFields() []string {
	var missing []string
	if r.CheckIn.IsZero() {
		missing = append(missing, "checkIn")
	}
	if r.CheckOut.IsZero() {
		missing = append(missing, "checkOut")
	}
	if r.Guests <= 0 {
		missing = append(missing, "guests")
	}
	if strings.TrimSpace(r.RoomType) == "" {
		missing = append(missing, "roomType")
	}
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Email) == "" {
		missing = append(missing, "email")
	}
	return missing
}

// WithQuote returns a copy of r carrying the given quote.
func (r BookingRequest) WithQuote(q Quote) BookingRequest {
	r.Nights = q.Nights
	r.PricePerNight = q.PricePerNight
	r.Total = q.Total
	return r
}

// Quote returns the quote fields currently carried by r.
func (r BookingRequest) Quote() Quote {
	return Quote{Nights: r.Nights, PricePerNight: r.PricePerNight, Total: r.Total}
}
