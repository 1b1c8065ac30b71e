// Package bookingclient is the guest-facing side of a booking: the form
// state with its field rules, the price summary shown before sending, and
// the HTTP client that posts the request to the booking API.
//
// The server-rendered booking page and the bookctl CLI both use it.
package bookingclient

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/reenamhotel/site/internal/domain"
)

// Guest count bounds accepted by the form.
const (
	MinGuests = 1
	MaxGuests = 6
)

// DefaultRoomType is preselected when no valid room is requested.
const DefaultRoomType = "deluxe"

// RateLookup resolves the nightly online rate for a room type.
type RateLookup interface {
	NightlyRate(roomType string) (int, bool)
}

// Form is the booking form as entered. Dates use the HTML date input format.
type Form struct {
	CheckIn         string `json:"checkIn"`
	CheckOut        string `json:"checkOut"`
	Guests          int    `json:"guests"`
	RoomType        string `json:"roomType"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests"`
}

// NewForm returns the form's initial state: check-in today, check-out
// tomorrow, two guests, and the requested room when it can be booked online.
func NewForm(today time.Time, requestedRoom string, rates RateLookup) Form {
	f := Form{
		CheckIn:  today.Format(domain.DateLayout),
		CheckOut: today.AddDate(0, 0, 1).Format(domain.DateLayout),
		Guests:   2,
		RoomType: DefaultRoomType,
	}
	if requestedRoom != "" {
		if _, ok := rates.NightlyRate(requestedRoom); ok {
			f.RoomType = requestedRoom
		}
	}
	return f
}

// FieldErrors maps a form field (by its JSON name) to a message for the guest.
type FieldErrors map[string]string

// Error lists the failing fields so FieldErrors can be returned as an error.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for _, k := range domain.RequiredFields() {
		if _, ok := fe[k]; ok {
			keys = append(keys, k)
		}
	}
	return "invalid booking form: " + strings.Join(keys, ", ")
}

// Validate checks the field rules. It returns nil when the form can be sent.
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.CheckIn) == "" {
		errs["checkIn"] = "Check-in date is required."
	} else if _, err := parseDate(f.CheckIn); err != nil {
		errs["checkIn"] = "Enter a valid check-in date."
	}
	if strings.TrimSpace(f.CheckOut) == "" {
		errs["checkOut"] = "Check-out date is required."
	} else if _, err := parseDate(f.CheckOut); err != nil {
		errs["checkOut"] = "Enter a valid check-out date."
	}
	if f.Guests < MinGuests || f.Guests > MaxGuests {
		errs["guests"] = fmt.Sprintf("Guests must be between %d and %d.", MinGuests, MaxGuests)
	}
	if strings.TrimSpace(f.RoomType) == "" {
		errs["roomType"] = "Choose a room type."
	}
	if len([]rune(strings.TrimSpace(f.Name))) < 2 {
		errs["name"] = "Please enter your full name."
	}
	if !validEmail(f.Email) {
		errs["email"] = "Please enter a valid email address."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validEmail accepts a bare address such as guest@example.com. Display-name
// forms like "Guest <guest@example.com>" are rejected.
func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// Summary is the price breakdown shown to the guest before sending.
type Summary struct {
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	Nights        int    `json:"nights"`
	Guests        int    `json:"guests"`
	RoomType      string `json:"roomType"`
	PricePerNight int    `json:"pricePerNight"`
	Total         int    `json:"total"`
}

// Summarize prices a valid form. Nights is the rounded day difference,
// never below one; total is nights times the room's nightly rate.
func (f Form) Summarize(rates RateLookup) (Summary, error) {
	if errs := f.Validate(); errs != nil {
		return Summary{}, errs
	}
	rate, ok := rates.NightlyRate(f.RoomType)
	if !ok {
		return Summary{}, FieldErrors{"roomType": "This room cannot be booked online."}
	}

	in, _ := parseDate(f.CheckIn)
	out, _ := parseDate(f.CheckOut)
	q := domain.NewQuote(in, out, rate)

	return Summary{
		CheckIn:       f.CheckIn,
		CheckOut:      f.CheckOut,
		Nights:        q.Nights,
		Guests:        f.Guests,
		RoomType:      f.RoomType,
		PricePerNight: q.PricePerNight,
		Total:         q.Total,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, strings.TrimSpace(s))
}
