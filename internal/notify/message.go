// Package notify emails hotel staff when a booking request arrives.
//
// Notification is best effort. A Dispatcher sends in the background with a
// few retries, logs the final failure, and never reports back to the HTTP
// request that triggered it.
package notify

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/reenamhotel/site/internal/domain"
)

// Notifier delivers one booking notification synchronously.
type Notifier interface {
	Send(ctx context.Context, b domain.Booking) error
}

// Noop is the Notifier used when no mail transport is configured.
type Noop struct{}

// Send does nothing.
func (Noop) Send(context.Context, domain.Booking) error { return nil }

// Message is a composed plain-text notification.
type Message struct {
	Subject string
	Text    string
}

// Compose renders the staff notification for a booking.
func Compose(b domain.Booking) Message {
	name := b.Name
	if strings.TrimSpace(name) == "" {
		name = "Guest"
	}

	lines := []string{
		"New booking request from Reenam Hotel website",
		"",
		"Name: " + b.Name,
		"Email: " + b.Email,
		"Phone: " + orDash(b.Phone),
		"Room type: " + b.RoomType,
		"Guests: " + strconv.Itoa(b.Guests),
		"Check-in: " + b.CheckIn.Format(domain.DateLayout),
		"Check-out: " + b.CheckOut.Format(domain.DateLayout),
		"Nights: " + strconv.Itoa(b.Nights),
		"Price per night: " + strconv.Itoa(b.PricePerNight),
		"Total: " + strconv.Itoa(b.Total),
		"",
		"Special requests:",
		orDash(b.SpecialRequests),
	}

	return Message{
		Subject: "New booking request - " + name,
		Text:    strings.Join(lines, "\n"),
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// permanentError marks a send failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the Dispatcher gives up without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}
