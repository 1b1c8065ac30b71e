// Package service contains the business logic for the Reenam Hotel booking API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// notifier calls. Storage details stay behind repo interfaces.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reenamhotel/site/internal/domain"
	"github.com/reenamhotel/site/internal/repo"
)

// RateLookup resolves the nightly online rate for a room type.
// *catalog.Catalog and catalog.RateTable satisfy it.
type RateLookup interface {
	NightlyRate(roomType string) (int, bool)
}

// BookingNotifier hands a persisted booking to staff notification.
// Implementations must not block the caller on delivery.
type BookingNotifier interface {
	Notify(ctx context.Context, b domain.Booking)
}

// BookingService implements booking intake and the staff listing.
type BookingService struct {
	repo     repo.BookingRepo
	rates    RateLookup
	notifier BookingNotifier
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a BookingService.
type Option func(*BookingService)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *BookingService) { s.now = now }
}

// WithLogger sets the logger for swallowed persistence errors and quote
// mismatches. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *BookingService) { s.log = log }
}

// NewBookingService constructs a BookingService.
func NewBookingService(r repo.BookingRepo, rates RateLookup, n BookingNotifier, opts ...Option) *BookingService {
	s := &BookingService{
		repo:     r,
		rates:    rates,
		notifier: n,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit accepts a booking request.
//
// It returns domain.ErrMissingFields or domain.ErrUnknownRoomType (both
// wrapping domain.ErrValidation) for bad input. Once the request is valid,
// Submit always succeeds: a failed append is logged and the booking is still
// handed to the notifier.
func (s *BookingService) Submit(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	req = normalize(req)

	if missing := req.MissingFields(); len(missing) > 0 {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Submit: %w: %s",
			domain.ErrMissingFields, strings.Join(missing, ", "))
	}

	rate, ok := s.rates.NightlyRate(req.RoomType)
	if !ok {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Submit: %w: %q",
			domain.ErrUnknownRoomType, req.RoomType)
	}

	quote := domain.NewQuote(req.CheckIn, req.CheckOut, rate)
	if client := req.Quote(); client != (domain.Quote{}) && client != quote {
		s.log.WarnContext(ctx, "client quote differs from rate table",
			"room_type", req.RoomType,
			"client_total", client.Total,
			"total", quote.Total,
		)
	}

	b := domain.Booking{
		ID:             uuid.New(),
		BookingRequest: req.WithQuote(quote),
		CreatedAt:      s.now().UTC(),
	}

	if _, err := s.repo.Append(ctx, b); err != nil {
		s.log.ErrorContext(ctx, "error saving booking", "booking_id", b.ID, "error", err)
	}

	s.notifier.Notify(ctx, b)
	return b, nil
}

// ListPaged returns one page of bookings, newest first, and the total count.
func (s *BookingService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	bookings, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.BookingService.ListPaged: %w", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, total, nil
}

// normalize trims surrounding whitespace from the free-text fields.
func normalize(r domain.BookingRequest) domain.BookingRequest {
	r.RoomType = strings.TrimSpace(r.RoomType)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.SpecialRequests = strings.TrimSpace(r.SpecialRequests)
	return r
}
