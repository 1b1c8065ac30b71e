// Package handler implements the HTTP handlers for the Reenam Hotel booking API.
// All handlers are methods on Server. They are split into domain-specific
// files (health.go, booking.go, room.go, export.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reenamhotel/site/internal/catalog"
	"github.com/reenamhotel/site/internal/domain"
)

// BookingServicer defines the booking operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching storage or mail.
type BookingServicer interface {
	Submit(ctx context.Context, req domain.BookingRequest) (domain.Booking, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)
}

// ExportServicer produces the staff booking export.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// RoomCatalog is the read-only room content the API exposes.
// *catalog.Catalog satisfies it.
type RoomCatalog interface {
	Rooms() []domain.Room
	Room(slug string) (domain.Room, error)
	Rates() catalog.RateTable
}

// Server holds the dependencies of every API handler.
type Server struct {
	bookings BookingServicer
	export   ExportServicer
	rooms    RoomCatalog
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(bookings BookingServicer, export ExportServicer, rooms RoomCatalog, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{bookings: bookings, export: export, rooms: rooms, log: log}
}

// RouteOptions carries the per-route middleware chosen in main.go.
type RouteOptions struct {
	// Staff guards the staff endpoints. Nil leaves them open.
	Staff func(http.Handler) http.Handler
	// Intake throttles POST /api/bookings. Nil disables throttling.
	Intake func(http.Handler) http.Handler
}

// Mount registers every API route on r.
func (s *Server) Mount(r chi.Router, opts RouteOptions) {
	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		// JSON errors here, whatever the site router does for unknown pages.
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, msgNoRoute)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, msgNoMethod)
		})

		r.Get("/rooms", s.ListRooms)
		r.Get("/rooms/{slug}", s.GetRoom)
		r.Get("/rates", s.GetRates)

		r.With(optional(opts.Intake)).Post("/bookings", s.CreateBooking)

		r.Group(func(r chi.Router) {
			r.Use(optional(opts.Staff))
			r.Get("/bookings", s.ListBookings)
			r.Get("/bookings/export", s.GetExport)
		})
	})
}

// NewRouter returns a chi router with only the API routes mounted.
// main.go adds global middleware and the site pages on its own router.
func NewRouter(s *Server, opts RouteOptions) chi.Router {
	r := chi.NewRouter()
	s.Mount(r, opts)
	return r
}

func optional(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
