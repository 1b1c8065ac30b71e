package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/reenamhotel/site/internal/catalog"
	"github.com/reenamhotel/site/internal/domain"
	"github.com/reenamhotel/site/internal/handler"
)

// ---- mock BookingServicer --------------------------------------------------

type mockBookingServicer struct {
	submit    func(ctx context.Context, req domain.BookingRequest) (domain.Booking, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)
}

func (m *mockBookingServicer) Submit(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	return m.submit(ctx, req)
}
func (m *mockBookingServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time check: mockBookingServicer must satisfy handler.BookingServicer.
var _ handler.BookingServicer = (*mockBookingServicer)(nil)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHTTPHandler wires a Server through the real chi routes. Nil services are
// fine for tests that never reach them.
func newHTTPHandler(bookings handler.BookingServicer, export handler.ExportServicer, opts handler.RouteOptions) http.Handler {
	srv := handler.NewServer(bookings, export, catalog.MustLoad(), quietLogger())
	return handler.NewRouter(srv, opts)
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
