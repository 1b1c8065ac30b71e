package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reenamhotel/site/internal/catalog"
	"github.com/reenamhotel/site/internal/domain"
	"github.com/reenamhotel/site/internal/repo"
	"github.com/reenamhotel/site/internal/service"
)

// mockBookingRepo is a hand-written test double for repo.BookingRepo.
// Each method is a function field; set only the ones your test needs.
type mockBookingRepo struct {
	appendFn    func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	list        func(ctx context.Context) ([]domain.Booking, error)
	listPaged   func(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)
	appendCalls []domain.Booking
}

func (m *mockBookingRepo) Append(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	m.appendCalls = append(m.appendCalls, b)
	if m.appendFn == nil {
		return b, nil
	}
	return m.appendFn(ctx, b)
}
func (m *mockBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	return m.list(ctx)
}
func (m *mockBookingRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time check: mockBookingRepo must satisfy repo.BookingRepo.
var _ repo.BookingRepo = (*mockBookingRepo)(nil)

// mockNotifier records Notify calls through testify/mock.
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, b domain.Booking) {
	m.Called(ctx, b)
}

var _ service.BookingNotifier = (*mockNotifier)(nil)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2024, 5, 20, 9, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

func validRequest() domain.BookingRequest {
	return domain.BookingRequest{
		CheckIn:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Guests:   2,
		RoomType: "deluxe",
		Name:     "Tsering Dolma",
		Email:    "tsering@example.com",
	}
}

func newBookingService(r repo.BookingRepo, n service.BookingNotifier, log *slog.Logger) *service.BookingService {
	opts := []service.Option{service.WithClock(func() time.Time { return fixedNow })}
	if log != nil {
		opts = append(opts, service.WithLogger(log))
	}
	return service.NewBookingService(r, catalog.MustLoad(), n, opts...)
}

func expectNotify(n *mockNotifier) {
	n.On("Notify", mock.Anything, mock.AnythingOfType("domain.Booking")).Return()
}

// ---- Submit tests ----------------------------------------------------------

func TestBookingService_Submit_Valid(t *testing.T) {
	r := &mockBookingRepo{}
	n := new(mockNotifier)
	expectNotify(n)
	svc := newBookingService(r, n, nil)

	got, err := svc.Submit(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, fixedNow.UTC(), got.CreatedAt)
	assert.Equal(t, 3, got.Nights)
	assert.Equal(t, 3000, got.PricePerNight)
	assert.Equal(t, 9000, got.Total)

	require.Len(t, r.appendCalls, 1)
	assert.Equal(t, got, r.appendCalls[0])
	n.AssertCalled(t, "Notify", mock.Anything, got)
}

func TestBookingService_Submit_RecomputesClientQuote(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	n := new(mockNotifier)
	expectNotify(n)
	svc := newBookingService(&mockBookingRepo{}, n, log)

	req := validRequest()
	req.Nights, req.PricePerNight, req.Total = 3, 1, 3 // tampered client price

	got, err := svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 9000, got.Total)
	assert.Contains(t, logs.String(), "client quote differs from rate table")
}

func TestBookingService_Submit_SameDayStayIsOneNight(t *testing.T) {
	n := new(mockNotifier)
	expectNotify(n)
	svc := newBookingService(&mockBookingRepo{}, n, nil)

	req := validRequest()
	req.RoomType = "superior-suite"
	req.CheckOut = req.CheckIn

	got, err := svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, got.Nights)
	assert.Equal(t, 6600, got.Total)
}

func TestBookingService_Submit_MissingFields(t *testing.T) {
	cases := map[string]func(*domain.BookingRequest){
		"checkIn":  func(r *domain.BookingRequest) { r.CheckIn = time.Time{} },
		"checkOut": func(r *domain.BookingRequest) { r.CheckOut = time.Time{} },
		"guests":   func(r *domain.BookingRequest) { r.Guests = 0 },
		"roomType": func(r *domain.BookingRequest) { r.RoomType = "" },
		"name":     func(r *domain.BookingRequest) { r.Name = "   " },
		"email":    func(r *domain.BookingRequest) { r.Email = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			r := &mockBookingRepo{}
			n := new(mockNotifier)
			svc := newBookingService(r, n, nil)

			req := validRequest()
			mutate(&req)
			_, err := svc.Submit(context.Background(), req)

			assert.ErrorIs(t, err, domain.ErrMissingFields)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, field)
			// Nothing is stored or sent for a rejected request.
			assert.Empty(t, r.appendCalls)
			n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestBookingService_Submit_UnknownRoomType(t *testing.T) {
	r := &mockBookingRepo{}
	svc := newBookingService(r, new(mockNotifier), nil)

	req := validRequest()
	req.RoomType = "deluxe-single" // listed but not bookable online

	_, err := svc.Submit(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrUnknownRoomType)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, r.appendCalls)
}

func TestBookingService_Submit_RepoErrorIsSwallowed(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	r := &mockBookingRepo{
		appendFn: func(_ context.Context, _ domain.Booking) (domain.Booking, error) {
			return domain.Booking{}, errors.New("disk full")
		},
	}
	n := new(mockNotifier)
	expectNotify(n)
	svc := newBookingService(r, n, log)

	got, err := svc.Submit(context.Background(), validRequest())

	// The guest still gets a success; staff are still notified.
	require.NoError(t, err)
	assert.Equal(t, "Tsering Dolma", got.Name)
	n.AssertNumberOfCalls(t, "Notify", 1)
	assert.Contains(t, logs.String(), "disk full")
}

func TestBookingService_Submit_TrimsFields(t *testing.T) {
	n := new(mockNotifier)
	expectNotify(n)
	svc := newBookingService(&mockBookingRepo{}, n, nil)

	req := validRequest()
	req.RoomType = " deluxe "
	req.Email = " tsering@example.com\n"

	got, err := svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "deluxe", got.RoomType)
	assert.Equal(t, "tsering@example.com", got.Email)
}

// ---- ListPaged tests -------------------------------------------------------

func TestBookingService_ListPaged(t *testing.T) {
	want := []domain.Booking{{ID: uuid.New()}, {ID: uuid.New()}}
	var gotParams domain.PaginationParams
	r := &mockBookingRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
			gotParams = p
			return want, 42, nil
		},
	}
	svc := newBookingService(r, new(mockNotifier), nil)

	got, total, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.EqualValues(t, 42, total)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 2}, gotParams)
}

func TestBookingService_ListPaged_Empty(t *testing.T) {
	r := &mockBookingRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Booking, int64, error) {
			return nil, 0, nil
		},
	}
	svc := newBookingService(r, new(mockNotifier), nil)

	got, _, err := svc.ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	// Should return an empty slice, not nil, so the JSON body is [].
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBookingService_ListPaged_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockBookingRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Booking, int64, error) {
			return nil, 0, repoErr
		},
	}
	svc := newBookingService(r, new(mockNotifier), nil)

	_, _, err := svc.ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))

	assert.ErrorIs(t, err, repoErr)
}
