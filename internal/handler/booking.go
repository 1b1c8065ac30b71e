package handler

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/xeipuuv/gojsonschema"

	"github.com/reenamhotel/site/internal/domain"
)

//go:embed booking_request.schema.json
var bookingRequestSchema []byte

// bookingSchema is compiled once; the embedded document is fixed at build time.
var bookingSchema = mustCompileSchema(bookingRequestSchema)

func mustCompileSchema(doc []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		panic("handler: invalid embedded schema: " + err.Error())
	}
	return s
}

// falsyErrorTypes are the schema violations a missing, null, empty, or zero
// value produces.
var falsyErrorTypes = map[string]bool{
	"required":     true,
	"invalid_type": true,
	"string_gte":   true,
	"number_gte":   true,
}

// bookingRequestBody is the JSON payload posted by the booking form.
// The quote fields are accepted but only used to detect a stale client rate
// table; the server always prices from its own table.
type bookingRequestBody struct {
	CheckIn         openapi_types.Date `json:"checkIn"`
	CheckOut        openapi_types.Date `json:"checkOut"`
	Guests          float64            `json:"guests"`
	RoomType        string             `json:"roomType"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Phone           *string            `json:"phone"`
	SpecialRequests *string            `json:"specialRequests"`
	Nights          *float64           `json:"nights"`
	PricePerNight   *float64           `json:"pricePerNight"`
	Total           *float64           `json:"total"`
}

// BookingResponse is one booking in the staff listing.
type BookingResponse struct {
	ID              uuid.UUID          `json:"id"`
	CheckIn         openapi_types.Date `json:"checkIn"`
	CheckOut        openapi_types.Date `json:"checkOut"`
	Guests          int                `json:"guests"`
	RoomType        string             `json:"roomType"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone,omitempty"`
	SpecialRequests string             `json:"specialRequests,omitempty"`
	Nights          int                `json:"nights"`
	PricePerNight   int                `json:"pricePerNight"`
	Total           int                `json:"total"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// BookingListResponse is the body of GET /api/bookings.
type BookingListResponse struct {
	Data       []BookingResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// CreateBooking handles POST /api/bookings.
//
// A payload missing any required field, or carrying a falsy one, gets 400
// with "Missing required booking fields.". Otherwise the booking is accepted
// with 201 whatever happens to persistence or staff email afterwards.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgMalformedJSON)
		return
	}

	req, status, body := decodeBookingRequest(raw)
	if status != 0 {
		writeJSON(w, status, body)
		return
	}

	if _, err := s.bookings.Submit(r.Context(), req); err != nil {
		s.respondError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: msgBookingReceived})
}

// decodeBookingRequest validates raw against the booking schema and maps it
// to a domain request. A non-zero status means the request is rejected with
// the returned body.
func decodeBookingRequest(raw []byte) (domain.BookingRequest, int, ErrorResponse) {
	if len(raw) == 0 {
		// An empty body carries no fields at all.
		raw = []byte("{}")
	}
	if !json.Valid(raw) {
		return domain.BookingRequest{}, http.StatusBadRequest, ErrorResponse{Message: msgMalformedJSON}
	}

	result, err := bookingSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return domain.BookingRequest{}, http.StatusBadRequest, ErrorResponse{Message: msgMalformedJSON}
	}
	if !result.Valid() {
		msg := msgInvalidFields
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			if falsyErrorTypes[e.Type()] {
				msg = msgMissingFields
			}
			details = append(details, describe(e))
		}
		return domain.BookingRequest{}, http.StatusBadRequest, ErrorResponse{Message: msg, Errors: details}
	}

	var body bookingRequestBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.BookingRequest{}, http.StatusBadRequest, ErrorResponse{Message: msgInvalidFields, Errors: []string{err.Error()}}
	}
	return body.toDomain(), 0, ErrorResponse{}
}

func describe(e gojsonschema.ResultError) string {
	if e.Field() == "(root)" || e.Field() == "" {
		return e.Description()
	}
	return fmt.Sprintf("%s: %s", e.Field(), e.Description())
}

func (b bookingRequestBody) toDomain() domain.BookingRequest {
	req := domain.BookingRequest{
		CheckIn:  b.CheckIn.Time,
		CheckOut: b.CheckOut.Time,
		Guests:   int(b.Guests),
		RoomType: b.RoomType,
		Name:     b.Name,
		Email:    b.Email,
	}
	if b.Phone != nil {
		req.Phone = *b.Phone
	}
	if b.SpecialRequests != nil {
		req.SpecialRequests = *b.SpecialRequests
	}
	if b.Nights != nil {
		req.Nights = int(*b.Nights)
	}
	if b.PricePerNight != nil {
		req.PricePerNight = int(*b.PricePerNight)
	}
	if b.Total != nil {
		req.Total = int(*b.Total)
	}
	return req
}

// ListBookings handles GET /api/bookings.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	page, err := optionalInt(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid page parameter.")
		return
	}
	limit, err := optionalInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit parameter.")
		return
	}

	params := domain.NewPaginationParams(page, limit)
	bookings, total, err := s.bookings.ListPaged(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}

	data := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		data[i] = bookingToResponse(b)
	}
	writeJSON(w, http.StatusOK, BookingListResponse{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// optionalInt parses an integer query parameter. Absent means nil.
func optionalInt(r *http.Request, key string) (*int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// --- mapping helpers --------------------------------------------------------

func bookingToResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		CheckIn:         openapi_types.Date{Time: b.CheckIn},
		CheckOut:        openapi_types.Date{Time: b.CheckOut},
		Guests:          b.Guests,
		RoomType:        b.RoomType,
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		SpecialRequests: b.SpecialRequests,
		Nights:          b.Nights,
		PricePerNight:   b.PricePerNight,
		Total:           b.Total,
		CreatedAt:       b.CreatedAt,
	}
}
