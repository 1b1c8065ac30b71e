package domain

import "time"

// ExportRow is a single row in the staff booking export.
// It is a flat, string-oriented view of a Booking so that the CSV writer and
// the JSON encoder can share one shape.
type ExportRow struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	CheckIn         string    `json:"checkIn"`  // "2006-01-02"
	CheckOut        string    `json:"checkOut"` // "2006-01-02"
	Nights          int       `json:"nights"`
	Guests          int       `json:"guests"`
	RoomType        string    `json:"roomType"`
	PricePerNight   int       `json:"pricePerNight"`
	Total           int       `json:"total"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
}

// NewExportRow flattens a booking into an export row.
func NewExportRow(b Booking) ExportRow {
	return ExportRow{
		ID:              b.ID.String(),
		CreatedAt:       b.CreatedAt,
		CheckIn:         b.CheckIn.Format(DateLayout),
		CheckOut:        b.CheckOut.Format(DateLayout),
		Nights:          b.Nights,
		Guests:          b.Guests,
		RoomType:        b.RoomType,
		PricePerNight:   b.PricePerNight,
		Total:           b.Total,
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		SpecialRequests: b.SpecialRequests,
	}
}
