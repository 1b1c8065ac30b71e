package bookingclient_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reenamhotel/site/internal/bookingclient"
	"github.com/reenamhotel/site/internal/catalog"
)

func validForm() bookingclient.Form {
	return bookingclient.Form{
		CheckIn:  "2024-06-01",
		CheckOut: "2024-06-04",
		Guests:   2,
		RoomType: "deluxe",
		Name:     "Tsering Dolma",
		Email:    "tsering@example.com",
	}
}

func TestNewForm_defaults(t *testing.T) {
	today := time.Date(2024, 12, 31, 15, 0, 0, 0, time.UTC)

	f := bookingclient.NewForm(today, "", catalog.MustLoad())

	assert.Equal(t, "2024-12-31", f.CheckIn)
	assert.Equal(t, "2025-01-01", f.CheckOut)
	assert.Equal(t, 2, f.Guests)
	assert.Equal(t, "deluxe", f.RoomType)
	assert.Empty(t, f.Name)
}

func TestNewForm_roomQuery(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rates := catalog.MustLoad()

	assert.Equal(t, "family-suite", bookingclient.NewForm(today, "family-suite", rates).RoomType)
	// Rooms without an online rate keep the default.
	assert.Equal(t, "deluxe", bookingclient.NewForm(today, "economy-single", rates).RoomType)
	assert.Equal(t, "deluxe", bookingclient.NewForm(today, "penthouse", rates).RoomType)
}

func TestForm_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*bookingclient.Form)
		field  string
	}{
		{"missing check-in", func(f *bookingclient.Form) { f.CheckIn = "" }, "checkIn"},
		{"garbled check-out", func(f *bookingclient.Form) { f.CheckOut = "04/06/2024" }, "checkOut"},
		{"no guests", func(f *bookingclient.Form) { f.Guests = 0 }, "guests"},
		{"too many guests", func(f *bookingclient.Form) { f.Guests = 7 }, "guests"},
		{"no room", func(f *bookingclient.Form) { f.RoomType = "" }, "roomType"},
		{"one-letter name", func(f *bookingclient.Form) { f.Name = "T" }, "name"},
		{"missing email", func(f *bookingclient.Form) { f.Email = "" }, "email"},
		{"email without domain", func(f *bookingclient.Form) { f.Email = "tsering@" }, "email"},
		{"email with display name", func(f *bookingclient.Form) { f.Email = "T <t@example.com>" }, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			errs := f.Validate()

			require.NotNil(t, errs)
			assert.Len(t, errs, 1)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestForm_Validate_validForm(t *testing.T) {
	f := validForm()
	f.Guests = 6

	assert.Nil(t, f.Validate())
}

func TestFieldErrors_Error(t *testing.T) {
	errs := bookingclient.FieldErrors{"email": "x", "checkIn": "y"}

	assert.Equal(t, "invalid booking form: checkIn, email", errs.Error())
}

func TestForm_Summarize(t *testing.T) {
	tests := []struct {
		name      string
		checkIn   string
		checkOut  string
		roomType  string
		wantNight int
		wantTotal int
	}{
		{"three nights deluxe", "2024-06-01", "2024-06-04", "deluxe", 3, 9000},
		{"same day is one night", "2024-06-01", "2024-06-01", "superior-suite", 1, 6600},
		{"check-out before check-in is one night", "2024-06-05", "2024-06-01", "deluxe-economy", 1, 1800},
		{"across month end", "2024-01-30", "2024-02-02", "family-suite", 3, 14400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.CheckIn, f.CheckOut, f.RoomType = tt.checkIn, tt.checkOut, tt.roomType

			s, err := f.Summarize(catalog.MustLoad())

			require.NoError(t, err)
			assert.Equal(t, tt.wantNight, s.Nights)
			assert.Equal(t, tt.wantTotal, s.Total)
			assert.Equal(t, s.Nights*s.PricePerNight, s.Total)
			assert.Equal(t, f.Guests, s.Guests)
		})
	}
}

func TestForm_Summarize_invalid(t *testing.T) {
	f := validForm()
	f.Email = ""

	_, err := f.Summarize(catalog.MustLoad())

	var fe bookingclient.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "email")
}

func TestForm_Summarize_notBookable(t *testing.T) {
	f := validForm()
	f.RoomType = "deluxe-single"

	_, err := f.Summarize(catalog.MustLoad())

	var fe bookingclient.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "roomType")
}
