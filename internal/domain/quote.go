package domain

import (
	"math"
	"time"
)

// DateLayout is the wire and storage format for check-in and check-out dates.
const DateLayout = "2006-01-02"

// Quote is the price breakdown for a stay.
type Quote struct {
	Nights        int `json:"nights"`
	PricePerNight int `json:"pricePerNight"`
	Total         int `json:"total"`
}

// Nights returns the stay length in whole nights, rounded to the nearest day
// and never less than one. A check-out on or before check-in is one night.
func Nights(checkIn, checkOut time.Time) int {
	days := math.Round(checkOut.Sub(checkIn).Hours() / 24)
	if days < 1 {
		return 1
	}
	return int(days)
}

// NewQuote prices a stay at the given nightly rate.
func NewQuote(checkIn, checkOut time.Time, pricePerNight int) Quote {
	n := Nights(checkIn, checkOut)
	return Quote{
		Nights:        n,
		PricePerNight: pricePerNight,
		Total:         n * pricePerNight,
	}
}
