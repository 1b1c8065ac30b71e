package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RoomSummary is one entry of GET /api/rooms.
type RoomSummary struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	ShortTagline string `json:"shortTagline"`
	HeroImage    string `json:"heroImage"`
	NightlyRate  int    `json:"nightlyRate,omitempty"`
	Bookable     bool   `json:"bookable"`
}

// ListRooms handles GET /api/rooms.
func (s *Server) ListRooms(w http.ResponseWriter, _ *http.Request) {
	rooms := s.rooms.Rooms()
	out := make([]RoomSummary, len(rooms))
	for i, r := range rooms {
		out[i] = RoomSummary{
			Slug:         r.Slug,
			Name:         r.Name,
			ShortTagline: r.ShortTagline,
			HeroImage:    r.HeroImage,
			NightlyRate:  r.NightlyRate,
			Bookable:     r.Bookable(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRoom handles GET /api/rooms/{slug}.
func (s *Server) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.rooms.Room(chi.URLParam(r, "slug"))
	if err != nil {
		s.respondError(w, r, err, "Room not found.")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// GetRates handles GET /api/rates: the online booking rate per room type.
func (s *Server) GetRates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.rooms.Rates())
}
