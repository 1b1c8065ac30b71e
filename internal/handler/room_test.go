package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reenamhotel/site/internal/domain"
	"github.com/reenamhotel/site/internal/handler"
)

func TestListRooms(t *testing.T) {
	h := newHTTPHandler(nil, nil, handler.RouteOptions{})

	rec := do(h, http.MethodGet, "/api/rooms", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var rooms []handler.RoomSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rooms))
	require.Len(t, rooms, 10)

	bySlug := make(map[string]handler.RoomSummary, len(rooms))
	for _, r := range rooms {
		bySlug[r.Slug] = r
	}
	assert.True(t, bySlug["deluxe"].Bookable)
	assert.Equal(t, 3000, bySlug["deluxe"].NightlyRate)
	assert.False(t, bySlug["economy-single"].Bookable)
}

func TestGetRoom(t *testing.T) {
	h := newHTTPHandler(nil, nil, handler.RouteOptions{})

	rec := do(h, http.MethodGet, "/api/rooms/superior-suite", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var room domain.Room
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&room))
	assert.Equal(t, "superior-suite", room.Slug)
	assert.Equal(t, 6600, room.NightlyRate)
}

func TestGetRoom_NotFound(t *testing.T) {
	h := newHTTPHandler(nil, nil, handler.RouteOptions{})

	rec := do(h, http.MethodGet, "/api/rooms/penthouse", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Room not found."}`, rec.Body.String())
}

func TestGetRates(t *testing.T) {
	h := newHTTPHandler(nil, nil, handler.RouteOptions{})

	rec := do(h, http.MethodGet, "/api/rates", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var rates map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rates))
	assert.Len(t, rates, 7)
	assert.Equal(t, 5400, rates["superior-deluxe-queen"])
}
