package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reenamhotel/site/internal/catalog"
	"github.com/reenamhotel/site/internal/domain"
)

// TestLoad_rateTable verifies the online booking rates shipped in the
// embedded catalog. The booking form and the intake endpoint both price
// from this table, so a change here is a pricing change.
func TestLoad_rateTable(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	want := catalog.RateTable{
		"deluxe":                3000,
		"deluxe-economy":        1800,
		"deluxe-triple":         3600,
		"family-suite":          4800,
		"superior-deluxe":       4800,
		"superior-deluxe-queen": 5400,
		"superior-suite":        6600,
	}
	if diff := cmp.Diff(want, c.Rates()); diff != "" {
		t.Errorf("rate table mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_NightlyRate(t *testing.T) {
	c := catalog.MustLoad()

	rate, ok := c.NightlyRate("deluxe")
	assert.True(t, ok)
	assert.Equal(t, 3000, rate)

	// Single-occupancy variants are listed but not bookable online.
	_, ok = c.NightlyRate("deluxe-single")
	assert.False(t, ok)

	_, ok = c.NightlyRate("penthouse")
	assert.False(t, ok)
}

func TestCatalog_Room(t *testing.T) {
	c := catalog.MustLoad()

	r, err := c.Room("family-suite")
	require.NoError(t, err)
	assert.Equal(t, "Family Suite", r.Name)
	assert.Len(t, r.Photos, 4)
	assert.NotEmpty(t, r.Amenities)

	// YAML aliases must expand into full amenity lists.
	single, err := c.Room("deluxe-single")
	require.NoError(t, err)
	deluxe, err := c.Room("deluxe")
	require.NoError(t, err)
	assert.Equal(t, deluxe.Amenities, single.Amenities)

	_, err = c.Room("penthouse")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_Siblings(t *testing.T) {
	c := catalog.MustLoad()

	siblings := c.Siblings("deluxe")

	assert.Len(t, siblings, len(c.Rooms())-1)
	for _, r := range siblings {
		assert.NotEqual(t, "deluxe", r.Slug)
	}
}

func TestCatalog_content(t *testing.T) {
	c := catalog.MustLoad()

	assert.Len(t, c.Hero(), 4)
	assert.Len(t, c.Banners(), 3)
	assert.Len(t, c.Offers(), 3)
	assert.Len(t, c.Gallery(), 34)
	assert.Len(t, c.ChildPolicy(), 3)
	assert.Equal(t, "Reenam Hotel", c.Hotel().Name)

	for _, slug := range []string{"dining", "facilities", "contact", "experience-ladakh", "attractions", "packages"} {
		p, err := c.Page(slug)
		require.NoError(t, err, slug)
		assert.NotEmpty(t, p.Title, slug)
	}
	_, err := c.Page("spa")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParse_rejectsDuplicateSlugs(t *testing.T) {
	data := []byte(`
rooms:
  - slug: deluxe
    nightlyRate: 3000
  - slug: deluxe
    nightlyRate: 3100
`)
	_, err := catalog.Parse(data)

	require.Error(t, err)
	assert.ErrorContains(t, err, "duplicate room slug")
}

func TestParse_rejectsNegativeRate(t *testing.T) {
	_, err := catalog.Parse([]byte("rooms:\n  - slug: deluxe\n    nightlyRate: -1\n"))

	assert.ErrorContains(t, err, "negative nightly rate")
}

func TestRateTable_RoomTypes(t *testing.T) {
	rt := catalog.RateTable{"b": 2, "a": 1, "c": 0}

	assert.Equal(t, []string{"a", "b", "c"}, rt.RoomTypes())

	_, ok := rt.NightlyRate("c")
	assert.False(t, ok, "zero rate is not bookable")
}
