// Package catalog holds the hotel's static content: rooms and their rates,
// hero slides, offers, gallery images, and text pages.
//
// The content is embedded at compile time and parsed once at startup. A
// Catalog is immutable after Load returns, so it is safe for concurrent use
// without locking.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/reenamhotel/site/internal/domain"
)

//go:embed catalog.yaml
var source []byte

// Hotel is the property's contact card.
type Hotel struct {
	Name    string `yaml:"name" json:"name"`
	Tagline string `yaml:"tagline" json:"tagline"`
	Address string `yaml:"address" json:"address"`
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
}

// document mirrors the layout of catalog.yaml.
type document struct {
	Hotel       Hotel                `yaml:"hotel"`
	ChildPolicy []string             `yaml:"childPolicy"`
	Rooms       []domain.Room        `yaml:"rooms"`
	Hero        []domain.Slide       `yaml:"hero"`
	Banners     []domain.Banner      `yaml:"banners"`
	Offers      []domain.Offer       `yaml:"offers"`
	Gallery     []domain.Slide       `yaml:"gallery"`
	Pages       []domain.ContentPage `yaml:"pages"`
}

// Catalog is the parsed, validated site content.
type Catalog struct {
	doc    document
	bySlug map[string]int
	pages  map[string]int
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(source)
}

// MustLoad is Load for package-level initialisation and tests.
// It panics if the embedded catalog is invalid.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic("catalog.MustLoad: " + err.Error())
	}
	return c
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}

	c := &Catalog{
		doc:    doc,
		bySlug: make(map[string]int, len(doc.Rooms)),
		pages:  make(map[string]int, len(doc.Pages)),
	}
	for i, r := range doc.Rooms {
		if r.Slug == "" {
			return nil, fmt.Errorf("catalog.Parse: room %d has no slug", i)
		}
		if _, dup := c.bySlug[r.Slug]; dup {
			return nil, fmt.Errorf("catalog.Parse: duplicate room slug %q", r.Slug)
		}
		if r.NightlyRate < 0 {
			return nil, fmt.Errorf("catalog.Parse: room %q has negative nightly rate", r.Slug)
		}
		c.bySlug[r.Slug] = i
	}
	for i, p := range doc.Pages {
		if _, dup := c.pages[p.Slug]; dup {
			return nil, fmt.Errorf("catalog.Parse: duplicate page slug %q", p.Slug)
		}
		c.pages[p.Slug] = i
	}
	return c, nil
}

// Hotel returns the property contact card.
func (c *Catalog) Hotel() Hotel { return c.doc.Hotel }

// Rooms returns every room category in catalog order.
func (c *Catalog) Rooms() []domain.Room {
	return append([]domain.Room(nil), c.doc.Rooms...)
}

// Room returns the room with the given slug.
// Returns domain.ErrNotFound if no such room exists.
func (c *Catalog) Room(slug string) (domain.Room, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return domain.Room{}, fmt.Errorf("catalog.Room %q: %w", slug, domain.ErrNotFound)
	}
	return c.doc.Rooms[i], nil
}

// Siblings returns every room except the one with the given slug.
func (c *Catalog) Siblings(slug string) []domain.Room {
	out := make([]domain.Room, 0, len(c.doc.Rooms))
	for _, r := range c.doc.Rooms {
		if r.Slug != slug {
			out = append(out, r)
		}
	}
	return out
}

// BookableRooms returns the rooms that carry an online nightly rate.
func (c *Catalog) BookableRooms() []domain.Room {
	var out []domain.Room
	for _, r := range c.doc.Rooms {
		if r.Bookable() {
			out = append(out, r)
		}
	}
	return out
}

// NightlyRate returns the online booking rate for a room type.
// The second result is false for unknown or non-bookable room types.
func (c *Catalog) NightlyRate(roomType string) (int, bool) {
	i, ok := c.bySlug[roomType]
	if !ok || !c.doc.Rooms[i].Bookable() {
		return 0, false
	}
	return c.doc.Rooms[i].NightlyRate, true
}

// Rates returns the booking rate table keyed by room type.
func (c *Catalog) Rates() RateTable {
	out := make(RateTable)
	for _, r := range c.BookableRooms() {
		out[r.Slug] = r.NightlyRate
	}
	return out
}

// ChildPolicy returns the child and extra-bed policy lines.
func (c *Catalog) ChildPolicy() []string { return c.doc.ChildPolicy }

// Hero returns the home page hero slides.
func (c *Catalog) Hero() []domain.Slide { return c.doc.Hero }

// Banners returns the rotating offer strip entries.
func (c *Catalog) Banners() []domain.Banner { return c.doc.Banners }

// Offers returns the promotional campaigns.
func (c *Catalog) Offers() []domain.Offer { return c.doc.Offers }

// Gallery returns the gallery images in display order.
func (c *Catalog) Gallery() []domain.Slide { return c.doc.Gallery }

// Page returns the text page with the given slug.
// Returns domain.ErrNotFound if no such page exists.
func (c *Catalog) Page(slug string) (domain.ContentPage, error) {
	i, ok := c.pages[slug]
	if !ok {
		return domain.ContentPage{}, fmt.Errorf("catalog.Page %q: %w", slug, domain.ErrNotFound)
	}
	return c.doc.Pages[i], nil
}

// RateTable maps a room type to its nightly price.
type RateTable map[string]int

// NightlyRate implements the same lookup as Catalog.NightlyRate.
func (t RateTable) NightlyRate(roomType string) (int, bool) {
	rate, ok := t[roomType]
	return rate, ok && rate > 0
}

// RoomTypes returns the keys of the table in sorted order.
func (t RateTable) RoomTypes() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
