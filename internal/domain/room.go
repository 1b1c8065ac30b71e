package domain

// Room is the marketing record for one room category.
// NightlyRate is zero for categories that can be viewed but not booked
// online (single-occupancy variants priced at the front desk).
type Room struct {
	Slug          string   `yaml:"slug" json:"slug"`
	Name          string   `yaml:"name" json:"name"`
	HeroImage     string   `yaml:"heroImage" json:"heroImage"`
	HeroAlt       string   `yaml:"heroAlt" json:"heroAlt"`
	ShortTagline  string   `yaml:"shortTagline" json:"shortTagline"`
	Summary       string   `yaml:"summary" json:"summary"`
	SizeLabel     string   `yaml:"sizeLabel" json:"sizeLabel"`
	OccupancyNote string   `yaml:"occupancyLabel" json:"occupancyLabel"`
	NightlyRate   int      `yaml:"nightlyRate" json:"nightlyRate,omitempty"`
	Rate          RoomRate `yaml:"rate" json:"rate"`
	Amenities     []string `yaml:"amenities" json:"amenities"`
	Photos        []string `yaml:"photos" json:"photos"`
}

// Bookable reports whether the room can be requested through the booking form.
func (r Room) Bookable() bool {
	return r.NightlyRate > 0
}

// RoomRate is the published tariff card for a room category, one price per
// meal plan (EP room only, CP with breakfast, MAP half board, AP full board).
type RoomRate struct {
	RoomsLabel string `yaml:"roomsLabel" json:"roomsLabel"`
	Occupancy  string `yaml:"occupancy" json:"occupancy"`
	Size       string `yaml:"size" json:"size"`
	EP         string `yaml:"ep" json:"ep"`
	CP         string `yaml:"cp" json:"cp"`
	MAP        string `yaml:"map" json:"map"`
	AP         string `yaml:"ap" json:"ap"`
	Note       string `yaml:"note" json:"note,omitempty"`
}

// Slide is one image in a rotating hero or gallery.
type Slide struct {
	Src     string `yaml:"src" json:"src"`
	Alt     string `yaml:"alt" json:"alt"`
	Caption string `yaml:"caption,omitempty" json:"caption,omitempty"`
}

// Banner is one entry of the rotating offer strip shown on every page.
type Banner struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
}

// Offer is a promotional campaign listed on the offers page.
type Offer struct {
	ID      string   `yaml:"id" json:"id"`
	Title   string   `yaml:"title" json:"title"`
	Summary string   `yaml:"summary" json:"summary"`
	Details []string `yaml:"details" json:"details"`
}

// ContentPage is a static text page (dining, facilities, contact, ...).
type ContentPage struct {
	Slug     string           `yaml:"slug" json:"slug"`
	Title    string           `yaml:"title" json:"title"`
	Intro    string           `yaml:"intro" json:"intro"`
	Sections []ContentSection `yaml:"sections" json:"sections"`
}

// ContentSection is a headed list inside a ContentPage.
type ContentSection struct {
	Heading string   `yaml:"heading" json:"heading"`
	Items   []string `yaml:"items" json:"items"`
}
