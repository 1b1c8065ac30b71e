// Package site renders the hotel's public pages: home with the hero
// slider, rooms and room details, gallery, offers, text pages, and the
// booking form that posts to the booking API.
//
// Pages are html/template files embedded in the binary and rendered
// server-side. Slider state that the browser would normally keep lives in
// query parameters (gallery, hero pick) or in a shared carousel (hero
// rotation, offer banner).
package site

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reenamhotel/site/internal/bookingclient"
	"github.com/reenamhotel/site/internal/carousel"
	"github.com/reenamhotel/site/internal/catalog"
	"github.com/reenamhotel/site/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Slide intervals.
const (
	HeroInterval    = 5 * time.Second
	BannerInterval  = 2 * time.Second
	GalleryInterval = 5 * time.Second
)

// Room detail tabs in display order. The first is the default.
var roomTabs = []string{"rates", "amenities", "photos", "policy"}

// textPages are the catalog pages served at /<slug>.
var textPages = []string{"experience-ladakh", "attractions", "packages", "dining", "facilities", "contact"}

// Submitter sends a priced booking form to the booking API.
// *bookingclient.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, f bookingclient.Form, s bookingclient.Summary) bookingclient.Result
}

// Site holds the page templates and their dependencies.
type Site struct {
	cat       *catalog.Catalog
	submitter Submitter
	log       *slog.Logger
	now       func() time.Time
	assetsDir string

	pages  map[string]*template.Template
	hero   *carousel.Carousel
	banner *carousel.Carousel
}

// Option configures a Site.
type Option func(*Site)

// WithClock overrides the clock used for the booking form's default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Site) { s.now = now }
}

// WithAssetsDir serves files under dir at /img/. dir is the public root, so
// /img/rooms/a.jpg is read from <dir>/img/rooms/a.jpg.
func WithAssetsDir(dir string) Option {
	return func(s *Site) { s.assetsDir = dir }
}

// New parses the embedded templates. A nil logger falls back to slog.Default().
func New(cat *catalog.Catalog, submitter Submitter, log *slog.Logger, opts ...Option) (*Site, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Site{
		cat:       cat,
		submitter: submitter,
		log:       log,
		now:       time.Now,
		pages:     make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, name := range []string{"home", "rooms", "room", "gallery", "offers", "content", "booking"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("site.New: parse %s: %w", name, err)
		}
		s.pages[name] = t
	}

	s.hero = carousel.New(len(cat.Hero()))
	s.banner = carousel.New(len(cat.Banners()), carousel.WithOnAdvance(func(i int) {
		log.Debug("offer banner advanced", "index", i)
	}))
	return s, nil
}

// Start runs the hero and offer banner rotation until ctx is cancelled.
func (s *Site) Start(ctx context.Context) {
	go s.hero.Run(ctx, HeroInterval)
	go s.banner.Run(ctx, BannerInterval)
}

// Mount registers every page on r. Unknown paths redirect to the home page.
func (s *Site) Mount(r chi.Router) {
	r.Get("/", s.home)
	r.Get("/rooms", s.rooms)
	r.Get("/rooms/{slug}", s.room)
	r.Get("/gallery", s.gallery)
	r.Get("/offers", s.offers)
	for _, slug := range textPages {
		r.Get("/"+slug, s.textPage(slug))
	}
	r.Get("/booking", s.bookingForm)
	r.Post("/booking", s.submitBooking)

	if s.assetsDir != "" {
		r.Handle("/img/*", http.FileServer(http.Dir(s.assetsDir)))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/", http.StatusFound)
	})
}

// ---- view data -------------------------------------------------------------

// view is the data every page's layout receives.
type view struct {
	Title          string
	Hotel          catalog.Hotel
	Banner         *domain.Banner
	BannerIndex    int
	RefreshURL     string
	RefreshSeconds int
	Body           any
}

type homeBody struct {
	Slides  []domain.Slide
	Current int
	Rooms   []domain.Room
	Offers  []domain.Offer
}

type roomBody struct {
	Room        *domain.Room
	Tab         string
	Tabs        []string
	ChildPolicy []string
	Siblings    []domain.Room
}

type galleryBody struct {
	Slides  []domain.Slide
	Slide   *domain.Slide
	Current int
	Prev    int
	Next    int
	Total   int
}

type bookingBody struct {
	Form      bookingclient.Form
	Errors    bookingclient.FieldErrors
	Rooms     []domain.Room
	MinGuests int
	MaxGuests int
	Summary   *bookingclient.Summary
	RoomName  string
	Message   string
	Delivered bool
}

// ---- handlers --------------------------------------------------------------

// home shows the rotating hero slide unless the visitor picked one with
// ?hero=. The pick only affects this response.
func (s *Site) home(w http.ResponseWriter, r *http.Request) {
	slides := s.cat.Hero()
	current := s.hero.Current()
	if i, err := strconv.Atoi(r.URL.Query().Get("hero")); err == nil && i >= 0 && i < len(slides) {
		current = i
	}
	s.render(w, r, http.StatusOK, "home", "Home", homeBody{
		Slides:  slides,
		Current: current,
		Rooms:   s.cat.Rooms(),
		Offers:  s.cat.Offers(),
	})
}

func (s *Site) rooms(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "rooms", "Rooms & Suites", struct{ Rooms []domain.Room }{s.cat.Rooms()})
}

func (s *Site) room(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	body := roomBody{
		Tab:         roomTabs[0],
		Tabs:        roomTabs,
		ChildPolicy: s.cat.ChildPolicy(),
		Siblings:    s.cat.Siblings(slug),
	}
	if tab := r.URL.Query().Get("tab"); tab != "" && slices.Contains(roomTabs, tab) {
		body.Tab = tab
	}

	room, err := s.cat.Room(slug)
	if errors.Is(err, domain.ErrNotFound) {
		s.render(w, r, http.StatusNotFound, "room", "Room details", body)
		return
	}
	body.Room = &room
	s.render(w, r, http.StatusOK, "room", "Room details", body)
}

func (s *Site) gallery(w http.ResponseWriter, r *http.Request) {
	slides := s.cat.Gallery()
	n := len(slides)

	i, err := strconv.Atoi(r.URL.Query().Get("i"))
	if err != nil || i < 0 || i >= n {
		i = 0
	}
	body := galleryBody{
		Slides:  slides,
		Current: i,
		Prev:    carousel.Step(i, n, -1),
		Next:    carousel.Step(i, n, 1),
		Total:   n,
	}
	if n > 0 {
		body.Slide = &slides[i]
	}

	v := s.view("Gallery", body)
	if n > 1 {
		v.RefreshURL = "/gallery?i=" + strconv.Itoa(body.Next)
		v.RefreshSeconds = int(GalleryInterval / time.Second)
	}
	s.write(w, r, http.StatusOK, "gallery", v)
}

func (s *Site) offers(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "offers", "Offers", struct{ Offers []domain.Offer }{s.cat.Offers()})
}

func (s *Site) textPage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.cat.Page(slug)
		if err != nil {
			s.log.ErrorContext(r.Context(), "missing catalog page", "slug", slug, "error", err)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		s.render(w, r, http.StatusOK, "content", p.Title, struct{ Page domain.ContentPage }{p})
	}
}

func (s *Site) bookingForm(w http.ResponseWriter, r *http.Request) {
	form := bookingclient.NewForm(s.now().UTC(), r.URL.Query().Get("room"), s.cat)
	s.render(w, r, http.StatusOK, "booking", "Booking", s.bookingBody(form))
}

func (s *Site) submitBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := formFromRequest(r)
	body := s.bookingBody(form)

	summary, err := form.Summarize(s.cat)
	var fieldErrs bookingclient.FieldErrors
	if errors.As(err, &fieldErrs) {
		body.Errors = fieldErrs
		s.render(w, r, http.StatusUnprocessableEntity, "booking", "Booking", body)
		return
	}

	ctx := bookingclient.WithForwardedFor(r.Context(), visitorIP(r))
	res := s.submitter.Submit(ctx, form, summary)
	if res.Err != nil {
		s.log.WarnContext(r.Context(), "booking api unavailable", "error", res.Err)
	}

	body.Summary = &summary
	body.Message = res.Message
	body.Delivered = res.Delivered
	if room, err := s.cat.Room(form.RoomType); err == nil {
		body.RoomName = room.Name
	}
	s.render(w, r, http.StatusOK, "booking", "Booking", body)
}

func (s *Site) bookingBody(f bookingclient.Form) bookingBody {
	return bookingBody{
		Form:      f,
		Rooms:     s.cat.BookableRooms(),
		MinGuests: bookingclient.MinGuests,
		MaxGuests: bookingclient.MaxGuests,
	}
}

// formFromRequest reads the posted form. A non-numeric guest count becomes
// zero and fails validation.
func formFromRequest(r *http.Request) bookingclient.Form {
	guests, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("guests")))
	return bookingclient.Form{
		CheckIn:         r.PostFormValue("checkIn"),
		CheckOut:        r.PostFormValue("checkOut"),
		Guests:          guests,
		RoomType:        r.PostFormValue("roomType"),
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Phone:           r.PostFormValue("phone"),
		SpecialRequests: r.PostFormValue("specialRequests"),
	}
}

// visitorIP is the host part of RemoteAddr, which chi's RealIP has already
// set from any forwarding headers.
func visitorIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ---- rendering -------------------------------------------------------------

func (s *Site) view(title string, body any) view {
	v := view{Title: title, Hotel: s.cat.Hotel(), Body: body}
	if banners := s.cat.Banners(); len(banners) > 0 {
		v.BannerIndex = s.banner.Current()
		v.Banner = &banners[v.BannerIndex]
	}
	return v
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, page, title string, body any) {
	s.write(w, r, status, page, s.view(title, body))
}

// write executes into a buffer first so a template error never leaves a
// half-written page behind a 200.
func (s *Site) write(w http.ResponseWriter, r *http.Request, status int, page string, v view) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout", v); err != nil {
		s.log.ErrorContext(r.Context(), "error rendering page", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
