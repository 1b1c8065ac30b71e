package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reenamhotel/site/internal/domain"
)

// fileRecord is the on-disk shape of one booking: the submitted payload
// plus the server-assigned id and createdAt.
type fileRecord struct {
	ID              string    `json:"id,omitempty"`
	CheckIn         string    `json:"checkIn"`
	CheckOut        string    `json:"checkOut"`
	Guests          int       `json:"guests"`
	RoomType        string    `json:"roomType"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	PricePerNight   int       `json:"pricePerNight"`
	Total           int       `json:"total"`
	Nights          int       `json:"nights"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FileBookingRepo stores bookings as one JSON array in a single file.
//
// Every Append reads the whole array, appends, and rewrites the file. The
// read-modify-write runs under a mutex and the rewrite goes through a temp
// file and rename, so concurrent submissions in this process never lose an
// update and a crash mid-write never leaves a truncated file. Multiple
// processes sharing one file are not coordinated.
type FileBookingRepo struct {
	path string
	log  *slog.Logger
	now  func() time.Time

	mu sync.Mutex
}

// NewFileBookingRepo returns a store writing to path. The file and its
// parent directory are created on the first Append.
func NewFileBookingRepo(path string, log *slog.Logger) *FileBookingRepo {
	if log == nil {
		log = slog.Default()
	}
	return &FileBookingRepo{path: path, log: log, now: time.Now}
}

// Path returns the file the store writes to.
func (r *FileBookingRepo) Path() string { return r.path }

// Append adds a booking to the end of the file.
// Existing content that cannot be read or parsed is treated as empty; the
// unreadable file is first moved aside as <path>.corrupt-<unix> so nothing is
// silently destroyed.
func (r *FileBookingRepo) Append(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return domain.Booking{}, fmt.Errorf("repo.FileBookingRepo.Append: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		r.log.ErrorContext(ctx, "failed reading existing bookings file", "path", r.path, "error", err)
		r.quarantine(ctx)
		records = nil
	}

	records = append(records, toRecord(b))
	if err := r.write(records); err != nil {
		return domain.Booking{}, fmt.Errorf("repo.FileBookingRepo.Append: %w", err)
	}
	return b, nil
}

// List returns every booking in file order (oldest first).
func (r *FileBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repo.FileBookingRepo.List: %w", err)
	}

	r.mu.Lock()
	records, err := r.load()
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("repo.FileBookingRepo.List: %w", err)
	}

	out := make([]domain.Booking, 0, len(records))
	for i, rec := range records {
		b, err := fromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("repo.FileBookingRepo.List: record %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// ListPaged returns one page of bookings, newest first, and the total count.
func (r *FileBookingRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	slices.Reverse(all)

	start, end := p.Window(len(all))
	return all[start:end], int64(len(all)), nil
}

// load reads and decodes the file. A missing or blank file is an empty list.
func (r *FileBookingRepo) load() ([]fileRecord, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return records, nil
}

// quarantine moves an unreadable bookings file out of the way.
func (r *FileBookingRepo) quarantine(ctx context.Context) {
	dst := r.path + ".corrupt-" + strconv.FormatInt(r.now().Unix(), 10)
	if err := os.Rename(r.path, dst); err != nil {
		r.log.ErrorContext(ctx, "failed preserving unreadable bookings file", "path", r.path, "error", err)
		return
	}
	r.log.WarnContext(ctx, "unreadable bookings file preserved", "path", dst)
}

// write replaces the file with records, indented two spaces.
func (r *FileBookingRepo) write(records []fileRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

func toRecord(b domain.Booking) fileRecord {
	rec := fileRecord{
		CheckIn:         b.CheckIn.Format(domain.DateLayout),
		CheckOut:        b.CheckOut.Format(domain.DateLayout),
		Guests:          b.Guests,
		RoomType:        b.RoomType,
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		SpecialRequests: b.SpecialRequests,
		PricePerNight:   b.PricePerNight,
		Total:           b.Total,
		Nights:          b.Nights,
		CreatedAt:       b.CreatedAt.UTC(),
	}
	if b.ID != uuid.Nil {
		rec.ID = b.ID.String()
	}
	return rec
}

// fromRecord decodes a stored record. Records written before ids were
// assigned keep a nil ID.
func fromRecord(rec fileRecord) (domain.Booking, error) {
	b := domain.Booking{
		BookingRequest: domain.BookingRequest{
			Guests:          rec.Guests,
			RoomType:        rec.RoomType,
			Name:            rec.Name,
			Email:           rec.Email,
			Phone:           rec.Phone,
			SpecialRequests: rec.SpecialRequests,
			Nights:          rec.Nights,
			PricePerNight:   rec.PricePerNight,
			Total:           rec.Total,
		},
		CreatedAt: rec.CreatedAt,
	}

	var err error
	if b.CheckIn, err = parseDate(rec.CheckIn); err != nil {
		return domain.Booking{}, fmt.Errorf("checkIn: %w", err)
	}
	if b.CheckOut, err = parseDate(rec.CheckOut); err != nil {
		return domain.Booking{}, fmt.Errorf("checkOut: %w", err)
	}
	if rec.ID != "" {
		if b.ID, err = uuid.Parse(rec.ID); err != nil {
			return domain.Booking{}, fmt.Errorf("id: %w", err)
		}
	}
	return b, nil
}

// parseDate accepts a bare date or a full timestamp (older clients sent
// ISO datetimes for the stay dates).
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(24 * time.Hour), nil
}
