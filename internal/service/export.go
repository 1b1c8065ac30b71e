package service

import (
	"context"
	"fmt"

	"github.com/reenamhotel/site/internal/domain"
	"github.com/reenamhotel/site/internal/repo"
)

// ExportService assembles a flat export of every stored booking.
type ExportService struct {
	bookings repo.BookingRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(bookings repo.BookingRepo) *ExportService {
	return &ExportService{bookings: bookings}
}

// Export returns one ExportRow per booking, oldest first.
// An empty store yields an empty, non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, domain.NewExportRow(b))
	}
	return rows, nil
}
