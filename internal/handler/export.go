// export.go implements GET /api/bookings/export.
// Returns every stored booking as a flat table.
// Supports ?format=csv (CSV) or ?format=json (default).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/reenamhotel/site/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"id", "created_at", "check_in", "check_out", "nights", "guests",
	"room_type", "price_per_night", "total", "name", "email", "phone",
	"special_requests",
}

// GetExport handles GET /api/bookings/export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "Unsupported export format.", "format must be csv or json")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// writeCSV encodes rows as CSV with a header row and sends it as an attachment.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(rowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// rowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.ID,
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.CheckIn,
		r.CheckOut,
		strconv.Itoa(r.Nights),
		strconv.Itoa(r.Guests),
		r.RoomType,
		strconv.Itoa(r.PricePerNight),
		strconv.Itoa(r.Total),
		r.Name,
		r.Email,
		r.Phone,
		r.SpecialRequests,
	}
}
