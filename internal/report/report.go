// Package report renders verification results as CSV and HTML files.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cvcheck/internal/record"
)

// Row pairs a parsed record with its verification verdict for reporting.
type Row struct {
	Record  record.PublicationRecord
	Verdict record.Verdict
}

// header is the CSV column order.
var header = []string{
	"Section",
	"Type",
	"Title",
	"Authors (CV)",
	"Journal/Event (CV)",
	"Year (CV)",
	"External Title",
	"External Authors",
	"External Journal",
	"External Year",
	"Authorship Status",
	"Position Status",
	"Overall Status",
	"Details",
}

// WriteCSV writes one row per record, selected external candidate
// fields left blank when no candidate was chosen.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range rows {
		if err := cw.Write(csvFields(row)); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

func csvFields(row Row) []string {
	rec := row.Record

	var extTitle, extAuthors, extVenue, extYear string
	if sel := rec.Match.Selected(); sel != nil {
		extTitle = sel.Title
		extAuthors = strings.Join(sel.Authors, "; ")
		extVenue = sel.Venue
		extYear = yearString(sel.Year)
	}

	return []string{
		rec.Section,
		string(rec.Type),
		rec.Title,
		strings.Join(rec.Authors, "; "),
		rec.Venue,
		yearString(rec.Year),
		extTitle,
		extAuthors,
		extVenue,
		extYear,
		string(row.Verdict.Authorship),
		string(row.Verdict.Position),
		string(row.Verdict.Status),
		row.Verdict.Details,
	}
}

func yearString(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
