// Package pdftext extracts plain text from PDF CVs so they can be fed
// through the same parsing pipeline as pasted text.
package pdftext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// gapThreshold is the horizontal distance, in PDF user units, beyond
// which two adjacent text chunks on a row are treated as separate words.
const gapThreshold = 1.0

// ExtractFile extracts the text of every page of a PDF file, pages
// separated by a blank line.
func ExtractFile(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	return extractAll(r)
}

func extractAll(r *pdf.Reader) (string, error) {
	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text := pageText(page)
		if text == "" {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n\n")
	}

	return builder.String(), nil
}

// pageText reconstructs a page's text row by row. Row extraction keeps
// line structure, which the segmenter depends on; if it fails we fall
// back to the flat plain-text stream.
func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		// Rows are keyed by vertical position; higher Y is closer to
		// the top of the page.
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Position > rows[j].Position
		})

		var lines []string
		for _, row := range rows {
			if line := joinRow(row.Content); line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, "\n")
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// joinRow concatenates the text chunks of one row left to right,
// inserting a space wherever the horizontal gap between chunks exceeds
// the word-break threshold.
func joinRow(chunks []pdf.Text) string {
	sorted := make([]pdf.Text, len(chunks))
	copy(sorted, chunks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var builder strings.Builder
	var prevEnd float64
	for i, t := range sorted {
		if t.S == "" {
			continue
		}
		if i > 0 && t.X-prevEnd > gapThreshold {
			builder.WriteString(" ")
		}
		builder.WriteString(t.S)
		prevEnd = t.X + t.W
	}

	return strings.TrimSpace(builder.String())
}
