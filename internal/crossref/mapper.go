package crossref

import (
	"strings"

	"cvcheck/internal/record"
	"cvcheck/internal/similarity"
)

// mapItems converts raw works items into scored candidates. Items are
// mapped positionally; ranking happens afterwards.
func mapItems(rec record.PublicationRecord, items []workItem) []record.ExternalCandidate {
	cands := make([]record.ExternalCandidate, 0, len(items))
	for _, item := range items {
		cands = append(cands, mapItem(rec, item))
	}
	return cands
}

func mapItem(rec record.PublicationRecord, item workItem) record.ExternalCandidate {
	title := first(item.Title)
	venue := first(item.ContainerTitle)
	year := item.PublishedPrint.year()
	if year == 0 {
		year = item.PublishedOnline.year()
	}

	return record.ExternalCandidate{
		ID:      record.NewID(),
		DOI:     item.DOI,
		Title:   title,
		Authors: mapAuthors(item.Author),
		Venue:   venue,
		Year:    year,
		Score:   similarity.ScoreCandidate(rec, title, venue, year),
		Source:  SourceName,
	}
}

// mapAuthors renders each author as "Given Family", preserving the order
// the source returned; order is what gets verified downstream.
func mapAuthors(names []workName) []string {
	var authors []string
	for _, n := range names {
		full := strings.TrimSpace(strings.Join(nonEmpty(n.Given, n.Family), " "))
		if full != "" {
			authors = append(authors, full)
		}
	}
	return authors
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

func nonEmpty(ss ...string) []string {
	var out []string
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
