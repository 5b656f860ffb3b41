// Package extract parses a publication entry fragment into structured
// fields: status, authors, title, venue, year, and a type hint.
//
// Extraction runs as a fixed sequence of named stages. Each stage takes a
// partial value, consumes what it recognizes from the remainder, and
// returns a new partial, so every stage is testable on its own and the
// pipeline is a plain composition. The parser is heuristic and total:
// malformed input degrades to empty fields, it never fails.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"cvcheck/internal/cvtext"
	"cvcheck/internal/record"
)

// Fields is the structured output of extraction for one fragment.
type Fields struct {
	Status   string
	Authors  []string
	Title    string
	Venue    string
	Year     int // 0 if not found
	TypeHint record.Type
}

// partial carries extraction state between stages. source keeps the full
// compacted fragment for stages that scan the whole text; remainder is
// progressively consumed left to right.
type partial struct {
	source    string
	remainder string
	fields    Fields
}

type stage func(partial) partial

var stages = []stage{
	takeStatus,
	takeAuthors,
	takeTitleVenue,
	takeYear,
	takeTypeHint,
}

// Extract parses one fragment into Fields.
func Extract(fragment string) Fields {
	compact := repairArtifacts(strings.Join(strings.Fields(fragment), " "))
	p := partial{source: compact, remainder: compact}
	for _, s := range stages {
		p = s(p)
	}
	return p.fields
}

// BuildRecord assembles a full PublicationRecord from a segmented
// fragment, resolving the type from the extraction hint and section.
func BuildRecord(frag cvtext.Fragment) record.PublicationRecord {
	f := Extract(frag.Text)
	return record.PublicationRecord{
		ID:      record.NewID(),
		RawText: frag.Text,
		Section: frag.Section,
		Type:    record.InferType(frag.Section, f.TypeHint),
		Title:   f.Title,
		Authors: f.Authors,
		Venue:   f.Venue,
		Year:    f.Year,
		Status:  f.Status,
	}
}

// BuildRecords converts a fragment list positionally.
func BuildRecords(frags []cvtext.Fragment) []record.PublicationRecord {
	recs := make([]record.PublicationRecord, 0, len(frags))
	for _, frag := range frags {
		recs = append(recs, BuildRecord(frag))
	}
	return recs
}

// artifactRepairs fixes known word-wrap breaks that survive hyphen
// rejoining in PDF text layers.
var artifactRepairs = []struct{ broken, fixed string }{
	{"Publicati on Status", "Publication Status"},
	{"Publication Sta tus", "Publication Status"},
	{"Poster present ed", "Poster presented"},
}

func repairArtifacts(s string) string {
	for _, r := range artifactRepairs {
		s = strings.ReplaceAll(s, r.broken, r.fixed)
	}
	return s
}

var statusRe = regexp.MustCompile(`(?i)Publication Status:\s*([^.]+)\.`)

// takeStatus extracts the ERAS status annotation and removes it from the
// remainder.
func takeStatus(p partial) partial {
	m := statusRe.FindStringSubmatchIndex(p.remainder)
	if m == nil {
		return p
	}
	p.fields.Status = strings.TrimSpace(p.remainder[m[2]:m[3]])
	p.remainder = strings.TrimSpace(p.remainder[:m[0]] + p.remainder[m[1]:])
	return p
}

var (
	authorsHead = regexp.MustCompile(`^([^.]+?)\.\s+(.*)$`)
	authorSplit = regexp.MustCompile(`(?i),|;| and `)
	authorJunk  = regexp.MustCompile(`[^A-Za-z \-]`)
)

// takeAuthors extracts the leading author list: everything up to the first
// period, split on commas, semicolons, and "and". Source order is kept
// exactly; it is the order that gets verified later.
func takeAuthors(p partial) partial {
	m := authorsHead.FindStringSubmatch(p.remainder)
	if m == nil {
		return p
	}
	for _, tok := range authorSplit.Split(m[1], -1) {
		name := strings.Join(strings.Fields(authorJunk.ReplaceAllString(tok, "")), " ")
		if name != "" {
			p.fields.Authors = append(p.fields.Authors, name)
		}
	}
	p.remainder = strings.TrimSpace(m[2])
	return p
}

var (
	posterMarker = regexp.MustCompile(`(?i)Poster presented:\s*`)
	oralMarker   = regexp.MustCompile(`(?i)Oral presentation:\s*`)

	// dateTail matches a trailing "; MM/DD/YYYY" fragment on oral venues.
	dateTail = regexp.MustCompile(`;?\s*\d{1,2}/\d{1,2}/\d{4}\.?\s*$`)

	// locationDateTail additionally consumes the "Location;" part that
	// precedes the date on poster titles. The location cannot cross a
	// period, so the title sentence before it is preserved.
	locationDateTail = regexp.MustCompile(`(?:[^.;]+;)?\s*\d{1,2}/\d{1,2}/\d{4}\.?\s*$`)
	publishedTail    = regexp.MustCompile(`(?i)\s*Published\.?\s*$`)

	monthToken  = regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept?|Oct|Nov|Dec)\b`)
	capTailRe   = regexp.MustCompile(`^(.+?)\.\s+([A-Z].*)$`)
	firstPeriod = regexp.MustCompile(`^(.+?)\.\s*(.*)$`)
)

// takeTitleVenue splits the remainder into title and venue. Presentation
// markers flip the layout: oral entries read "Title. Oral presentation:
// Venue; date", poster entries read "Venue. Poster presented: Title.
// Location; date".
func takeTitleVenue(p partial) partial {
	if m := oralMarker.FindStringIndex(p.remainder); m != nil {
		p.fields.Title = trimEdge(p.remainder[:m[0]])
		p.fields.Venue = trimEdge(dateTail.ReplaceAllString(p.remainder[m[1]:], ""))
		p.remainder = ""
		return p
	}
	if m := posterMarker.FindStringIndex(p.remainder); m != nil {
		p.fields.Venue = trimEdge(p.remainder[:m[0]])
		title := publishedTail.ReplaceAllString(p.remainder[m[1]:], "")
		title = locationDateTail.ReplaceAllString(title, "")
		p.fields.Title = trimEdge(title)
		p.remainder = ""
		return p
	}

	m := firstPeriod.FindStringSubmatch(p.remainder)
	if m == nil {
		p.fields.Title = trimEdge(p.remainder)
		p.remainder = ""
		return p
	}
	p.fields.Title = trimEdge(m[1])
	p.fields.Venue = splitVenueDetail(strings.TrimSpace(m[2]))
	p.remainder = ""
	return p
}

// splitVenueDetail separates the text after the title into a venue and
// trailing detail (volume/page/supplement information), recombining them
// as "venue. detail" when both are present. A month-name token or a
// capitalized continuation after a period marks where the detail starts.
func splitVenueDetail(rest string) string {
	if rest == "" {
		return ""
	}

	var venue, detail string
	if loc := monthToken.FindStringIndex(rest); loc != nil && loc[0] > 0 {
		venue = trimEdge(rest[:loc[0]])
		detail = trimEdge(rest[loc[0]:])
	} else if m := capTailRe.FindStringSubmatch(rest); m != nil {
		venue = trimEdge(m[1])
		detail = trimEdge(m[2])
	} else if m := firstPeriod.FindStringSubmatch(rest); m != nil && strings.TrimSpace(m[2]) != "" {
		venue = trimEdge(m[1])
		detail = trimEdge(m[2])
	} else {
		return trimEdge(rest)
	}

	if detail == "" {
		return venue
	}
	return venue + ". " + detail
}

var yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// takeYear finds the first plausible 4-digit year anywhere in the original
// fragment, not just the unconsumed remainder.
func takeYear(p partial) partial {
	if m := yearRe.FindString(p.source); m != "" {
		p.fields.Year, _ = strconv.Atoi(m)
	}
	return p
}

var (
	posterHint = regexp.MustCompile(`(?i)poster presented`)
	oralHint   = regexp.MustCompile(`(?i)oral presentation`)
)

// takeTypeHint records a presentation-type hint when the fragment carries
// a poster or oral marker; the final type falls back to the section
// heading when no hint is present.
func takeTypeHint(p partial) partial {
	switch {
	case posterHint.MatchString(p.source):
		p.fields.TypeHint = record.TypePoster
	case oralHint.MatchString(p.source):
		p.fields.TypeHint = record.TypeOral
	}
	return p
}

// trimEdge strips surrounding whitespace and dangling punctuation left
// over from consumed separators.
func trimEdge(s string) string {
	return strings.Trim(s, " \t.,;")
}
