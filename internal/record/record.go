// Package record defines the core domain types for CV publication checking.
package record

import (
	"regexp"

	"github.com/google/uuid"
)

// Type classifies a publication entry.
type Type string

const (
	TypeJournal Type = "journal"
	TypePoster  Type = "poster"
	TypeOral    Type = "oral"
	TypeOther   Type = "other"
)

// PublicationRecord represents one publication entry parsed from a CV.
//
// ID and RawText are assigned at creation and never change; the remaining
// fields may be corrected manually after parsing.
type PublicationRecord struct {
	ID      string   `json:"id"`
	RawText string   `json:"raw_text"`
	Section string   `json:"section"`
	Type    Type     `json:"type"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"` // source order preserved; order is what gets verified
	Venue   string   `json:"venue"`
	Year    int      `json:"year,omitempty"`   // 0 if unknown
	Status  string   `json:"status,omitempty"` // ERAS "Publication Status" annotation

	Match *Match `json:"match,omitempty"`
}

// ExternalCandidate is a bibliographic entry retrieved from an external
// source, scored against the record it was retrieved for. Candidates are
// immutable once returned by the retrieval layer.
type ExternalCandidate struct {
	ID      string   `json:"id"`
	DOI     string   `json:"doi,omitempty"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Venue   string   `json:"venue,omitempty"`
	Year    int      `json:"year,omitempty"`
	Score   float64  `json:"score"` // composite similarity in [0,1]
	Source  string   `json:"source"`
}

// Match holds the retrieved candidates for a record and an optional
// selection. SelectedID references a candidate by id; the candidate
// objects themselves are shared and never copied into the selection.
type Match struct {
	Candidates   []ExternalCandidate `json:"candidates"` // sorted descending by Score
	SelectedID   string              `json:"selected_id,omitempty"`
	AutoSelected bool                `json:"auto_selected,omitempty"`
}

// Selected returns the currently selected candidate, or nil if none is
// selected or the id no longer resolves.
func (m *Match) Selected() *ExternalCandidate {
	if m == nil || m.SelectedID == "" {
		return nil
	}
	for i := range m.Candidates {
		if m.Candidates[i].ID == m.SelectedID {
			return &m.Candidates[i]
		}
	}
	return nil
}

// Select marks the candidate with the given id as selected. Returns false
// if no candidate has that id; the previous selection is kept in that case.
func (m *Match) Select(id string) bool {
	for i := range m.Candidates {
		if m.Candidates[i].ID == id {
			m.SelectedID = id
			m.AutoSelected = false
			return true
		}
	}
	return false
}

// NewID generates an opaque unique identifier for records and candidates.
func NewID() string {
	return uuid.NewString()
}

// typeRules maps section-heading keywords to publication types, checked in
// order so the more specific presentation types win over "journal".
var typeRules = []struct {
	match *regexp.Regexp
	t     Type
}{
	{regexp.MustCompile(`(?i)poster`), TypePoster},
	{regexp.MustCompile(`(?i)oral`), TypeOral},
	{regexp.MustCompile(`(?i)journal|article|abstract`), TypeJournal},
}

// InferType resolves a record's type from an extraction hint and the
// section heading the entry appeared under, falling back to TypeOther.
func InferType(section string, hint Type) Type {
	if hint != "" {
		return hint
	}
	for _, rule := range typeRules {
		if rule.match.MatchString(section) {
			return rule.t
		}
	}
	return TypeOther
}
