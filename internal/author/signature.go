// Package author normalizes author names into comparable signatures and
// verifies a CV's claimed author list against an external one.
package author

import (
	"regexp"
	"strings"
)

// Signature is a normalized (surname, initials) rendering of a person's
// name, used to compare differently formatted versions of the same name.
// Signatures are ephemeral: recomputed from the name string on every
// comparison, never persisted.
type Signature struct {
	Surname  string
	Initials string
}

var nonLetter = regexp.MustCompile(`[^a-z\s]`)

// normalizeName lowercases and strips everything but letters and spaces.
// Punctuation is removed, not spaced, so "O'Brien" stays one token.
func normalizeName(name string) []string {
	s := strings.ToLower(name)
	s = nonLetter.ReplaceAllString(s, "")
	return strings.Fields(s)
}

// NewSignature derives a signature from a name in either of the two forms
// CVs and bibliographic sources use:
//
//   - "Smith JA" / "Smith J A"  (surname first, initials after)
//   - "John A Smith"            (given names first, surname last)
//
// The surname-first form is detected when every token after the first is
// an initials run of at most two letters.
//
// Known limitations: two-letter surnames in given-first order ("Wei Li")
// are read as initials, and multi-part surnames (van der Waals) split
// incorrectly. Both forms are rare in the ERAS dialect this targets.
func NewSignature(name string) Signature {
	tokens := normalizeName(name)
	if len(tokens) == 0 {
		return Signature{}
	}
	if len(tokens) == 1 {
		return Signature{Surname: tokens[0]}
	}

	if isInitialsRun(tokens[1:]) {
		return Signature{
			Surname:  tokens[0],
			Initials: strings.Join(tokens[1:], ""),
		}
	}

	var initials strings.Builder
	for _, t := range tokens[:len(tokens)-1] {
		initials.WriteByte(t[0])
	}
	return Signature{
		Surname:  tokens[len(tokens)-1],
		Initials: initials.String(),
	}
}

func isInitialsRun(tokens []string) bool {
	for _, t := range tokens {
		if len(t) > 2 {
			return false
		}
	}
	return true
}

// Matches reports whether two signatures plausibly name the same person:
// surnames must be equal, and either side's initials may be empty or a
// prefix of the other's. "Smith J" therefore matches "Smith JA".
func (s Signature) Matches(other Signature) bool {
	if s.Surname == "" || s.Surname != other.Surname {
		return false
	}
	if s.Initials == "" || other.Initials == "" {
		return true
	}
	return strings.HasPrefix(s.Initials, other.Initials) ||
		strings.HasPrefix(other.Initials, s.Initials)
}

// IsEtAl reports whether a CV author entry is an "et al." marker rather
// than a name.
func IsEtAl(name string) bool {
	joined := strings.Join(normalizeName(name), " ")
	return joined == "et al" || joined == "etal" || joined == "et als"
}
