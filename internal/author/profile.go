package author

import (
	"fmt"

	"cvcheck/internal/record"
)

// Profile identifies the CV owner for profile-based verification: the
// full name plus any alternate renderings (maiden name, initials-only
// byline, transliterations).
type Profile struct {
	FullName string
	Variants []string
}

func (p Profile) signatures() []Signature {
	var sigs []Signature
	for _, name := range append([]string{p.FullName}, p.Variants...) {
		if sig := NewSignature(name); sig.Surname != "" {
			sigs = append(sigs, sig)
		}
	}
	return sigs
}

// indexOf returns the position of the first author matching any profile
// signature, or -1.
func indexOf(authors []string, sigs []Signature) int {
	for i, name := range authors {
		sig := NewSignature(name)
		if sig.Surname == "" {
			continue
		}
		for _, s := range sigs {
			if sig.Matches(s) {
				return i
			}
		}
	}
	return -1
}

// VerifyAgainstProfile is the alternate verification policy: instead of
// aligning whole lists, it tracks the CV owner's own index within each
// list and compares the two positions. Authorship matching with a
// position difference yields a partial "warning" verdict, which the
// whole-list policy cannot express. The two policies are deliberately
// separate; callers choose one per run.
func VerifyAgainstProfile(cvAuthors, externalAuthors []string, p Profile) record.Verdict {
	sigs := p.signatures()

	if len(externalAuthors) == 0 {
		return record.Verdict{
			Authorship: record.StateUnknown,
			Position:   record.StateUnknown,
			Status:     record.StatusWarning,
			Details:    "No external author data to verify.",
		}
	}

	externalIdx := indexOf(externalAuthors, sigs)
	if externalIdx == -1 {
		return record.Verdict{
			Authorship: record.StateMismatch,
			Position:   record.StateMismatch,
			Status:     record.StatusBad,
			Details:    "Name not found in external author list.",
		}
	}

	cvIdx := indexOf(cvAuthors, sigs)
	if cvIdx == -1 || cvIdx == externalIdx {
		return record.Verdict{
			Authorship: record.StateMatch,
			Position:   record.StateMatch,
			Status:     record.StatusGood,
			Details:    "Authorship and position align.",
		}
	}

	return record.Verdict{
		Authorship: record.StateMatch,
		Position:   record.StateMismatch,
		Status:     record.StatusWarning,
		Details:    fmt.Sprintf("Authorship found, but position differs (CV: %d, external: %d).", cvIdx+1, externalIdx+1),
	}
}
