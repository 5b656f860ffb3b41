package author

import "cvcheck/internal/record"

// AlignLists checks positional correspondence between a CV's claimed
// author list and an external author list, index by index.
//
// An "et al." marker in the CV list succeeds immediately: the remaining
// authors are implied, not checked. A CV list that ends before the
// external list still aligns, since CVs legitimately omit trailing
// co-authors. The external list ending first, or any index failing the
// signature match, fails the alignment. An empty external list never
// aligns with a non-empty CV list.
func AlignLists(cvAuthors, externalAuthors []string) bool {
	if len(externalAuthors) == 0 {
		return len(cvAuthors) == 0
	}

	for i, name := range cvAuthors {
		if IsEtAl(name) {
			return true
		}
		if i >= len(externalAuthors) {
			return false
		}
		if !NewSignature(name).Matches(NewSignature(externalAuthors[i])) {
			return false
		}
	}
	return true
}

// Verify builds a verdict from a record's claimed authors and the author
// list of its selected external candidate, using whole-list ordered
// alignment. It is a pure function of the two lists.
func Verify(cvAuthors, externalAuthors []string) record.Verdict {
	if len(externalAuthors) == 0 {
		return record.Verdict{
			Authorship: record.StateUnknown,
			Position:   record.StateUnknown,
			Status:     record.StatusWarning,
			Details:    "No external author data to verify.",
		}
	}

	if AlignLists(cvAuthors, externalAuthors) {
		return record.Verdict{
			Authorship: record.StateMatch,
			Position:   record.StateMatch,
			Status:     record.StatusGood,
			Details:    "Author list and order align with the external source.",
		}
	}

	return record.Verdict{
		Authorship: record.StateMismatch,
		Position:   record.StateMismatch,
		Status:     record.StatusBad,
		Details:    "Author list does not align with the external source.",
	}
}
