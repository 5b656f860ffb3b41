package similarity

import (
	"sort"

	"cvcheck/internal/record"
)

// autoSelectGap is the minimum score lead the top candidate must have over
// the runner-up to be auto-selected. Chosen to trade recall for precision:
// a near-tie means two plausible matches, which needs a human.
const autoSelectGap = 0.1

// ScoreCandidate computes the composite score of one candidate's fields
// against the parsed record they were retrieved for.
func ScoreCandidate(rec record.PublicationRecord, title, venue string, year int) float64 {
	return Composite(
		StringScore(rec.Title, title),
		StringScore(rec.Venue, venue),
		YearScore(rec.Year, year),
	)
}

// Rank sorts candidates descending by score, in place. The sort is stable:
// ties keep the retrieval order.
func Rank(cands []record.ExternalCandidate) []record.ExternalCandidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	return cands
}

// PickBest returns the top candidate of an already-ranked list when it is
// confidently auto-selectable: it is the only candidate, or it leads the
// runner-up by more than the auto-select gap. Otherwise nil.
func PickBest(cands []record.ExternalCandidate) *record.ExternalCandidate {
	if len(cands) == 0 {
		return nil
	}
	if len(cands) == 1 {
		return &cands[0]
	}
	if cands[0].Score-cands[1].Score > autoSelectGap {
		return &cands[0]
	}
	return nil
}
