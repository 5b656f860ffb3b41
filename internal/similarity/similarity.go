// Package similarity scores external candidates against parsed records.
//
// String similarity blends token-set Jaccard with character-bigram Dice so
// that both word reordering and small spelling differences are tolerated.
// All scores live in [0,1] and are rounded to three decimals, which keeps
// ranking decisions stable and explainable.
package similarity

import (
	"math"
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace = regexp.MustCompile(`\s+`)
)

// normalize lowercases, strips non-alphanumerics, and collapses whitespace.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func tokenize(s string) []string {
	n := normalize(s)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// StringScore computes the combined similarity of two strings:
// 0.6 * token Jaccard + 0.4 * bigram Dice, rounded to three decimals.
// Either input empty yields 0.
func StringScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	jaccard := jaccardTokens(tokenize(a), tokenize(b))
	dice := diceBigrams(normalize(a), normalize(b))
	return round3(0.6*jaccard + 0.4*dice)
}

// jaccardTokens computes intersection-over-union of the token sets.
// An empty union scores 0.
func jaccardTokens(a, b []string) float64 {
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// diceBigrams computes the Dice coefficient over character bigrams.
// Strings shorter than two characters score 1 if identical, else 0.
func diceBigrams(a, b string) float64 {
	if len(a) < 2 || len(b) < 2 {
		if a == b {
			return 1
		}
		return 0
	}

	grams := func(s string) map[string]int {
		m := make(map[string]int, len(s))
		for i := 0; i < len(s)-1; i++ {
			m[s[i:i+2]]++
		}
		return m
	}

	gramsA := grams(a)
	gramsB := grams(b)

	intersection := 0
	for g, n := range gramsA {
		if m := gramsB[g]; m > 0 {
			intersection += min(n, m)
		}
	}

	return float64(2*intersection) / float64(len(a)-1+len(b)-1)
}

// YearScore rates the proximity of two publication years. A year of 0
// means unknown and scores a neutral 0.4.
func YearScore(expected, actual int) float64 {
	if expected == 0 || actual == 0 {
		return 0.4
	}
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 1
	case diff == 1:
		return 0.8
	case diff == 2:
		return 0.6
	case diff <= 4:
		return 0.4
	default:
		return 0.2
	}
}

// Composite blends the per-field scores into one candidate score:
// 0.6 * title + 0.25 * venue + 0.15 * year, rounded to three decimals.
func Composite(title, venue, year float64) float64 {
	return round3(0.6*title + 0.25*venue + 0.15*year)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
