// Package cvtext turns raw CV text into publication entry fragments.
//
// The input is whatever came out of a paste buffer or a PDF text layer:
// mixed line endings, hard-wrapped lines, hyphenated breaks. Normalize
// cleans that up; Segment locates the publications block and splits it
// into per-entry fragments tagged with their section heading.
package cvtext

import (
	"regexp"
	"strings"
	"unicode"
)

// hyphenBreak matches a word broken across a line wrap ("word-\nword").
// Legitimate hyphenated compounds keep their hyphen because they have no
// whitespace after it.
var hyphenBreak = regexp.MustCompile(`([A-Za-z])-[ \t]*\n[ \t]*([A-Za-z])`)

// trailingSpace matches whitespace left dangling before a newline.
var trailingSpace = regexp.MustCompile(`[ \t]+\n`)

// Normalize canonicalizes raw CV text: line endings become "\n", tabs
// become spaces, hyphenated line breaks are rejoined, and hard-wrapped
// lines are merged when the continuation starts with a lowercase letter.
// Normalizing already-normalized text is a no-op.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", " ")

	// Iterate to a fixpoint: a chain like "a-\nb-\nc" needs two passes
	// because the regexp consumes the shared letter.
	for {
		next := hyphenBreak.ReplaceAllString(s, "$1$2")
		if next == s {
			break
		}
		s = next
	}

	s = trailingSpace.ReplaceAllString(s, "\n")
	s = joinWrapped(s)

	return s
}

// joinWrapped merges hard-wrapped lines: a line whose first character is a
// lowercase letter continues the previous non-empty line. A single pass
// folds whole wrapped paragraphs, so the result is stable under repeats.
func joinWrapped(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0:0]
	for _, line := range lines {
		if len(out) > 0 && out[len(out)-1] != "" && startsLower(line) {
			out[len(out)-1] += " " + line
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func startsLower(line string) bool {
	for _, r := range line {
		return unicode.IsLower(r)
	}
	return false
}
