package cvtext

import (
	"regexp"
	"sort"
	"strings"
)

// Fragment is a contiguous span of text believed to represent exactly one
// publication entry, tagged with the section heading it appeared under.
type Fragment struct {
	Section string `json:"section"`
	Text    string `json:"text"`
}

// sectionHeaderPatterns recognize the start of a publications-style block.
// Matched against trimmed lines, substring semantics.
var sectionHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)publications`),
	regexp.MustCompile(`(?i)peer reviewed journal`),
	regexp.MustCompile(`(?i)journal articles?`),
	regexp.MustCompile(`(?i)abstracts?`),
	regexp.MustCompile(`(?i)poster presentations?`),
	regexp.MustCompile(`(?i)oral presentations?`),
	regexp.MustCompile(`(?i)presentations`),
	regexp.MustCompile(`(?i)^books?\b`),
}

// nextSectionPatterns recognize the major CV section that ends the
// publications block. Anchored to the start of a trimmed line.
var nextSectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^education\b`),
	regexp.MustCompile(`(?i)^(?:work |research |clinical )?experience\b`),
	regexp.MustCompile(`(?i)^awards?\b`),
	regexp.MustCompile(`(?i)^honors?\b`),
	regexp.MustCompile(`(?i)^references?\b`),
	regexp.MustCompile(`(?i)^certifications?\b`),
	regexp.MustCompile(`(?i)^licens(?:es|ure)\b`),
	regexp.MustCompile(`(?i)^volunteer`),
	regexp.MustCompile(`(?i)^memberships?\b`),
	regexp.MustCompile(`(?i)^training\b`),
	regexp.MustCompile(`(?i)^languages?\b`),
	regexp.MustCompile(`(?i)^hobbies\b`),
}

type sectionKind int

const (
	kindJournal sectionKind = iota
	kindPoster
	kindOral
)

type subHeading struct {
	name string
	kind sectionKind
	re   *regexp.Regexp
}

// subHeadings are the recognized ERAS sub-section headings. Order matters:
// the "(Other than Published)" variant must be tried before its prefix.
var subHeadings = []subHeading{
	{
		name: "Peer Reviewed Journal Articles/Abstracts(Other than Published)",
		kind: kindJournal,
		re:   regexp.MustCompile(`(?i)peer reviewed journal articles?/?abstracts?\s*\(other than published\)`),
	},
	{
		name: "Peer Reviewed Journal Articles/Abstracts",
		kind: kindJournal,
		re:   regexp.MustCompile(`(?i)peer reviewed journal articles?/?abstracts?`),
	},
	{
		name: "Poster Presentation",
		kind: kindPoster,
		re:   regexp.MustCompile(`(?i)poster presentations?`),
	},
	{
		name: "Oral Presentation",
		kind: kindOral,
		re:   regexp.MustCompile(`(?i)oral presentations?`),
	},
}

var (
	// statusMarker matches the ERAS publication status annotation,
	// e.g. "Publication Status: Published.". The whitespace between the
	// two words may be a line break in wrapped text.
	statusMarker = regexp.MustCompile(`(?i)Publication\s+Status:\s*[^.]*\.`)

	// authorListStart matches the beginning of an ERAS author list:
	// a capitalized surname followed by one or two initials and a comma,
	// e.g. "Smith JA," or "O'Brien K,".
	authorListStart = regexp.MustCompile(`[A-Z][A-Za-z'-]+ [A-Z]{1,2},`)

	blankLines = regexp.MustCompile(`\n{2,}`)
)

// Segment normalizes raw CV text, locates the publications block, and
// splits it into per-entry fragments tagged by section heading.
//
// Poster and oral presentation sub-sections are recognized but not split
// into entries; structured extraction currently covers journal/abstract
// entries only. An empty or absent block yields an empty fragment list.
func Segment(text string) []Fragment {
	norm := Normalize(text)
	block := publicationsBlock(norm)
	if strings.TrimSpace(block) == "" {
		return nil
	}

	block = reinjectHeadings(block)

	var frags []Fragment
	for _, sub := range splitSubsections(block) {
		if sub.kind != kindJournal {
			continue
		}
		body := strings.Join(sub.lines, "\n")
		if strings.TrimSpace(body) == "" {
			continue
		}
		for _, chunk := range splitEntries(body) {
			frags = append(frags, Fragment{Section: sub.name, Text: chunk})
		}
	}
	return frags
}

// publicationsBlock extracts the lines between the first publications-style
// header and the next major CV section. If no header is found the entire
// input is treated as the block.
func publicationsBlock(text string) string {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if matchesAny(sectionHeaderPatterns, strings.TrimSpace(line)) {
			start = i
			break
		}
	}
	if start == -1 {
		return text
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if matchesAny(nextSectionPatterns, strings.TrimSpace(lines[i])) {
			end = i
			break
		}
	}

	return strings.Join(lines[start:end], "\n")
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	if s == "" {
		return false
	}
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// reinjectHeadings forces known sub-headings that appear inline onto their
// own lines so splitSubsections can find them. Overlapping matches keep
// the leftmost-longest span, so the "(Other than Published)" variant is
// not split by its shorter prefix pattern.
func reinjectHeadings(block string) string {
	type span struct{ start, end int }
	var spans []span
	for _, h := range subHeadings {
		for _, loc := range h.re.FindAllStringIndex(block, -1) {
			spans = append(spans, span{loc[0], loc[1]})
		}
	}
	if len(spans) == 0 {
		return block
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		if sp.start < prev {
			continue // overlapped by a longer, earlier span
		}
		b.WriteString(block[prev:sp.start])
		b.WriteString("\n")
		b.WriteString(block[sp.start:sp.end])
		b.WriteString("\n")
		prev = sp.end
	}
	b.WriteString(block[prev:])
	return b.String()
}

type subsection struct {
	name  string
	kind  sectionKind
	lines []string
}

// splitSubsections walks the block line by line, switching sub-sections on
// recognized headings. Unrecognized text accumulates under the current
// heading, which starts as the default "Publications".
func splitSubsections(block string) []subsection {
	current := subsection{name: "Publications", kind: kindJournal}
	var subs []subsection

	flush := func() {
		if len(current.lines) > 0 {
			subs = append(subs, current)
		}
	}

	for _, l := range strings.Split(block, "\n") {
		t := strings.TrimSpace(l)
		if t == "" {
			current.lines = append(current.lines, "")
			continue
		}

		if h, ok := matchSubHeading(t); ok {
			flush()
			current = subsection{name: h.name, kind: h.kind}
			continue
		}
		if matchesAny(sectionHeaderPatterns, t) {
			flush()
			current = subsection{name: t, kind: headerKind(t)}
			continue
		}

		current.lines = append(current.lines, t)
	}
	flush()

	return subs
}

func matchSubHeading(line string) (subHeading, bool) {
	for _, h := range subHeadings {
		if loc := h.re.FindStringIndex(line); loc != nil && loc[0] == 0 {
			return h, true
		}
	}
	return subHeading{}, false
}

func headerKind(line string) sectionKind {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "poster"):
		return kindPoster
	case strings.Contains(lower, "oral"):
		return kindOral
	default:
		return kindJournal
	}
}

// splitEntries splits one journal/abstract sub-section into entry chunks.
//
// Preference order: boundaries drawn after each status marker when more
// than one status-delimited chunk exists, else author-list-pattern
// boundaries, else blank lines, else the whole sub-section as one chunk.
// Status- and author-delimited chunks that carry no status marker are
// dropped as noise; the blank-line and whole-section fallbacks keep their
// chunks so non-ERAS input still degrades to something usable.
func splitEntries(text string) []string {
	if chunks := splitAfterStatus(text); len(chunks) > 1 {
		if kept := keepWithStatus(chunks); len(kept) > 0 {
			return kept
		}
	}
	if chunks := splitAtAuthorPattern(text); len(chunks) > 1 {
		if kept := keepWithStatus(chunks); len(kept) > 0 {
			return kept
		}
	}
	if chunks := blankLines.Split(text, -1); len(nonBlank(chunks)) > 1 {
		return compactAll(nonBlank(chunks))
	}
	return compactAll([]string{text})
}

// splitAfterStatus cuts the text directly after each status marker.
func splitAfterStatus(text string) []string {
	locs := statusMarker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var chunks []string
	prev := 0
	for _, loc := range locs {
		chunks = append(chunks, text[prev:loc[1]])
		prev = loc[1]
	}
	if strings.TrimSpace(text[prev:]) != "" {
		chunks = append(chunks, text[prev:])
	}
	return chunks
}

// splitAtAuthorPattern cuts the text at each author-list start that sits
// at an entry boundary (start of text, after a newline, or after the
// period ending the previous entry). Matches inside an author list are
// preceded by a comma and are not boundaries.
func splitAtAuthorPattern(text string) []string {
	var cuts []int
	for _, loc := range authorListStart.FindAllStringIndex(text, -1) {
		if isEntryBoundary(text, loc[0]) {
			cuts = append(cuts, loc[0])
		}
	}
	if len(cuts) == 0 {
		return []string{text}
	}

	var chunks []string
	prev := 0
	for _, cut := range cuts {
		if strings.TrimSpace(text[prev:cut]) != "" {
			chunks = append(chunks, text[prev:cut])
		}
		prev = cut
	}
	chunks = append(chunks, text[prev:])
	return chunks
}

func isEntryBoundary(text string, i int) bool {
	j := i - 1
	for j >= 0 && (text[j] == ' ' || text[j] == '\t') {
		j--
	}
	if j < 0 {
		return true
	}
	return text[j] == '\n' || text[j] == '.'
}

func keepWithStatus(chunks []string) []string {
	var kept []string
	for _, c := range chunks {
		if statusMarker.MatchString(c) {
			kept = append(kept, compactWS(c))
		}
	}
	return kept
}

func nonBlank(chunks []string) []string {
	var out []string
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}

func compactAll(chunks []string) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if compact := compactWS(c); compact != "" {
			out = append(out, compact)
		}
	}
	return out
}

// compactWS collapses a chunk to single-spaced, trimmed text.
func compactWS(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
