// Package songparse turns converted document text into structured songs.
// It drives the chord-line classifiers and the ChordPro merger over a
// document's lines, grouping them into ordered sections.
package songparse

import (
	"regexp"
	"strings"

	"github.com/hobbsjw/songbook/internal/chordpro"
	"github.com/hobbsjw/songbook/internal/chords"
	"github.com/hobbsjw/songbook/internal/entities"
)

const maxTitleLength = 80

var (
	dateHeaderPattern = regexp.MustCompile(`(?i)^\s*Sunday\b`)

	fileExtPattern     = regexp.MustCompile(`(?i)\.(odt|docx?|pages)$`)
	chordSuffixPattern = regexp.MustCompile(`(?i)\s*-?\s*chords?\s*$`)
	separatorPattern   = regexp.MustCompile(`[-_]+`)
	spaceRunPattern    = regexp.MustCompile(`\s+`)

	// Bare roots only: in the tab-inline form "A bar" reads as one barre
	// chord, but "Am bar" stays a chord plus a stray word.
	rootBarPattern = regexp.MustCompile(`\b([A-G][#b]?)\s+bar\b`)
)

// NormalizeLineBreaks rewrites Unicode line/paragraph separators and CR
// variants to plain newlines. Word exports use U+2028 heavily.
func NormalizeLineBreaks(text string) string {
	r := strings.NewReplacer(" ", "\n", " ", "\n", "\r\n", "\n", "\r", "\n")
	return r.Replace(text)
}

// IsDateHeader reports whether a line is a service-sheet date header
// ("Sunday May 4th ..."), stripped before title extraction.
func IsDateHeader(line string) bool {
	return dateHeaderPattern.MatchString(line)
}

// CleanFilename derives a song title from a document filename: extension
// stripped, a trailing "chord(s)" suffix removed, separator runs collapsed.
func CleanFilename(filename string) string {
	name := fileExtPattern.ReplaceAllString(filename, "")
	name = chordSuffixPattern.ReplaceAllString(name, "")
	name = separatorPattern.ReplaceAllString(name, " ")
	return strings.TrimSpace(spaceRunPattern.ReplaceAllString(name, " "))
}

// ParseChordDocument parses converted chord-chart text into a Song.
// Returns nil when the document is not a chord chart, or when parsing
// yields no non-empty sections; both are classification outcomes, not
// errors.
func ParseChordDocument(text, filename string) *entities.Song {
	rawLines := strings.Split(NormalizeLineBreaks(text), "\n")

	if !chords.IsChordFile(rawLines) {
		return nil
	}

	lines := stripLeadingHeaders(rawLines)
	title, bodyStart := extractTitle(lines)
	if title == "" {
		title = CleanFilename(filename)
	}

	body := skipSubtitles(lines[bodyStart:])
	sections := parseSections(body)
	if len(sections) == 0 {
		return nil
	}

	return &entities.Song{
		Title:    title,
		Key:      DetectKey(sections),
		Sections: sections,
	}
}

// stripLeadingHeaders drops blank lines and date headers from the top of
// the document.
func stripLeadingHeaders(lines []string) []string {
	start := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || IsDateHeader(line) {
			start = i + 1
			continue
		}
		break
	}
	return lines[start:]
}

// extractTitle finds the first short non-blank line that precedes any
// section label or chord line. A candidate appearing after either is
// lyrics, not a title. Over-long lines are skipped, not terminal: a later
// short line can still be the title. Length counts runes, so multibyte
// punctuation does not disqualify a title. Returns the title ("" if none)
// and the index of the first body line.
func extractTitle(lines []string) (string, int) {
	sawSectionOrChord := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if IsSectionLabel(trimmed) {
			sawSectionOrChord = true
			continue
		}
		if chords.IsChordLine(line) {
			sawSectionOrChord = true
			continue
		}
		if sawSectionOrChord {
			break
		}
		if len([]rune(trimmed)) < maxTitleLength {
			return trimmed, i + 1
		}
	}
	return "", 0
}

// Subtitle heuristics: lines under the title carrying metadata rather than
// lyrics. Each is a named predicate checked in order; the first match wins
// and the line is skipped.
var (
	capoKeyByPattern    = regexp.MustCompile(`^(capo|key\s|by\s)`)
	monthYearPattern    = regexp.MustCompile(`^[A-Z][a-z]+([-\s][A-Z][a-z]+)?\s+\d{4}`)
	initialedPattern    = regexp.MustCompile(`^[A-Z]\.\s`)
	twoWordNamePattern  = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+$`)
	capoShortPattern    = regexp.MustCompile(`^\d+[a-z]?$`)
	capitalStartPattern = regexp.MustCompile(`^[A-Z]`)
)

var subtitleRules = []struct {
	name  string
	match func(line string) bool
}{
	{"capo/key/by prefix", func(l string) bool {
		return capoKeyByPattern.MatchString(strings.ToLower(l))
	}},
	{"month-year date", func(l string) bool {
		return monthYearPattern.MatchString(l)
	}},
	{"initialed name", func(l string) bool {
		return initialedPattern.MatchString(l)
	}},
	{"two-word name", func(l string) bool {
		return twoWordNamePattern.MatchString(l)
	}},
	{"capo shorthand", func(l string) bool {
		return capoShortPattern.MatchString(strings.ToLower(l))
	}},
	{"short capitalized line with digit", func(l string) bool {
		if len(strings.Fields(l)) > 4 {
			return false
		}
		if chords.IsChordLine(l) || IsSectionLabel(l) {
			return false
		}
		if !capitalStartPattern.MatchString(l) {
			return false
		}
		return strings.ContainsAny(l, "0123456789")
	}},
}

func isSubtitle(line string) bool {
	for _, rule := range subtitleRules {
		if rule.match(line) {
			return true
		}
	}
	return false
}

// skipSubtitles drops blank and subtitle-ish lines from the top of the
// body, stopping at the first line matching neither.
func skipSubtitles(lines []string) []string {
	for len(lines) > 0 {
		trimmed := strings.TrimSpace(lines[0])
		if trimmed == "" || isSubtitle(trimmed) {
			lines = lines[1:]
			continue
		}
		break
	}
	return lines
}

// parseSections is the body state machine: it walks lines, classifying each
// as blank / section label / chord line / inline-ChordPro line / lyric, and
// groups the rendered output into ordered sections.
func parseSections(body []string) []entities.Section {
	var sections []entities.Section
	current := entities.Section{Type: entities.SectionVerse}

	flush := func() {
		if len(current.Lines) > 0 {
			sections = append(sections, current)
		}
	}

	i := 0
	for i < len(body) {
		line := body[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			// Blank separator, but never as the first line of a section.
			if len(current.Lines) > 0 {
				current.Lines = append(current.Lines, "")
			}
			i++
			continue
		}

		if typ, label, ok := ParseSectionLabel(trimmed); ok {
			flush()
			current = entities.Section{Type: typ, Label: label}
			i++
			continue
		}

		if chords.IsChordLine(line) {
			// Look ahead past blanks for the lyric line this annotates.
			j := i + 1
			for j < len(body) && strings.TrimSpace(body[j]) == "" {
				j++
			}
			if j < len(body) && !chords.IsChordLine(body[j]) && !IsSectionLabel(strings.TrimSpace(body[j])) {
				current.Lines = append(current.Lines, chordpro.Merge(line, body[j]))
				i = j + 1
			} else {
				// No lyric line follows; render the chords standalone.
				if standalone := chordpro.Standalone(line); standalone != "" {
					current.Lines = append(current.Lines, standalone)
				}
				i++
			}
			continue
		}

		if chords.HasInlineChordPro(line) {
			current.Lines = append(current.Lines, trimmed)
			i++
			continue
		}

		if inline := extractTabInlineChords(line); inline != "" {
			current.Lines = append(current.Lines, inline)
		} else {
			current.Lines = append(current.Lines, trimmed)
		}
		i++
	}
	flush()

	return cleanSections(sections)
}

// extractTabInlineChords handles lines where chords share the line with
// lyrics, separated by tabs: "G  F#/G Bm<TAB>lyric text". When the portion
// before the first tab run is at least half chord tokens, the chords are
// rendered as a bracketed prefix on the lyric portion. Returns "" when the
// pattern does not apply.
func extractTabInlineChords(line string) string {
	tabIdx := strings.IndexByte(line, '\t')
	if tabIdx < 0 {
		return ""
	}
	before := strings.TrimSpace(line[:tabIdx])
	after := strings.TrimSpace(strings.TrimLeft(line[tabIdx:], "\t"))
	if before == "" || after == "" {
		return ""
	}

	tokens := strings.Fields(rootBarPattern.ReplaceAllString(before, "${1}bar"))
	if len(tokens) == 0 {
		return ""
	}
	var chordTokens []string
	for _, t := range tokens {
		if chords.IsToken(t) {
			chordTokens = append(chordTokens, t)
		}
	}
	if float64(len(chordTokens)) < float64(len(tokens))*0.5 {
		return ""
	}

	var b strings.Builder
	for _, c := range chordTokens {
		b.WriteString("[" + c + "]")
	}
	b.WriteString(after)
	return b.String()
}

// cleanSections trims leading/trailing blank markers, collapses runs of
// blanks, and drops sections left empty.
func cleanSections(sections []entities.Section) []entities.Section {
	var out []entities.Section
	for _, s := range sections {
		lines := s.Lines
		for len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for len(lines) > 0 && lines[0] == "" {
			lines = lines[1:]
		}
		var cleaned []string
		for _, l := range lines {
			if l == "" && len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
				continue
			}
			cleaned = append(cleaned, l)
		}
		if len(cleaned) == 0 {
			continue
		}
		s.Lines = cleaned
		out = append(out, s)
	}
	return out
}

// DetectKey infers a song's tonal center as the most frequent chord root
// across all sections. Counting is stable: first-seen order breaks ties.
// Songs with no chords default to "C".
func DetectKey(sections []entities.Section) string {
	counts := make(map[string]int)
	var order []string
	for _, s := range sections {
		for _, line := range s.Lines {
			for _, root := range chords.InlineChordRoots(line) {
				if _, known := chords.NoteIndex[root]; !known {
					continue
				}
				if _, seen := counts[root]; !seen {
					order = append(order, root)
				}
				counts[root]++
			}
		}
	}

	best := ""
	for _, root := range order {
		if best == "" || counts[root] > counts[best] {
			best = root
		}
	}
	if best == "" {
		return "C"
	}
	return best
}
