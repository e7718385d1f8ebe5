// Package chords recognizes chord tokens and classifies chord-bearing lines
// and documents. The heuristics come from hand-tuned thresholds observed to
// work on Word-exported chord charts; they are deliberately kept as small,
// independently testable predicates.
package chords

import (
	"regexp"
	"strings"
)

// Regex patterns for chord recognition
var (
	// Matches a single chord token like C, Am, G#m7, Dsus4, F#/C#, Eb, Cmaj7
	chordTokenPattern = regexp.MustCompile(
		`^[A-G][#b]?(m(?:aj)?|min|dim|aug|sus[24]?|add\d+)?\d*(/[A-G][#b]?)?$`,
	)

	// "G bar" is an alternate notation for a barre chord; collapsed to "Gbar"
	// before tokenizing so it reads as one token
	barNotationPattern = regexp.MustCompile(
		`\b([A-G][#b]?(?:m|maj|min|dim|aug|sus[24]?|add\d+|\d+)?)\s*bar\b`,
	)

	// Inline ChordPro bracket like [C], [Am7], [G/B] embedded in lyrics
	inlineChordPattern = regexp.MustCompile(
		`\[([A-G][#b]?(?:m(?:aj)?|min|dim|aug|sus[24]?|add\d+)?\d*(?:/[A-G][#b]?)?)\]`,
	)
)

var (
	notesSharp = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	notesFlat  = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	// NoteIndex maps every sharp and flat note name to its semitone index.
	NoteIndex = buildNoteIndex()
)

func buildNoteIndex() map[string]int {
	m := make(map[string]int, len(notesSharp)+len(notesFlat))
	for i, n := range notesSharp {
		m[n] = i
	}
	for i, n := range notesFlat {
		m[n] = i
	}
	return m
}

// IsToken reports whether a single whitespace-delimited token is a chord.
// A trailing "bar" (barre chord, e.g. "Bbar", "A7bar") is stripped before
// matching the grammar.
func IsToken(token string) bool {
	if strings.HasSuffix(token, "bar") && len(token) > 3 {
		token = token[:len(token)-3]
	}
	if strings.HasSuffix(token, "bar") {
		token = token[:len(token)-3]
	}
	return chordTokenPattern.MatchString(token)
}

// CollapseBarNotation rewrites "<chord> bar" sequences to the single-token
// barre form "<chord>bar".
func CollapseBarNotation(line string) string {
	return barNotationPattern.ReplaceAllString(line, "${1}bar")
}

// IsChordLine reports whether a line consists primarily of chord tokens:
// at least one chord token, and chord tokens at least 60% of all tokens.
func IsChordLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	tokens := strings.Fields(CollapseBarNotation(trimmed))
	if len(tokens) == 0 {
		return false
	}
	chordCount := 0
	for _, t := range tokens {
		if IsToken(t) {
			chordCount++
		}
	}
	return chordCount > 0 && float64(chordCount) >= float64(len(tokens))*0.6
}

// HasInlineChordPro reports whether a line carries inline ChordPro notation
// like "[C]word [G]word". A single bracket with no surrounding text is not
// enough (that is more likely a section label); two or more brackets are
// accepted even without lyrics, covering bare annotation lines like
// "[C] [G] [F]".
func HasInlineChordPro(line string) bool {
	matches := inlineChordPattern.FindAllString(line, -1)
	if len(matches) < 1 {
		return false
	}
	stripped := strings.TrimSpace(inlineChordPattern.ReplaceAllString(line, ""))
	return len(stripped) > 0 || len(matches) >= 2
}

// IsChordFile reports whether a document is a chord chart: strictly more
// than 15% of its non-empty lines are chord lines or carry inline ChordPro
// notation.
func IsChordFile(lines []string) bool {
	nonEmpty := 0
	chordish := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		nonEmpty++
		if IsChordLine(l) || HasInlineChordPro(l) {
			chordish++
		}
	}
	if nonEmpty == 0 {
		return false
	}
	return float64(chordish)/float64(nonEmpty) > 0.15
}

// InlineChordRoots returns the root pitch (letter plus optional accidental)
// of every inline bracketed chord in the line, in order of appearance.
func InlineChordRoots(line string) []string {
	var roots []string
	for _, m := range inlineChordPattern.FindAllStringSubmatch(line, -1) {
		chord := m[1]
		root := chord[:1]
		if len(chord) > 1 && (chord[1] == '#' || chord[1] == 'b') {
			root = chord[:2]
		}
		roots = append(roots, root)
	}
	return roots
}
