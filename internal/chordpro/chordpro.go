// Package chordpro reconstructs inline ChordPro markup from documents where
// chords are typeset on a separate line above the lyrics they accompany.
//
// Word-exported documents render in proportional fonts, so the character
// columns recorded in the flattened text only approximate where the author
// placed each chord. Every stage here is a pure transformation over
// immutable strings: tabs are expanded to a fixed column model, chord tokens
// are extracted with their columns, each column is snapped to the nearest
// lyric word boundary, and the chords are inserted back right-to-left so
// earlier insertions never shift pending columns.
package chordpro

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hobbsjw/songbook/internal/chords"
)

// TabWidth is the tab stop used for all column arithmetic. Four columns
// approximates Word's proportional-font tab stops much better than the
// conventional eight. Both lines of a chord/lyric pair must be expanded
// with the same width or alignment breaks.
const TabWidth = 4

// PositionedChord is a chord token at a 0-based column within a
// tab-expanded line.
type PositionedChord struct {
	Col   int
	Chord string
}

var (
	trailingChordGapPattern = regexp.MustCompile(`\s{2,}(\[[^\]]+\])\s*$`)
	afterBracketGapPattern  = regexp.MustCompile(`\] {2,}`)
)

// ExpandTabs replaces tab characters with spaces up to the next TabWidth
// column. Columns count runes, not bytes.
func ExpandTabs(line string) string {
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			spaces := TabWidth - col%TabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// ExtractPositions pulls chord tokens and their columns out of a chord-only
// line. Tabs are expanded first so columns match visual positions, barre
// notation is collapsed to single tokens, and trailing punctuation
// artifacts are stripped before grammar matching. Results are ordered by
// strictly increasing column.
func ExtractPositions(chordLine string) []PositionedChord {
	collapsed := []rune(chords.CollapseBarNotation(ExpandTabs(chordLine)))

	var out []PositionedChord
	i := 0
	for i < len(collapsed) {
		if collapsed[i] == ' ' {
			i++
			continue
		}
		j := i
		for j < len(collapsed) && collapsed[j] != ' ' {
			j++
		}
		token := strings.TrimRight(string(collapsed[i:j]), ".,;:")
		if token != "" && chords.IsToken(token) {
			out = append(out, PositionedChord{Col: i, Chord: token})
		}
		i = j
	}
	return out
}

// SnapToWordBoundary maps a chord column onto the nearest word start in the
// expanded lyric line. A column already at a word start is kept. Otherwise,
// a chord past the midpoint of its word snaps forward to the next word;
// anything else snaps to whichever of the current word start and the next
// word start is closer, preferring forward on a tie.
func SnapToWordBoundary(pos int, lyric []rune) int {
	if pos >= len(lyric) {
		return pos
	}
	if pos == 0 || lyric[pos-1] == ' ' {
		return pos
	}

	wordStart := pos
	for wordStart > 0 && lyric[wordStart-1] != ' ' {
		wordStart--
	}

	wordEnd := pos
	for wordEnd < len(lyric) && lyric[wordEnd] != ' ' {
		wordEnd++
	}
	nextWord := wordEnd
	for nextWord < len(lyric) && lyric[nextWord] == ' ' {
		nextWord++
	}

	distBack := pos - wordStart
	hasNext := nextWord < len(lyric)

	// Deep into the word: it reads as leading into the following word.
	wordLen := wordEnd - wordStart
	if wordLen > 0 && 2*distBack > wordLen && hasNext {
		return nextWord
	}

	if hasNext && nextWord-pos <= distBack {
		return nextWord
	}
	return wordStart
}

// Merge combines a chord line with the lyric line below it into a single
// ChordPro string. Chords whose columns land past the end of the lyric get
// the lyric padded out so there is a character to attach before. Insertion
// runs in descending column order, then runs of spaces around trailing and
// inserted brackets are collapsed.
func Merge(chordLine, lyricLine string) string {
	positioned := ExtractPositions(chordLine)
	if len(positioned) == 0 {
		return strings.TrimSpace(lyricLine)
	}

	lyric := []rune(strings.TrimRightFunc(ExpandTabs(lyricLine), unicode.IsSpace))

	maxPos := 0
	for _, pc := range positioned {
		if pc.Col > maxPos {
			maxPos = pc.Col
		}
	}
	for len(lyric) <= maxPos {
		lyric = append(lyric, ' ')
	}

	snapped := make([]PositionedChord, len(positioned))
	for i, pc := range positioned {
		snapped[i] = PositionedChord{Col: SnapToWordBoundary(pc.Col, lyric), Chord: pc.Chord}
	}

	result := lyric
	for i := len(snapped) - 1; i >= 0; i-- {
		insertPos := snapped[i].Col
		if insertPos > len(result) {
			insertPos = len(result)
		}
		marker := []rune("[" + snapped[i].Chord + "]")
		rest := append([]rune{}, result[insertPos:]...)
		result = append(append(result[:insertPos], marker...), rest...)
	}

	merged := string(result)
	merged = trailingChordGapPattern.ReplaceAllString(merged, " $1")
	merged = afterBracketGapPattern.ReplaceAllString(merged, "] ")
	return strings.TrimSpace(merged)
}

// Standalone renders a chord line that has no lyric line beneath it as its
// bracketed tokens joined by single spaces, e.g. "[C] [G] [Am]". Returns ""
// if the line yields no chords.
func Standalone(chordLine string) string {
	positioned := ExtractPositions(chordLine)
	if len(positioned) == 0 {
		return ""
	}
	parts := make([]string, len(positioned))
	for i, pc := range positioned {
		parts[i] = "[" + pc.Chord + "]"
	}
	return strings.Join(parts, " ")
}
