// Package lyrics is the plain-lyrics sibling of the chord pipeline: it
// extracts a title and indented text lines from documents that are not
// chord charts. No chord handling happens here.
package lyrics

import (
	"regexp"
	"strings"

	"github.com/hobbsjw/songbook/internal/chords"
	"github.com/hobbsjw/songbook/internal/entities"
	"github.com/hobbsjw/songbook/internal/songparse"
)

var bracketOnlyPattern = regexp.MustCompile(`^\[.*\]$`)

const maxTitleLength = 80

// ParseDocument parses converted text into a plain-lyrics song. Returns nil
// when the document classifies as a chord chart; those belong to the chord
// pipeline.
func ParseDocument(text, filename string) *entities.LyricSong {
	rawLines := strings.Split(songparse.NormalizeLineBreaks(text), "\n")

	if chords.IsChordFile(rawLines) {
		return nil
	}

	lines := stripLeadingHeaders(rawLines)
	title := extractTitle(lines, filename)

	// Skip the title line itself before rendering the body.
	bodyStart := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			bodyStart = i + 1
			continue
		}
		if trimmed == title {
			bodyStart = i + 1
		}
		break
	}

	var parsed []entities.LyricLine
	for _, line := range lines[bodyStart:] {
		text := strings.TrimSpace(line)
		if bracketOnlyPattern.MatchString(text) {
			continue
		}
		parsed = append(parsed, entities.LyricLine{Indent: indentLevel(line), Text: text})
	}

	// Trim leading and trailing blank lines.
	for len(parsed) > 0 && parsed[0].Text == "" {
		parsed = parsed[1:]
	}
	for len(parsed) > 0 && parsed[len(parsed)-1].Text == "" {
		parsed = parsed[:len(parsed)-1]
	}

	return &entities.LyricSong{Title: title, Lines: parsed}
}

func stripLeadingHeaders(lines []string) []string {
	start := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || songparse.IsDateHeader(line) {
			start = i + 1
			continue
		}
		break
	}
	return lines[start:]
}

func extractTitle(lines []string, filename string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if songparse.IsDateHeader(line) {
			continue
		}
		if len(trimmed) > 0 && len([]rune(trimmed)) < maxTitleLength {
			return trimmed
		}
		break
	}
	return songparse.CleanFilename(filename)
}

// indentLevel maps leading whitespace to a 0-2 indent: tabs count 1:1,
// otherwise 8 spaces read as two levels and 4 as one.
func indentLevel(line string) int {
	tabs := 0
	for tabs < len(line) && line[tabs] == '\t' {
		tabs++
	}
	if tabs > 0 {
		return tabs
	}
	spaces := 0
	for spaces < len(line) && line[spaces] == ' ' {
		spaces++
	}
	switch {
	case spaces >= 8:
		return 2
	case spaces >= 4:
		return 1
	}
	return 0
}
