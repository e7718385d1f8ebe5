package songparse

import (
	"regexp"
	"strings"

	"github.com/hobbsjw/songbook/internal/chords"
	"github.com/hobbsjw/songbook/internal/entities"
)

// Regex patterns for section label recognition
var (
	// Exact bracketed label: "[Verse 1]", "[Chorus]"
	bracketLabelPattern = regexp.MustCompile(`^\[([^\]]+)\]\s*$`)

	// Loose bracketed label with trailing text: "[chorus x2] play soft"
	bracketLabelLoosePattern = regexp.MustCompile(`^\[([^\]]+)\]`)

	// Unbracketed labels: "Verse 1", "Repeat Chorus", "Final Chorus",
	// "Chorus x2", "Tag Repeat"
	plainLabelPattern = regexp.MustCompile(
		`(?i)^(Repeat\s+|Final\s+)?` +
			`(Intro|Verse|Chorus|Bridge|Tag|Outro|Pre[\s-]?Chorus|Interlude|Turn(?:around)?|Instrumental|Ending|Vamp)` +
			`(\s+\d+)?(\s+(Repeat|x\d+))?\s*$`,
	)
)

// labelRule maps a keyword to a section type. Rules are evaluated in order;
// the first case-insensitive substring match wins, so precedence lives in
// the slice order, not in nested conditionals.
type labelRule struct {
	keyword string
	typ     entities.SectionType
}

var labelRules = []labelRule{
	{"verse", entities.SectionVerse},
	{"chorus", entities.SectionChorus},
	{"repeat", entities.SectionChorus},
	{"bridge", entities.SectionBridge},
	{"tag", entities.SectionTag},
	{"intro", entities.SectionIntro},
	{"outro", entities.SectionOutro},
	{"ending", entities.SectionOutro},
	{"pre", entities.SectionPreChorus},
	{"interlude", entities.SectionGeneric},
	{"turn", entities.SectionGeneric},
	{"instrumental", entities.SectionGeneric},
	{"vamp", entities.SectionGeneric},
}

func classifyLabel(label string) entities.SectionType {
	lower := strings.ToLower(label)
	for _, rule := range labelRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.typ
		}
	}
	return entities.SectionGeneric
}

// maxLooseLabelTrailer is how much text may follow a loose bracketed label
// before the line stops reading as a label.
const maxLooseLabelTrailer = 10

// ParseSectionLabel decides whether a line is a section label and, if so,
// returns its type and human-readable label. A bracketed form is rejected
// when its content is a chord token ("[Am7]" is inline notation, not a
// label). Returns ok=false for anything that is not a label.
func ParseSectionLabel(line string) (entities.SectionType, string, bool) {
	trimmed := strings.TrimSpace(line)

	if m := bracketLabelPattern.FindStringSubmatch(trimmed); m != nil {
		content := strings.TrimSpace(m[1])
		if isChordContent(content) {
			return "", "", false
		}
		return classifyLabel(content), content, true
	}

	if m := bracketLabelLoosePattern.FindStringSubmatch(trimmed); m != nil {
		content := strings.TrimSpace(m[1])
		if isChordContent(content) {
			return "", "", false
		}
		rest := strings.TrimSpace(trimmed[len(m[0]):])
		if len(rest) > maxLooseLabelTrailer {
			return "", "", false
		}
		return classifyLabel(content), content, true
	}

	if plainLabelPattern.MatchString(trimmed) {
		return classifyLabel(trimmed), trimmed, true
	}

	return "", "", false
}

func isChordContent(content string) bool {
	return chords.IsToken(content) || chords.IsToken(strings.TrimRight(content, ".,;:"))
}

// IsSectionLabel reports whether a line would parse as a section label.
func IsSectionLabel(line string) bool {
	_, _, ok := ParseSectionLabel(line)
	return ok
}
