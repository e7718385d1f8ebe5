package entities

type SectionType string

const (
	SectionVerse     SectionType = "verse"
	SectionChorus    SectionType = "chorus"
	SectionBridge    SectionType = "bridge"
	SectionTag       SectionType = "tag"
	SectionIntro     SectionType = "intro"
	SectionOutro     SectionType = "outro"
	SectionPreChorus SectionType = "pre-chorus"
	SectionGeneric   SectionType = "section"
)

// Section is a labeled block of a song. Lines are rendered strings: plain
// lyrics, lyrics with inline [Chord] annotations, chord-only annotation
// lines, or "" as an explicit blank separator.
type Section struct {
	Type  SectionType `json:"type"`
	Label string      `json:"label"`
	Lines []string    `json:"lines"`
}

// Song is a fully parsed chord chart. Key is a single pitch-class string
// such as "C" or "F#".
type Song struct {
	Title    string    `json:"title"`
	Key      string    `json:"key"`
	Sections []Section `json:"sections"`
}

// LyricLine is one line of a plain-lyrics song with its indent level
// (0-2, derived from leading tabs or spaces).
type LyricLine struct {
	Indent int    `json:"indent"`
	Text   string `json:"text"`
}

// LyricSong is the plain-lyrics pipeline's output: no chords, no sections,
// just indented lines.
type LyricSong struct {
	Title string      `json:"title"`
	Lines []LyricLine `json:"lines"`
}
