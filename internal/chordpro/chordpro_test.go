package chordpro

import "testing"

func TestExpandTabs(t *testing.T) {
	cases := map[string]string{
		"\tC":      "    C",
		"C\tG":     "C   G",
		"ab\tc":    "ab  c",
		"abcd\te":  "abcd    e",
		"no tabs":  "no tabs",
		"\t\tC":    "        C",
		"abc\t\tG": "abc     G",
	}
	for in, want := range cases {
		if got := ExpandTabs(in); got != want {
			t.Errorf("ExpandTabs(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractPositions(t *testing.T) {
	got := ExtractPositions("C       G       Am")
	want := []PositionedChord{{0, "C"}, {8, "G"}, {16, "Am"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d chords, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chord %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestExtractPositions_SkipsNonChords(t *testing.T) {
	got := ExtractPositions("C  hold  G.")
	if len(got) != 2 {
		t.Fatalf("expected 2 chords, got %v", got)
	}
	if got[0].Chord != "C" || got[0].Col != 0 {
		t.Errorf("unexpected first chord: %v", got[0])
	}
	// Trailing period is a punctuation artifact, stripped before matching.
	if got[1].Chord != "G" || got[1].Col != 9 {
		t.Errorf("unexpected second chord: %v", got[1])
	}
}

func TestExtractPositions_BarNotation(t *testing.T) {
	got := ExtractPositions("B bar   E")
	if len(got) != 2 {
		t.Fatalf("expected 2 chords, got %v", got)
	}
	if got[0].Chord != "Bbar" {
		t.Errorf("expected collapsed barre token Bbar, got %q", got[0].Chord)
	}
}

func TestExtractPositions_Empty(t *testing.T) {
	if got := ExtractPositions("just lyrics here"); got != nil {
		t.Errorf("expected no chords, got %v", got)
	}
}

func TestSnapToWordBoundary(t *testing.T) {
	lyric := []rune("Amazing grace how sweet")
	// word starts: 0 ("Amazing"), 8 ("grace"), 14 ("how"), 18 ("sweet")

	cases := []struct {
		name string
		pos  int
		want int
	}{
		{"already at word start", 0, 0},
		{"char after space is word start", 8, 8},
		{"just inside word snaps back", 9, 8},
		{"past midpoint snaps forward", 12, 14},
		{"tie prefers forward", 16, 18},
		{"beyond line kept as-is", 30, 30},
	}
	for _, tc := range cases {
		if got := SnapToWordBoundary(tc.pos, lyric); got != tc.want {
			t.Errorf("%s: SnapToWordBoundary(%d) = %d, want %d", tc.name, tc.pos, got, tc.want)
		}
	}
}

func TestSnapToWordBoundary_LastWord(t *testing.T) {
	// No following word: always snaps back regardless of depth.
	lyric := []rune("sound")
	if got := SnapToWordBoundary(4, lyric); got != 0 {
		t.Errorf("expected snap back to 0, got %d", got)
	}
}

func TestMerge(t *testing.T) {
	got := Merge("C       G       Am", "Amazing grace how sweet")
	want := "[C]Amazing [G]grace how [Am]sweet"
	if got != want {
		t.Errorf("Merge = %q, want %q", got, want)
	}
}

func TestMerge_NoChords(t *testing.T) {
	got := Merge("na na na", "  Amazing grace  ")
	if got != "Amazing grace" {
		t.Errorf("expected trimmed lyric passthrough, got %q", got)
	}
}

func TestMerge_PadsShortLyric(t *testing.T) {
	got := Merge("C           G", "Amazing")
	want := "[C]Amazing [G]"
	if got != want {
		t.Errorf("Merge = %q, want %q", got, want)
	}
}

func TestMerge_TabAlignedLines(t *testing.T) {
	// Both lines carry tabs; identical expansion keeps them aligned.
	got := Merge("\tC\tG", "\tAmazing\tgrace")
	want := "[C]Amazing [G]grace"
	if got != want {
		t.Errorf("Merge = %q, want %q", got, want)
	}
}

func TestStandalone(t *testing.T) {
	if got := Standalone("C   G   Am"); got != "[C] [G] [Am]" {
		t.Errorf("Standalone = %q", got)
	}
	if got := Standalone("no chords"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}
