package songparse

import (
	"testing"

	"github.com/hobbsjw/songbook/internal/entities"
)

func TestParseSectionLabel_Bracketed(t *testing.T) {
	typ, label, ok := ParseSectionLabel("[Verse 1]")
	if !ok {
		t.Fatal("expected [Verse 1] to parse as a label")
	}
	if typ != entities.SectionVerse {
		t.Errorf("expected verse, got %s", typ)
	}
	if label != "Verse 1" {
		t.Errorf("expected label 'Verse 1', got %q", label)
	}

	typ, _, ok = ParseSectionLabel("[Chorus]")
	if !ok || typ != entities.SectionChorus {
		t.Errorf("expected [Chorus] to parse as chorus, got ok=%v typ=%s", ok, typ)
	}
}

func TestParseSectionLabel_RejectsChordBrackets(t *testing.T) {
	for _, line := range []string{"[Am]", "[Am7]", "[G/B]", "[F#]", "[C.]"} {
		if IsSectionLabel(line) {
			t.Errorf("%q is a chord annotation, not a section label", line)
		}
	}
}

func TestParseSectionLabel_LooseBracket(t *testing.T) {
	typ, label, ok := ParseSectionLabel("[chorus x2] softly")
	if !ok || typ != entities.SectionChorus {
		t.Fatalf("expected loose [chorus x2] to parse as chorus, got ok=%v typ=%s", ok, typ)
	}
	if label != "chorus x2" {
		t.Errorf("unexpected label %q", label)
	}

	// More than 10 characters of trailing text disqualifies the line.
	if IsSectionLabel("[chorus] and then everyone sings along") {
		t.Error("long trailer should not parse as a label")
	}
}

func TestParseSectionLabel_Unbracketed(t *testing.T) {
	cases := map[string]entities.SectionType{
		"Verse 1":       entities.SectionVerse,
		"Chorus":        entities.SectionChorus,
		"Repeat Chorus": entities.SectionChorus,
		"Final Chorus":  entities.SectionChorus,
		"Chorus x2":     entities.SectionChorus,
		"Bridge":        entities.SectionBridge,
		"Tag":           entities.SectionTag,
		"Intro":         entities.SectionIntro,
		"Outro":         entities.SectionOutro,
		"Ending":        entities.SectionOutro,
		"Pre-Chorus":    entities.SectionChorus, // "chorus" outranks the "pre" prefix
		"Interlude":     entities.SectionGeneric,
		"Turnaround":    entities.SectionGeneric,
		"Instrumental":  entities.SectionGeneric,
		"Vamp":          entities.SectionGeneric,
	}
	for line, want := range cases {
		typ, _, ok := ParseSectionLabel(line)
		if !ok {
			t.Errorf("expected %q to parse as a label", line)
			continue
		}
		if typ != want {
			t.Errorf("%q: expected type %s, got %s", line, want, typ)
		}
	}
}

func TestParseSectionLabel_RejectsNonLabels(t *testing.T) {
	for _, line := range []string{
		"Amazing grace how sweet the sound",
		"C G Am",
		"Versed in the ways", // "Verse" keyword must match the whole line shape
		"",
	} {
		if IsSectionLabel(line) {
			t.Errorf("%q should not parse as a section label", line)
		}
	}
}

func TestParseSectionLabel_BracketedPreChorus(t *testing.T) {
	// The ordered keyword rules check "chorus" before "pre", so a
	// pre-chorus label classifies as chorus. Precedence is part of the
	// observed contract.
	typ, _, ok := ParseSectionLabel("[Pre-Chorus]")
	if !ok || typ != entities.SectionChorus {
		t.Errorf("expected chorus from [Pre-Chorus], got ok=%v typ=%s", ok, typ)
	}
	typ, _, ok = ParseSectionLabel("[Pre]")
	if !ok || typ != entities.SectionPreChorus {
		t.Errorf("expected pre-chorus from [Pre], got ok=%v typ=%s", ok, typ)
	}
}
