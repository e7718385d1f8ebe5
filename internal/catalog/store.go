// Package catalog persists the generated song catalogs and reconciles
// fresh parses against them without destroying manual edits.
//
// The persisted form is a JS module (`const CHORD_SONGS = [...];`) so the
// viewer app can load it with a plain script tag, and so the file stays a
// hand-editable text document. Loading tolerates both an absent file (empty
// catalog) and malformed content: malformed content logs a warning and
// proceeds empty, which means manual edits in a corrupted file are lost on
// the next write. Writes go through a
// temp file and an atomic rename so a crash mid-write cannot corrupt the
// destination.
package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/hobbsjw/songbook/internal/entities"
)

const (
	// ChordVarName is the JS constant holding the chord catalog array.
	ChordVarName = "CHORD_SONGS"
	// LyricVarName is the JS constant holding the plain-lyrics catalog.
	LyricVarName = "SONGS"
)

// Store reads and writes the chord song catalog file.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns the persisted songs. An absent file is an empty catalog;
// malformed content logs a warning and also returns empty.
func (s *Store) Load() []entities.Song {
	raw, ok := loadArray(s.Path, ChordVarName)
	if !ok {
		return nil
	}
	var songs []entities.Song
	if err := json.Unmarshal(raw, &songs); err != nil {
		log.Printf("Warning: could not parse existing catalog %s: %v", s.Path, err)
		return nil
	}
	return songs
}

// Write persists the catalog atomically.
func (s *Store) Write(songs []entities.Song) error {
	if songs == nil {
		songs = []entities.Song{}
	}
	return writeArray(s.Path, ChordVarName, songs)
}

// LyricStore reads and writes the plain-lyrics catalog file.
type LyricStore struct {
	Path string
}

func NewLyricStore(path string) *LyricStore {
	return &LyricStore{Path: path}
}

func (s *LyricStore) Load() []entities.LyricSong {
	raw, ok := loadArray(s.Path, LyricVarName)
	if !ok {
		return nil
	}
	var songs []entities.LyricSong
	if err := json.Unmarshal(raw, &songs); err != nil {
		log.Printf("Warning: could not parse existing catalog %s: %v", s.Path, err)
		return nil
	}
	return songs
}

func (s *LyricStore) Write(songs []entities.LyricSong) error {
	if songs == nil {
		songs = []entities.LyricSong{}
	}
	return writeArray(s.Path, LyricVarName, songs)
}

// loadArray extracts the JSON array assigned to the named constant in a JS
// module file. Returns ok=false for an absent file or a file without the
// expected assignment.
func loadArray(path, varName string) (json.RawMessage, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read existing catalog %s: %v", path, err)
		}
		return nil, false
	}

	pattern := regexp.MustCompile(`(?s)const ` + varName + `\s*=\s*(\[.*\])\s*;`)
	m := pattern.FindSubmatch(content)
	if m == nil {
		log.Printf("Warning: no %s assignment found in %s, starting from an empty catalog", varName, path)
		return nil, false
	}
	return json.RawMessage(m[1]), true
}

func writeArray(path, varName string, songs any) error {
	payload, err := json.MarshalIndent(songs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	header := fmt.Sprintf("// Generated by songbook. Manual edits are preserved on rebuild.\n// Generated: %s\n",
		time.Now().Format(time.RFC3339))
	body := header + "const " + varName + " = " + string(payload) + ";\n"

	// Same-directory temp file so the rename stays on one filesystem.
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close catalog: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
