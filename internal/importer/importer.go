// Package importer drives a batch import: enumerate the source documents,
// convert each to text, parse, and collect the results plus a skip report.
// Processing is strictly sequential; a per-document failure is recorded and
// the batch continues with the next document.
package importer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hobbsjw/songbook/internal/entities"
	"github.com/hobbsjw/songbook/internal/lyrics"
	"github.com/hobbsjw/songbook/internal/songparse"
)

// TextConverter converts one document to plain text. Satisfied by
// textconv.Converter; tests substitute fakes.
type TextConverter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Skip records one document excluded from a batch and why.
type Skip struct {
	Filename string
	Reason   string
}

// ChordResult is the outcome of a chord-pipeline batch.
type ChordResult struct {
	TotalFiles int
	Songs      []entities.Song
	Skipped    []Skip
}

// LyricResult is the outcome of a lyrics-pipeline batch.
type LyricResult struct {
	TotalFiles int
	Songs      []entities.LyricSong
	Skipped    []Skip
}

var (
	documentExtensions = map[string]bool{".odt": true, ".doc": true, ".docx": true}
	chordNamePattern   = regexp.MustCompile(`(?i)chords?`)
)

// Importer runs document batches over one source directory.
type Importer struct {
	Dir       string
	Converter TextConverter
	Verbose   bool
}

func New(dir string, conv TextConverter) *Importer {
	return &Importer{Dir: dir, Converter: conv}
}

// listDocuments returns the importable document filenames in the source
// directory, sorted. Editor lock files ("~$...") are ignored.
func (imp *Importer) listDocuments() ([]string, error) {
	entries, err := os.ReadDir(imp.Dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory %s: %w", imp.Dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !documentExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// RunChords converts and parses every document in the source directory
// through the chord pipeline. Documents that fail conversion, are not
// chord charts, or parse to nothing are reported as skips.
func (imp *Importer) RunChords(ctx context.Context) (*ChordResult, error) {
	files, err := imp.listDocuments()
	if err != nil {
		return nil, err
	}

	res := &ChordResult{TotalFiles: len(files)}
	for _, filename := range files {
		path := filepath.Join(imp.Dir, filename)

		text, err := imp.Converter.Convert(ctx, path)
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{filename, fmt.Sprintf("conversion error: %v", err)})
			continue
		}

		song := songparse.ParseChordDocument(text, filename)
		if song == nil {
			res.Skipped = append(res.Skipped, Skip{filename, "not a chord file"})
			continue
		}
		if imp.Verbose {
			log.Printf("Parsed %s: %q (key %s, %d sections)", filename, song.Title, song.Key, len(song.Sections))
		}
		res.Songs = append(res.Songs, *song)
	}
	return res, nil
}

// RunLyrics converts and parses every non-chord document through the
// plain-lyrics pipeline. Files named like chord charts are skipped by name
// without conversion; chord charts discovered by content are skipped too.
func (imp *Importer) RunLyrics(ctx context.Context) (*LyricResult, error) {
	files, err := imp.listDocuments()
	if err != nil {
		return nil, err
	}

	res := &LyricResult{TotalFiles: len(files)}
	for _, filename := range files {
		base := strings.TrimSuffix(filename, filepath.Ext(filename))
		if chordNamePattern.MatchString(base) {
			res.Skipped = append(res.Skipped, Skip{filename, "chord file by name"})
			continue
		}

		path := filepath.Join(imp.Dir, filename)
		text, err := imp.Converter.Convert(ctx, path)
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{filename, fmt.Sprintf("conversion error: %v", err)})
			continue
		}

		song := lyrics.ParseDocument(text, filename)
		if song == nil {
			res.Skipped = append(res.Skipped, Skip{filename, "chord file"})
			continue
		}
		if imp.Verbose {
			log.Printf("Parsed %s: %q (%d lines)", filename, song.Title, len(song.Lines))
		}
		res.Songs = append(res.Songs, *song)
	}
	return res, nil
}
