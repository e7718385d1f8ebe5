package catalog

import (
	"sort"
	"strings"

	"github.com/hobbsjw/songbook/internal/entities"
)

// NormalizeTitle reduces a title to its reconciliation identity: lowercase
// with every non-alphanumeric character removed.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// titlesMatch applies the contains-either-direction identity rule, which
// tolerates suffix variations like "The Vow – Cody Carnes" vs "The Vow".
// It can over-merge distinct songs sharing a very short title; that
// looseness is inherited from the observed behavior deliberately.
func titlesMatch(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// Options select the reconciliation mode. Zero value is the default merge:
// every existing entry is preserved and fresh parses matching an existing
// title are discarded as duplicates.
type Options struct {
	// ForceAll discards the entire persisted catalog so every fresh parse
	// imports as new.
	ForceAll bool
	// ForceTitles removes only the existing entries matching these title
	// fragments, so those songs re-import fresh while all others keep
	// their manual edits.
	ForceTitles []string
}

// Result reports what a reconciliation did.
type Result struct {
	Songs      []entities.Song // final catalog, sorted by title
	Preserved  int             // existing entries kept
	Added      []string        // titles of newly imported songs
	Duplicates int             // fresh parses discarded as already present
	Reimported []string        // existing titles dropped via ForceTitles
}

// Reconcile merges freshly parsed songs into the persisted catalog.
func Reconcile(existing, parsed []entities.Song, opts Options) Result {
	var res Result

	if opts.ForceAll {
		existing = nil
	} else if len(opts.ForceTitles) > 0 {
		var fragments []string
		for _, t := range opts.ForceTitles {
			fragments = append(fragments, NormalizeTitle(t))
		}
		var kept []entities.Song
		for _, s := range existing {
			nt := NormalizeTitle(s.Title)
			dropped := false
			for _, f := range fragments {
				if titlesMatch(nt, f) {
					dropped = true
					break
				}
			}
			if dropped {
				res.Reimported = append(res.Reimported, s.Title)
			} else {
				kept = append(kept, s)
			}
		}
		existing = kept
	}

	existingTitles := make([]string, len(existing))
	for i, s := range existing {
		existingTitles[i] = NormalizeTitle(s.Title)
	}

	merged := append([]entities.Song{}, existing...)
	for _, song := range parsed {
		nt := NormalizeTitle(song.Title)
		duplicate := false
		for _, et := range existingTitles {
			if titlesMatch(nt, et) {
				duplicate = true
				break
			}
		}
		if duplicate {
			res.Duplicates++
			continue
		}
		merged = append(merged, song)
		res.Added = append(res.Added, song.Title)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return strings.ToLower(merged[i].Title) < strings.ToLower(merged[j].Title)
	})

	res.Songs = merged
	res.Preserved = len(existing)
	return res
}

// SortLyricSongs orders a plain-lyrics catalog by title, case-insensitively.
func SortLyricSongs(songs []entities.LyricSong) {
	sort.SliceStable(songs, func(i, j int) bool {
		return strings.ToLower(songs[i].Title) < strings.ToLower(songs[j].Title)
	})
}
