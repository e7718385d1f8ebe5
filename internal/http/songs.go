package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hobbsjw/songbook/internal/catalog"
	"github.com/hobbsjw/songbook/internal/entities"
)

// SongsController serves the chord and lyric catalogs read-only. Both
// catalogs are reloaded from disk on every request so manual edits to
// the JS files show up without a restart.
type SongsController struct {
	chords *catalog.Store
	lyrics *catalog.LyricStore
}

func NewSongsController(chords *catalog.Store, lyrics *catalog.LyricStore) *SongsController {
	return &SongsController{
		chords: chords,
		lyrics: lyrics,
	}
}

func (controller *SongsController) GetAllChordSongs(c *gin.Context) {
	songs := controller.chords.Load()
	if songs == nil {
		songs = []entities.Song{}
	}
	c.IndentedJSON(http.StatusOK, gin.H{"songs": songs, "count": len(songs)})
}

func (controller *SongsController) GetChordSongByTitle(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "title query parameter is required"})
		return
	}

	wanted := catalog.NormalizeTitle(title)
	for _, song := range controller.chords.Load() {
		if catalog.NormalizeTitle(song.Title) == wanted {
			c.IndentedJSON(http.StatusOK, song)
			return
		}
	}

	c.IndentedJSON(http.StatusNotFound, gin.H{"error": "song not found"})
}

func (controller *SongsController) GetAllLyricSongs(c *gin.Context) {
	songs := controller.lyrics.Load()
	if songs == nil {
		songs = []entities.LyricSong{}
	}
	c.IndentedJSON(http.StatusOK, gin.H{"songs": songs, "count": len(songs)})
}

func (controller *SongsController) GetSongStats(c *gin.Context) {
	chordSongs := controller.chords.Load()
	lyricSongs := controller.lyrics.Load()

	totalSections := 0
	keys := make(map[string]int)
	for _, song := range chordSongs {
		totalSections += len(song.Sections)
		if song.Key != "" {
			keys[song.Key]++
		}
	}

	stats := gin.H{
		"total_chord_songs": len(chordSongs),
		"total_lyric_songs": len(lyricSongs),
		"total_sections":    totalSections,
		"keys":              keys,
	}

	c.IndentedJSON(http.StatusOK, stats)
}
