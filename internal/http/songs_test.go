package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbsjw/songbook/internal/catalog"
	"github.com/hobbsjw/songbook/internal/entities"
)

func setupSongStores(t *testing.T) (*catalog.Store, *catalog.LyricStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	chords := catalog.NewStore(filepath.Join(dir, "chord_songs.js"))
	lyrics := catalog.NewLyricStore(filepath.Join(dir, "songs.js"))
	return chords, lyrics
}

func TestSongsController_GetAllChordSongs(t *testing.T) {
	t.Run("returns empty list when catalog absent", func(t *testing.T) {
		chords, lyrics := setupSongStores(t)

		controller := NewSongsController(chords, lyrics)

		router := gin.New()
		router.GET("/api/chords", controller.GetAllChordSongs)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/chords", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, float64(0), response["count"])
		assert.Empty(t, response["songs"])
	})

	t.Run("returns songs with count", func(t *testing.T) {
		chords, lyrics := setupSongStores(t)

		require.NoError(t, chords.Write([]entities.Song{
			{Title: "Amazing Grace", Key: "C"},
			{Title: "The Vow", Key: "G"},
		}))

		controller := NewSongsController(chords, lyrics)

		router := gin.New()
		router.GET("/api/chords", controller.GetAllChordSongs)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/chords", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, float64(2), response["count"])
		songs := response["songs"].([]interface{})
		assert.Len(t, songs, 2)
	})
}

func TestSongsController_GetChordSongByTitle(t *testing.T) {
	t.Run("returns 400 when title is missing", func(t *testing.T) {
		chords, lyrics := setupSongStores(t)

		controller := NewSongsController(chords, lyrics)

		router := gin.New()
		router.GET("/api/chords/search", controller.GetChordSongByTitle)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/chords/search", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "title query parameter is required")
	})

	t.Run("returns 404 when song not found", func(t *testing.T) {
		chords, lyrics := setupSongStores(t)

		controller := NewSongsController(chords, lyrics)

		router := gin.New()
		router.GET("/api/chords/search", controller.GetChordSongByTitle)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/chords/search?title=NonExistent", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "song not found")
	})

	t.Run("matches titles ignoring case and punctuation", func(t *testing.T) {
		chords, lyrics := setupSongStores(t)

		require.NoError(t, chords.Write([]entities.Song{
			{Title: "It Is Well (With My Soul)", Key: "D"},
		}))

		controller := NewSongsController(chords, lyrics)

		router := gin.New()
		router.GET("/api/chords/search", controller.GetChordSongByTitle)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/chords/search?title=it+is+well+with+my+soul", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var song entities.Song
		err := json.Unmarshal(w.Body.Bytes(), &song)
		require.NoError(t, err)
		assert.Equal(t, "It Is Well (With My Soul)", song.Title)
		assert.Equal(t, "D", song.Key)
	})
}

func TestSongsController_GetSongStats(t *testing.T) {
	t.Run("returns zero stats when catalogs are empty", func(t *testing.T) {
		chords, lyrics := setupSongStores(t)

		controller := NewSongsController(chords, lyrics)

		router := gin.New()
		router.GET("/api/songs/stats", controller.GetSongStats)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/songs/stats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, float64(0), response["total_chord_songs"])
		assert.Equal(t, float64(0), response["total_lyric_songs"])
	})

	t.Run("returns correct stats", func(t *testing.T) {
		chords, lyrics := setupSongStores(t)

		require.NoError(t, chords.Write([]entities.Song{
			{
				Title: "Stats Song 1",
				Key:   "C",
				Sections: []entities.Section{
					{Type: entities.SectionVerse, Lines: []string{"[C]line"}},
					{Type: entities.SectionChorus, Lines: []string{"[G]line"}},
				},
			},
			{
				Title: "Stats Song 2",
				Key:   "C",
				Sections: []entities.Section{
					{Type: entities.SectionVerse, Lines: []string{"[Am]line"}},
				},
			},
		}))
		require.NoError(t, lyrics.Write([]entities.LyricSong{
			{Title: "Lyric Song", Lines: []entities.LyricLine{{Text: "line"}}},
		}))

		controller := NewSongsController(chords, lyrics)

		router := gin.New()
		router.GET("/api/songs/stats", controller.GetSongStats)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/songs/stats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, float64(2), response["total_chord_songs"])
		assert.Equal(t, float64(1), response["total_lyric_songs"])
		assert.Equal(t, float64(3), response["total_sections"])

		keys := response["keys"].(map[string]interface{})
		assert.Equal(t, float64(2), keys["C"])
	})
}
