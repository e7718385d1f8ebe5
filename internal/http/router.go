package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hobbsjw/songbook/internal/database/runs"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.ChordStore.Path, cfg.Version)
	songsController := NewSongsController(cfg.ChordStore, cfg.LyricStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog API endpoints
	router.GET("/api/chords", songsController.GetAllChordSongs)
	router.GET("/api/chords/search", songsController.GetChordSongByTitle)
	router.GET("/api/lyrics", songsController.GetAllLyricSongs)
	router.GET("/api/songs/stats", songsController.GetSongStats)

	// Import run history endpoints
	if cfg.Database != nil {
		runsController := NewRunsController(runs.NewRepository(cfg.Database.DB))
		router.GET("/api/runs", runsController.GetRecentRuns)
		router.GET("/api/runs/:id/skips", runsController.GetRunSkips)
	}

	return router
}
