package http

import (
	"github.com/hobbsjw/songbook/internal/catalog"
	"github.com/hobbsjw/songbook/internal/database"
)

// RouterConfig holds all dependencies needed to construct the router.
type RouterConfig struct {
	ChordStore *catalog.Store
	LyricStore *catalog.LyricStore
	Database   *database.Database
	Version    string
}
