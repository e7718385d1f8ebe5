package config

const (
	// DefaultRunHistoryPath is the default path for the import run history
	// database.
	DefaultRunHistoryPath = "./songbook.db"

	// DefaultChordCatalogPath is the default chord catalog output file.
	DefaultChordCatalogPath = "./chord_songs.js"

	// DefaultLyricCatalogPath is the default plain-lyrics catalog output file.
	DefaultLyricCatalogPath = "./songs.js"
)
