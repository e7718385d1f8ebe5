package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Lyrics
		Catalog
		Converter
		Database
		Sync
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Lyrics struct {
		Dir string // Directory holding the source .odt/.doc/.docx documents
	}
	Catalog struct {
		ChordPath string
		LyricPath string
	}
	Converter struct {
		Command string
		Timeout time.Duration
	}
	Database struct {
		Path string
	}
	Sync struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8199)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("lyrics_dir", "")
	v.SetDefault("chord_catalog_path", DefaultChordCatalogPath)
	v.SetDefault("lyric_catalog_path", DefaultLyricCatalogPath)
	v.SetDefault("converter_command", "textutil")
	v.SetDefault("converter_timeout", "10s")
	v.SetDefault("database_path", DefaultRunHistoryPath)
	v.SetDefault("sync_enabled", false)
	v.SetDefault("sync_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Lyrics: Lyrics{
			Dir: v.GetString("LYRICS_DIR"),
		},
		Catalog: Catalog{
			ChordPath: v.GetString("CHORD_CATALOG_PATH"),
			LyricPath: v.GetString("LYRIC_CATALOG_PATH"),
		},
		Converter: Converter{
			Command: v.GetString("CONVERTER_COMMAND"),
			Timeout: v.GetDuration("CONVERTER_TIMEOUT"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Sync: Sync{
			Enabled:  v.GetBool("SYNC_ENABLED"),
			Schedule: v.GetString("SYNC_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
