package entities

import "time"

type Pipeline string

const (
	PipelineChords Pipeline = "chords"
	PipelineLyrics Pipeline = "lyrics"
)

type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ImportRun records one batch import for the run history.
type ImportRun struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Pipeline   Pipeline  `gorm:"index;size:20" json:"pipeline"`
	Status     RunStatus `gorm:"size:20" json:"status"`
	TotalFiles int       `json:"total_files"`
	Parsed     int       `json:"parsed"`
	Skipped    int       `json:"skipped"`
	NewSongs   int       `json:"new_songs"`
	Preserved  int       `json:"preserved"`
	Duplicates int       `json:"duplicates"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}

// SkippedFile records one document excluded from a run and why: conversion
// failure, not a chord chart, or empty after parsing.
type SkippedFile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RunID    uint   `gorm:"index" json:"run_id"`
	Filename string `gorm:"size:512" json:"filename"`
	Reason   string `gorm:"size:256" json:"reason"`
}

func (SkippedFile) TableName() string {
	return "skipped_files"
}
