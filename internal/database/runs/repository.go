package runs

import (
	"time"

	"gorm.io/gorm"

	"github.com/hobbsjw/songbook/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RecordRun saves a completed batch and its skipped files in one
// transaction.
func (r *Repository) RecordRun(run *entities.ImportRun, skips []entities.SkippedFile) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		for i := range skips {
			skips[i].RunID = run.ID
		}
		if len(skips) > 0 {
			if err := tx.Create(&skips).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetRecentRuns retrieves runs ordered most recent first.
func (r *Repository) GetRecentRuns(limit int) ([]entities.ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []entities.ImportRun
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// GetSkips retrieves the skip report for one run.
func (r *Repository) GetSkips(runID uint) ([]entities.SkippedFile, error) {
	var skips []entities.SkippedFile
	err := r.db.Where("run_id = ?", runID).Order("id").Find(&skips).Error
	return skips, err
}
