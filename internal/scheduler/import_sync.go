package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hobbsjw/songbook/internal/catalog"
	"github.com/hobbsjw/songbook/internal/config"
	"github.com/hobbsjw/songbook/internal/database"
	"github.com/hobbsjw/songbook/internal/database/runs"
	"github.com/hobbsjw/songbook/internal/entities"
	"github.com/hobbsjw/songbook/internal/importer"
	"github.com/hobbsjw/songbook/internal/textconv"
)

// ImportScheduler periodically re-runs both import pipelines so the
// catalogs track the source directory. Reconciliation keeps manual
// catalog edits across scheduled runs.
type ImportScheduler struct {
	cfg *config.Config
	db  *database.Database

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewImportScheduler(cfg *config.Config, db *database.Database) *ImportScheduler {
	return &ImportScheduler{
		cfg:  cfg,
		db:   db,
		cron: cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if sync is enabled
func (s *ImportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Sync.Enabled {
		log.Printf("Import scheduler: disabled")
		return nil
	}

	if s.cfg.Lyrics.Dir == "" {
		log.Printf("Import scheduler: lyrics directory not configured, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Sync.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Sync.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Import scheduler: started with schedule '%s'. Next run: %v",
		s.cfg.Sync.Schedule, s.nextRunLocked())

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *ImportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Import scheduler: stopped")
}

// RunNow triggers an immediate import
func (s *ImportScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active
func (s *ImportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next import will occur
func (s *ImportScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

func (s *ImportScheduler) nextRunLocked() *time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *ImportScheduler) runSync() {
	log.Printf("Import sync: starting import from %s", s.cfg.Lyrics.Dir)
	startTime := time.Now()

	conv := textconv.New(s.cfg.Converter.Timeout)
	if s.cfg.Converter.Command != "" {
		conv.Command = s.cfg.Converter.Command
	}
	imp := importer.New(s.cfg.Lyrics.Dir, conv)

	s.syncChords(imp, startTime)
	s.syncLyrics(imp, startTime)

	log.Printf("Import sync: finished in %v", time.Since(startTime).Round(time.Millisecond))
}

func (s *ImportScheduler) syncChords(imp *importer.Importer, startedAt time.Time) {
	res, err := imp.RunChords(context.Background())
	if err != nil {
		log.Printf("Import sync: chord import failed: %v", err)
		s.recordFailure(entities.PipelineChords, startedAt)
		return
	}

	store := catalog.NewStore(s.cfg.Catalog.ChordPath)
	reconciled := catalog.Reconcile(store.Load(), res.Songs, catalog.Options{})
	if err := store.Write(reconciled.Songs); err != nil {
		log.Printf("Import sync: could not write chord catalog: %v", err)
		s.recordFailure(entities.PipelineChords, startedAt)
		return
	}

	log.Printf("Import sync: %d chord songs (%d new, %d preserved, %d skipped files)",
		len(reconciled.Songs), len(reconciled.Added), reconciled.Preserved, len(res.Skipped))

	s.recordRun(&entities.ImportRun{
		Pipeline:   entities.PipelineChords,
		Status:     entities.RunStatusCompleted,
		TotalFiles: res.TotalFiles,
		Parsed:     len(res.Songs),
		Skipped:    len(res.Skipped),
		NewSongs:   len(reconciled.Added),
		Preserved:  reconciled.Preserved,
		Duplicates: reconciled.Duplicates,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}, res.Skipped)
}

func (s *ImportScheduler) syncLyrics(imp *importer.Importer, startedAt time.Time) {
	res, err := imp.RunLyrics(context.Background())
	if err != nil {
		log.Printf("Import sync: lyric import failed: %v", err)
		s.recordFailure(entities.PipelineLyrics, startedAt)
		return
	}

	catalog.SortLyricSongs(res.Songs)
	if err := catalog.NewLyricStore(s.cfg.Catalog.LyricPath).Write(res.Songs); err != nil {
		log.Printf("Import sync: could not write lyric catalog: %v", err)
		s.recordFailure(entities.PipelineLyrics, startedAt)
		return
	}

	log.Printf("Import sync: %d lyric songs (%d skipped files)", len(res.Songs), len(res.Skipped))

	s.recordRun(&entities.ImportRun{
		Pipeline:   entities.PipelineLyrics,
		Status:     entities.RunStatusCompleted,
		TotalFiles: res.TotalFiles,
		Parsed:     len(res.Songs),
		Skipped:    len(res.Skipped),
		NewSongs:   len(res.Songs),
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}, res.Skipped)
}

func (s *ImportScheduler) recordFailure(pipeline entities.Pipeline, startedAt time.Time) {
	s.recordRun(&entities.ImportRun{
		Pipeline:   pipeline,
		Status:     entities.RunStatusFailed,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}, nil)
}

func (s *ImportScheduler) recordRun(run *entities.ImportRun, skipped []importer.Skip) {
	if s.db == nil {
		return
	}
	skips := make([]entities.SkippedFile, len(skipped))
	for i, skip := range skipped {
		skips[i] = entities.SkippedFile{Filename: skip.Filename, Reason: skip.Reason}
	}
	if err := runs.NewRepository(s.db.DB).RecordRun(run, skips); err != nil {
		log.Printf("Import sync: could not record run: %v", err)
	}
}
