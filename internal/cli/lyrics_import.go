package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hobbsjw/songbook/internal/catalog"
	"github.com/hobbsjw/songbook/internal/config"
	"github.com/hobbsjw/songbook/internal/database"
	"github.com/hobbsjw/songbook/internal/database/runs"
	"github.com/hobbsjw/songbook/internal/entities"
	"github.com/hobbsjw/songbook/internal/importer"
	"github.com/hobbsjw/songbook/internal/textconv"
)

// LyricsImportCommand runs the plain-lyrics pipeline over the lyrics
// directory and regenerates the lyric catalog.
type LyricsImportCommand struct {
	Dir          string
	CatalogPath  string
	DatabasePath string
	DryRun       bool
	Verbose      bool
}

func NewLyricsImportCommand() *LyricsImportCommand {
	return &LyricsImportCommand{}
}

func (cmd *LyricsImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("lyrics-import", flag.ExitOnError)

	fs.StringVar(&cmd.Dir, "dir", "", "Directory containing source .odt/.doc/.docx documents (required)")
	fs.StringVar(&cmd.CatalogPath, "catalog", config.DefaultLyricCatalogPath, "Path to the lyric catalog JS file")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultRunHistoryPath, "Path to the run history database")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without writing anything")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s lyrics-import -dir <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert lyric documents into the lyric catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Chord charts are excluded; only plain lyric sheets are imported. The\n")
		fmt.Fprintf(os.Stderr, "lyric catalog is regenerated in full on every run.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s lyrics-import -dir ~/Lyrics\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Dir == "" {
		return fmt.Errorf("required flag -dir not provided")
	}

	return nil
}

func (cmd *LyricsImportCommand) Run() error {
	fmt.Println("Lyric Import")
	fmt.Println("============")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	conv := textconv.New(0)
	imp := importer.New(cmd.Dir, conv)
	imp.Verbose = cmd.Verbose

	startedAt := time.Now()
	res, err := imp.RunLyrics(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Found %d total song files\n", res.TotalFiles)

	catalog.SortLyricSongs(res.Songs)

	fmt.Printf("\n  %d lyric songs parsed\n", len(res.Songs))
	if len(res.Skipped) > 0 {
		fmt.Printf("  %d files skipped:\n", len(res.Skipped))
		for _, s := range res.Skipped {
			fmt.Printf("    - %s (%s)\n", s.Filename, s.Reason)
		}
	}

	if cmd.DryRun {
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	store := catalog.NewLyricStore(cmd.CatalogPath)
	if err := store.Write(res.Songs); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	fmt.Printf("\nGenerated %s\n", cmd.CatalogPath)

	cmd.recordRun(startedAt, res)

	return nil
}

func (cmd *LyricsImportCommand) recordRun(startedAt time.Time, res *importer.LyricResult) {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		log.Printf("Warning: could not open run history database: %v", err)
		return
	}
	defer db.Close()

	run := &entities.ImportRun{
		Pipeline:   entities.PipelineLyrics,
		Status:     entities.RunStatusCompleted,
		TotalFiles: res.TotalFiles,
		Parsed:     len(res.Songs),
		Skipped:    len(res.Skipped),
		NewSongs:   len(res.Songs),
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	skips := make([]entities.SkippedFile, len(res.Skipped))
	for i, s := range res.Skipped {
		skips[i] = entities.SkippedFile{Filename: s.Filename, Reason: s.Reason}
	}
	if err := runs.NewRepository(db.DB).RecordRun(run, skips); err != nil {
		log.Printf("Warning: could not record import run: %v", err)
	}
}
