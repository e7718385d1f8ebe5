package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hobbsjw/songbook/internal/catalog"
	"github.com/hobbsjw/songbook/internal/config"
	"github.com/hobbsjw/songbook/internal/database"
	"github.com/hobbsjw/songbook/internal/database/runs"
	"github.com/hobbsjw/songbook/internal/entities"
	"github.com/hobbsjw/songbook/internal/importer"
	"github.com/hobbsjw/songbook/internal/textconv"
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ", ")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// ChordsImportCommand runs the chord-chart pipeline over the lyrics
// directory and reconciles the results into the chord catalog.
type ChordsImportCommand struct {
	Dir          string
	CatalogPath  string
	DatabasePath string
	Force        bool
	ForceSongs   stringList
	DryRun       bool
	Verbose      bool
}

func NewChordsImportCommand() *ChordsImportCommand {
	return &ChordsImportCommand{}
}

func (cmd *ChordsImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("chords-import", flag.ExitOnError)

	fs.StringVar(&cmd.Dir, "dir", "", "Directory containing source .odt/.doc/.docx documents (required)")
	fs.StringVar(&cmd.CatalogPath, "catalog", config.DefaultChordCatalogPath, "Path to the chord catalog JS file")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultRunHistoryPath, "Path to the run history database")
	fs.BoolVar(&cmd.Force, "force", false, "Reimport ALL songs from scratch, discarding any manual edits")
	fs.Var(&cmd.ForceSongs, "force-song", "Reimport one song by title fragment (repeatable)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without writing anything")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s chords-import -dir <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert chord-chart documents into the chord catalog.\n\n")
		fmt.Fprintf(os.Stderr, "By default songs already present in the catalog are preserved, so\n")
		fmt.Fprintf(os.Stderr, "manual edits survive a rebuild; only newly discovered songs are added.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Default reconciling import:\n")
		fmt.Fprintf(os.Stderr, "  %s chords-import -dir ~/Lyrics\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Reimport a single song, keeping everything else:\n")
		fmt.Fprintf(os.Stderr, "  %s chords-import -dir ~/Lyrics -force-song \"The Vow\"\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Dir == "" {
		return fmt.Errorf("required flag -dir not provided")
	}

	return nil
}

func (cmd *ChordsImportCommand) Run() error {
	fmt.Println("Chord Import")
	fmt.Println("============")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	store := catalog.NewStore(cmd.CatalogPath)

	var existing []entities.Song
	if cmd.Force {
		fmt.Println("-force: reimporting ALL songs from scratch")
	} else {
		existing = store.Load()
		if len(existing) > 0 {
			fmt.Printf("Loaded %d existing songs from %s\n", len(existing), cmd.CatalogPath)
		}
	}

	conv := textconv.New(0)
	imp := importer.New(cmd.Dir, conv)
	imp.Verbose = cmd.Verbose

	startedAt := time.Now()
	res, err := imp.RunChords(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Found %d total song files\n", res.TotalFiles)

	reconciled := catalog.Reconcile(existing, res.Songs, catalog.Options{
		ForceAll:    cmd.Force,
		ForceTitles: cmd.ForceSongs,
	})

	for _, title := range reconciled.Reimported {
		fmt.Printf("  -force-song: will reimport %q\n", title)
	}

	printChordSummary(cmd, res, reconciled)

	if cmd.DryRun {
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	if err := store.Write(reconciled.Songs); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	fmt.Printf("\nGenerated %s\n", cmd.CatalogPath)

	cmd.recordRun(startedAt, res, reconciled)

	return nil
}

func printChordSummary(cmd *ChordsImportCommand, res *importer.ChordResult, reconciled catalog.Result) {
	fmt.Printf("\n  %d chord songs total\n", len(reconciled.Songs))
	if !cmd.Force && reconciled.Preserved > 0 {
		fmt.Printf("  %d songs preserved from existing catalog\n", reconciled.Preserved)
	}
	if len(reconciled.Added) > 0 {
		fmt.Printf("  %d new songs added:\n", len(reconciled.Added))
		for _, title := range reconciled.Added {
			fmt.Printf("    + %s\n", title)
		}
	}
	if reconciled.Duplicates > 0 {
		fmt.Printf("  %d songs already existed (kept manual edits)\n", reconciled.Duplicates)
	}
	if len(res.Skipped) > 0 {
		fmt.Printf("  %d files skipped:\n", len(res.Skipped))
		for _, s := range res.Skipped {
			fmt.Printf("    - %s (%s)\n", s.Filename, s.Reason)
		}
	}
}

// recordRun appends the batch to the run history. History is
// observability only; failures are logged and never fail the import.
func (cmd *ChordsImportCommand) recordRun(startedAt time.Time, res *importer.ChordResult, reconciled catalog.Result) {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		log.Printf("Warning: could not open run history database: %v", err)
		return
	}
	defer db.Close()

	run := &entities.ImportRun{
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
	}
	skips := make([]entities.SkippedFile, len(res.Skipped))
	for i, s := range res.Skipped {
		skips[i] = entities.SkippedFile{Filename: s.Filename, Reason: s.Reason}
	}
	if err := runs.NewRepository(db.DB).RecordRun(run, skips); err != nil {
		log.Printf("Warning: could not record import run: %v", err)
	}
}
