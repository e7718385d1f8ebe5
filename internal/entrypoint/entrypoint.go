package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hobbsjw/songbook/internal/catalog"
	"github.com/hobbsjw/songbook/internal/config"
	"github.com/hobbsjw/songbook/internal/database"
	http_controllers "github.com/hobbsjw/songbook/internal/http"
	"github.com/hobbsjw/songbook/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the import scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Songbook v%s", version)

	// Initialize run history database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	chordStore := catalog.NewStore(cfg.Catalog.ChordPath)
	lyricStore := catalog.NewLyricStore(cfg.Catalog.LyricPath)

	if _, err := os.Stat(cfg.Catalog.ChordPath); os.IsNotExist(err) {
		log.Printf("Chord catalog %s not found; run chords-import to generate it", cfg.Catalog.ChordPath)
	}

	// Start the periodic import scheduler if enabled
	importScheduler := scheduler.NewImportScheduler(cfg, db)
	if err := importScheduler.Start(context.Background()); err != nil {
		log.Printf("WARNING: Failed to start import scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		ChordStore: chordStore,
		LyricStore: lyricStore,
		Database:   db,
		Version:    version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		importScheduler.Stop()
	}

	Serve(router, cfg, onShutdown)
}
