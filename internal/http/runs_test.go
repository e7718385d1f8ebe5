package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbsjw/songbook/internal/database"
	"github.com/hobbsjw/songbook/internal/database/runs"
	"github.com/hobbsjw/songbook/internal/entities"
)

func setupRunsRepo(t *testing.T) *runs.Repository {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return runs.NewRepository(db.DB)
}

func TestRunsController_GetRecentRuns(t *testing.T) {
	t.Run("returns empty history", func(t *testing.T) {
		repo := setupRunsRepo(t)

		controller := NewRunsController(repo)

		router := gin.New()
		router.GET("/api/runs", controller.GetRecentRuns)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/runs", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, float64(0), response["count"])
	})

	t.Run("returns 400 for invalid limit", func(t *testing.T) {
		repo := setupRunsRepo(t)

		controller := NewRunsController(repo)

		router := gin.New()
		router.GET("/api/runs", controller.GetRecentRuns)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/runs?limit=bogus", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns recorded runs", func(t *testing.T) {
		repo := setupRunsRepo(t)

		run := &entities.ImportRun{
			Pipeline:   entities.PipelineChords,
			Status:     entities.RunStatusCompleted,
			TotalFiles: 3,
			Parsed:     2,
			Skipped:    1,
			StartedAt:  time.Now(),
			FinishedAt: time.Now(),
		}
		require.NoError(t, repo.RecordRun(run, []entities.SkippedFile{
			{Filename: "notes.odt", Reason: "not a chord file"},
		}))

		controller := NewRunsController(repo)

		router := gin.New()
		router.GET("/api/runs", controller.GetRecentRuns)
		router.GET("/api/runs/:id/skips", controller.GetRunSkips)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/runs", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, float64(1), response["count"])

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/api/runs/1/skips", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "notes.odt")
	})
}
