package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbsjw/songbook/internal/catalog"
	"github.com/hobbsjw/songbook/internal/database"
	"github.com/hobbsjw/songbook/internal/entities"
)

func TestHealthController_Status(t *testing.T) {
	t.Run("reports healthy with database and catalog", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		dir := t.TempDir()
		db, err := database.NewDatabase(filepath.Join(dir, "health.db"))
		require.NoError(t, err)
		defer db.Close()

		catalogPath := filepath.Join(dir, "chord_songs.js")
		require.NoError(t, catalog.NewStore(catalogPath).Write([]entities.Song{}))

		controller := NewHealthController(db, catalogPath, "test")

		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		err = json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "ok", response.Checks["catalog"])
	})

	t.Run("missing catalog is still healthy", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		controller := NewHealthController(nil, filepath.Join(t.TempDir(), "absent.js"), "test")

		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, "not configured", response.Checks["database"])
		assert.Equal(t, "not generated yet", response.Checks["catalog"])
	})
}
