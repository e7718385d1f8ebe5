package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hobbsjw/songbook/internal/database/runs"
)

const defaultRunLimit = 20

// RunsController exposes the import run history.
type RunsController struct {
	repo *runs.Repository
}

func NewRunsController(repo *runs.Repository) *RunsController {
	return &RunsController{repo: repo}
}

func (controller *RunsController) GetRecentRuns(c *gin.Context) {
	limit := defaultRunLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	history, err := controller.repo.GetRecentRuns(limit)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"runs": history, "count": len(history)})
}

func (controller *RunsController) GetRunSkips(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	skips, err := controller.repo.GetSkips(uint(id))
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"skips": skips, "count": len(skips)})
}
