package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/twinssn/blogdex/internal/models"
)

// parseID parses an int64 path parameter.
func parseID(c *gin.Context, paramName, entityType string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + entityType + " ID format",
		})
		return 0, false
	}
	return id, true
}

// queryInt parses an integer query parameter with a default.
func queryInt(c *gin.Context, name string, def int) int {
	val := c.Query(name)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// handleRepositoryError handles common repository errors
func handleRepositoryError(c *gin.Context, err error, entityType, operation string) {
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": entityType + " not found",
		})
		return
	}
	if errors.Is(err, models.ErrAlreadyExists) {
		c.JSON(http.StatusConflict, gin.H{
			"error": entityType + " with this name already exists",
		})
		return
	}
	if errors.Is(err, models.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown title status",
		})
		return
	}
	if errors.Is(err, models.ErrNoFieldsToUpdate) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "no ids to update",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Failed to " + operation + " " + entityType,
	})
}
