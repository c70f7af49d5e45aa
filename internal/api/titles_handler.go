package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/twinssn/blogdex/internal/models"
)

// listTitles returns a page of collected titles
// GET /api/v1/titles?status=&page=&limit=
func (r *Router) listTitles(c *gin.Context) {
	status := models.TitleStatus(c.Query("status"))
	if status != "" && !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown title status"})
		return
	}

	page, err := r.deps.Titles.ListTitles(
		c.Request.Context(), status, queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list titles"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// bulkInsertTitles registers collected titles in bulk
// POST /api/v1/titles
func (r *Router) bulkInsertTitles(c *gin.Context) {
	var req models.BulkTitlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	inserted, err := r.deps.Titles.BulkInsertTitles(c.Request.Context(), req.Titles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert titles"})
		return
	}
	r.deps.Metrics.TitlesImported.Add(float64(inserted))

	c.JSON(http.StatusOK, gin.H{
		"received": len(req.Titles),
		"inserted": inserted,
	})
}

// searchTitles finds titles by substring
// GET /api/v1/titles/search?q=&status=
func (r *Router) searchTitles(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}
	status := models.TitleStatus(c.Query("status"))
	if status != "" && !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown title status"})
		return
	}

	titles, err := r.deps.Titles.SearchTitles(c.Request.Context(), q, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search titles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": titles,
		"count":   len(titles),
	})
}

// titleStats returns the per-status breakdown
// GET /api/v1/titles/stats
func (r *Router) titleStats(c *gin.Context) {
	counts, err := r.deps.Titles.CountTitlesByStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count titles"})
		return
	}

	var total int64
	for _, sc := range counts {
		total += sc.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"counts": counts,
	})
}

// updateTitleStatus moves titles through the lifecycle in bulk
// PUT /api/v1/titles/status
func (r *Router) updateTitleStatus(c *gin.Context) {
	var req models.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	updated, err := r.deps.Titles.UpdateTitleStatus(c.Request.Context(), req.IDs, req.Status)
	if err != nil {
		handleRepositoryError(c, err, "title", "update")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requested": len(req.IDs),
		"updated":   updated,
	})
}

// analyzeTitles runs a duplicate triage over pending titles
// GET /api/v1/titles/analyze?limit=
func (r *Router) analyzeTitles(c *gin.Context) {
	limit := queryInt(c, "limit", r.deps.Config.Worker.AnalyzeLimit)

	pending, err := r.deps.Titles.ListPendingTitles(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending titles"})
		return
	}

	result, err := r.deps.Engine.Analyze(c.Request.Context(), pending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze titles"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// importTitles ingests a CSV or XLSX title export
// POST /api/v1/titles/import (multipart, field "file")
func (r *Router) importTitles(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open upload"})
		return
	}
	defer f.Close()

	result, err := r.deps.Importer.ImportTitles(
		c.Request.Context(), fileHeader.Filename, c.PostForm("source"), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Import failed",
			"details": err.Error(),
		})
		return
	}
	r.deps.Metrics.TitlesImported.Add(float64(result.Inserted))

	c.JSON(http.StatusOK, result)
}
