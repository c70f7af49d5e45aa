package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/models"
	"github.com/twinssn/blogdex/internal/recommend"
)

const (
	defaultReportDays  = 30
	defaultReportLimit = 30
)

// bulkUpsertStats ingests search-console keyword stats
// POST /api/v1/keywords
func (r *Router) bulkUpsertStats(c *gin.Context) {
	var req models.BulkKeywordStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	written, err := r.deps.Stats.BulkUpsertStats(c.Request.Context(), req.Stats)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert keyword stats"})
		return
	}
	r.deps.Metrics.StatsUpserted.Add(float64(written))

	// Stale aggregates would feed the scorer until the TTL ran out.
	if r.deps.Cache != nil {
		if err := r.deps.Cache.Invalidate(c.Request.Context()); err != nil {
			r.deps.Logger.Warn("stat cache invalidation failed", logger.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"upserted": written})
}

// topKeywords returns the value-classified keyword report
// GET /api/v1/keywords/top?days=&limit=
func (r *Router) topKeywords(c *gin.Context) {
	days := queryInt(c, "days", defaultReportDays)
	limit := queryInt(c, "limit", defaultReportLimit)

	// Over-fetch so the post-classification sort sees the full candidate
	// pool before truncation.
	aggs, err := r.deps.Stats.TopQueries(c.Request.Context(), days, limit*10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load keyword report"})
		return
	}

	report := recommend.BuildKeywordReport(aggs, r.deps.Engine.Classifier(), limit)
	c.JSON(http.StatusOK, gin.H{
		"days":     days,
		"keywords": report,
		"count":    len(report),
	})
}

// getPerformance returns the per-post analytics aggregate
// GET /api/v1/performance?days=
func (r *Router) getPerformance(c *gin.Context) {
	days := queryInt(c, "days", defaultReportDays)

	results, err := r.deps.Perf.GetPerformance(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load performance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":    days,
		"results": results,
	})
}

// bulkUpsertPerformance ingests per-post analytics rows
// POST /api/v1/performance
func (r *Router) bulkUpsertPerformance(c *gin.Context) {
	var req models.BulkPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	written, err := r.deps.Perf.BulkUpsertPerformance(c.Request.Context(), req.Data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert performance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"upserted": written})
}

// revenueSummary returns per-channel affiliate revenue
// GET /api/v1/revenue?days=
func (r *Router) revenueSummary(c *gin.Context) {
	days := queryInt(c, "days", defaultReportDays)

	rows, err := r.deps.Perf.GetRevenueSummary(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load revenue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":    days,
		"results": rows,
	})
}

// bulkUpsertRevenue ingests affiliate revenue rows
// POST /api/v1/revenue
func (r *Router) bulkUpsertRevenue(c *gin.Context) {
	var rows []models.RevenueStat
	if err := c.ShouldBindJSON(&rows); err != nil || len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	written, err := r.deps.Perf.BulkUpsertRevenue(c.Request.Context(), rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert revenue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"upserted": written})
}

// triggerRollup runs the daily site-stat roll-up for one date
// POST /api/v1/rollup?date=YYYY-MM-DD
func (r *Router) triggerRollup(c *gin.Context) {
	if r.deps.Worker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rollup worker disabled"})
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	written, err := r.deps.Worker.RunOnce(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rollup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"sites": written,
	})
}
