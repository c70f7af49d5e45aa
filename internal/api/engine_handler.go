package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/recommend"
)

// recommendRequest is the payload for POST /recommend.
type recommendRequest struct {
	Titles []string `binding:"required,min=1" json:"titles"`
}

// duplicateCheckRequest is the payload for POST /duplicate-check.
type duplicateCheckRequest struct {
	Query string `binding:"required,min=1" json:"query"`
}

// recommendTitles scores a batch of candidate titles
// POST /api/v1/recommend
func (r *Router) recommendTitles(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	start := time.Now()
	r.deps.Metrics.BatchSize.Observe(float64(len(req.Titles)))

	recs, err := r.deps.Engine.RecommendBatch(c.Request.Context(), req.Titles)
	if err != nil {
		r.deps.Metrics.RecordRecommend("error", time.Since(start))
		r.deps.Logger.Error("batch recommendation failed",
			logger.Int("titles", len(req.Titles)), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score titles"})
		return
	}

	for _, rec := range recs {
		r.deps.Metrics.RecordRecommend(recommendOutcome(rec), time.Since(start))
	}

	c.JSON(http.StatusOK, gin.H{
		"results": recs,
		"count":   len(recs),
	})
}

func recommendOutcome(rec recommend.Recommendation) string {
	switch {
	case rec.Recommendation != nil:
		return "recommended"
	case rec.Reason == recommend.ReasonKeywordExtractionFailed:
		return "no_keywords"
	default:
		return "no_data"
	}
}

// duplicateCheck ranks published posts related to a query title
// POST /api/v1/duplicate-check
func (r *Router) duplicateCheck(c *gin.Context) {
	var req duplicateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	result, err := r.deps.Engine.CheckDuplicate(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check duplicates"})
		return
	}
	r.deps.Metrics.RecordDuplicateCheck(result.IsDuplicate)

	c.JSON(http.StatusOK, result)
}

// classifyKeyword returns the commercial value class of a query
// GET /api/v1/keywords/classify?q=
func (r *Router) classifyKeyword(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": q,
		"value": r.deps.Engine.Classify(q),
	})
}
