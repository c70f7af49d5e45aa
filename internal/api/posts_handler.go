package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/twinssn/blogdex/internal/models"
)

const (
	defaultPostListLimit   = 100
	defaultPostSearchLimit = 100
)

// listPosts returns posts joined with their blog
// GET /api/v1/posts?blog_id=&limit=
func (r *Router) listPosts(c *gin.Context) {
	blogID := int64(queryInt(c, "blog_id", 0))
	limit := queryInt(c, "limit", defaultPostListLimit)

	posts, err := r.deps.Posts.ListPosts(c.Request.Context(), blogID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"count": len(posts),
	})
}

// bulkInsertPosts registers published posts in bulk
// POST /api/v1/posts
func (r *Router) bulkInsertPosts(c *gin.Context) {
	var req models.BulkPostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	inserted, err := r.deps.Posts.BulkInsertPosts(c.Request.Context(), req.Posts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert posts"})
		return
	}
	r.deps.Metrics.PostsImported.Add(float64(inserted))

	c.JSON(http.StatusOK, gin.H{
		"received": len(req.Posts),
		"inserted": inserted,
	})
}

// searchPosts finds posts by keyword substring
// GET /api/v1/posts/search?q=
func (r *Router) searchPosts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}
	limit := queryInt(c, "limit", defaultPostSearchLimit)

	posts, err := r.deps.Posts.SearchPostsByKeyword(c.Request.Context(), q, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": posts,
		"count":   len(posts),
	})
}
