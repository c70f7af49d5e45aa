package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/twinssn/blogdex/internal/models"
)

// listBlogs returns all registered blogs
// GET /api/v1/blogs
func (r *Router) listBlogs(c *gin.Context) {
	blogs, err := r.deps.Blogs.ListBlogs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list blogs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blogs": blogs,
		"count": len(blogs),
	})
}

// createBlog registers a blog
// POST /api/v1/blogs
func (r *Router) createBlog(c *gin.Context) {
	var req models.BlogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	blog, err := r.deps.Blogs.CreateBlog(c.Request.Context(), &req)
	if err != nil {
		handleRepositoryError(c, err, "blog", "create")
		return
	}

	c.JSON(http.StatusCreated, blog)
}

// getBlog retrieves a blog by ID
// GET /api/v1/blogs/:id
func (r *Router) getBlog(c *gin.Context) {
	id, ok := parseID(c, "id", "blog")
	if !ok {
		return
	}

	blog, err := r.deps.Blogs.GetBlogByID(c.Request.Context(), id)
	if err != nil {
		handleRepositoryError(c, err, "blog", "get")
		return
	}

	c.JSON(http.StatusOK, blog)
}

// deleteBlog removes a blog
// DELETE /api/v1/blogs/:id
func (r *Router) deleteBlog(c *gin.Context) {
	id, ok := parseID(c, "id", "blog")
	if !ok {
		return
	}

	if err := r.deps.Blogs.DeleteBlog(c.Request.Context(), id); err != nil {
		handleRepositoryError(c, err, "blog", "delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
