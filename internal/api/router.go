// Package api exposes the dashboard HTTP API.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/twinssn/blogdex/internal/config"
	"github.com/twinssn/blogdex/internal/importer"
	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/metrics"
	"github.com/twinssn/blogdex/internal/models"
	"github.com/twinssn/blogdex/internal/recommend"
	"github.com/twinssn/blogdex/internal/worker"
)

// Health constants.
const (
	healthStatusHealthy  = "healthy"
	healthStatusDegraded = "degraded"
	healthCheckTimeout   = 2 * time.Second
	serviceVersion       = "1.0.0"
)

// BlogStore provides blog persistence.
type BlogStore interface {
	CreateBlog(ctx context.Context, req *models.BlogCreateRequest) (*models.Blog, error)
	GetBlogByID(ctx context.Context, id int64) (*models.Blog, error)
	ListBlogs(ctx context.Context) ([]models.Blog, error)
	DeleteBlog(ctx context.Context, id int64) error
}

// PostStore provides published-post persistence.
type PostStore interface {
	BulkInsertPosts(ctx context.Context, posts []models.PostInput) (int64, error)
	ListPosts(ctx context.Context, blogID int64, limit int) ([]models.Post, error)
	SearchPostsByKeyword(ctx context.Context, kw string, limit int) ([]models.Post, error)
}

// TitleStore provides collected-title persistence.
type TitleStore interface {
	BulkInsertTitles(ctx context.Context, titles []models.TitleInput) (int64, error)
	ListTitles(ctx context.Context, status models.TitleStatus, page, limit int) (*models.TitlePage, error)
	SearchTitles(ctx context.Context, q string, status models.TitleStatus) ([]models.CollectedTitle, error)
	ListPendingTitles(ctx context.Context, limit int) ([]models.CollectedTitle, error)
	UpdateTitleStatus(ctx context.Context, ids []int64, status models.TitleStatus) (int64, error)
	CountTitlesByStatus(ctx context.Context) ([]models.StatusCount, error)
}

// StatStore provides search-console stat persistence.
type StatStore interface {
	BulkUpsertStats(ctx context.Context, stats []models.SearchKeywordStat) (int64, error)
	TopQueries(ctx context.Context, days, limit int) ([]models.QueryAggregate, error)
}

// PerformanceStore provides per-post analytics and revenue persistence.
type PerformanceStore interface {
	BulkUpsertPerformance(ctx context.Context, data []models.PerformanceInput) (int64, error)
	GetPerformance(ctx context.Context, days int) ([]models.PostPerformance, error)
	BulkUpsertRevenue(ctx context.Context, rows []models.RevenueStat) (int64, error)
	GetRevenueSummary(ctx context.Context, days int) ([]models.RevenueStat, error)
}

// StatCacheInvalidator drops cached keyword aggregates after ingestion.
type StatCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Deps holds the router's dependencies. Worker, Cache, and DB are optional.
type Deps struct {
	Blogs    BlogStore
	Posts    PostStore
	Titles   TitleStore
	Stats    StatStore
	Perf     PerformanceStore
	Engine   *recommend.Engine
	Importer *importer.Importer
	Worker   *worker.Worker
	Cache    StatCacheInvalidator
	DB       *sqlx.DB
	Metrics  *metrics.Metrics
	Config   *config.Config
	Logger   logger.Logger
}

// Router holds the API dependencies
type Router struct {
	deps Deps
}

// NewRouter creates a new API router
func NewRouter(deps Deps) *Router {
	return &Router{deps: deps}
}

// SetupRoutes builds the gin engine with middleware, health, metrics, and
// the authenticated /api/v1 surface.
func (r *Router) SetupRoutes() *gin.Engine {
	if !r.deps.Config.Service.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(r.deps.Config.Service.AllowedOrigins))

	// Public endpoints
	router.GET("/health", r.healthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(apiKeyAuth(r.deps.Config.Service.APIKey))

	blogs := v1.Group("/blogs")
	blogs.GET("", r.listBlogs)
	blogs.POST("", r.createBlog)
	blogs.GET("/:id", r.getBlog)
	blogs.DELETE("/:id", r.deleteBlog)

	posts := v1.Group("/posts")
	posts.GET("", r.listPosts)
	posts.POST("", r.bulkInsertPosts)
	posts.GET("/search", r.searchPosts)

	titles := v1.Group("/titles")
	titles.GET("", r.listTitles)
	titles.POST("", r.bulkInsertTitles)
	titles.GET("/search", r.searchTitles)
	titles.GET("/stats", r.titleStats)
	titles.GET("/analyze", r.analyzeTitles)
	titles.PUT("/status", r.updateTitleStatus)
	titles.POST("/import", r.importTitles)

	v1.POST("/recommend", r.recommendTitles)
	v1.POST("/duplicate-check", r.duplicateCheck)

	keywords := v1.Group("/keywords")
	keywords.GET("/classify", r.classifyKeyword)
	keywords.POST("", r.bulkUpsertStats)
	keywords.GET("/top", r.topKeywords)

	v1.GET("/performance", r.getPerformance)
	v1.POST("/performance", r.bulkUpsertPerformance)
	v1.GET("/revenue", r.revenueSummary)
	v1.POST("/revenue", r.bulkUpsertRevenue)
	v1.POST("/rollup", r.triggerRollup)

	return router
}

// healthCheck returns the service health status
func (r *Router) healthCheck(c *gin.Context) {
	health := gin.H{
		"status":  healthStatusHealthy,
		"service": r.deps.Config.Service.Name,
		"version": serviceVersion,
	}

	if r.deps.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		connected := r.deps.DB.PingContext(ctx) == nil
		if !connected {
			health["status"] = healthStatusDegraded
		}
		health["database"] = gin.H{"connected": connected}
	}

	c.JSON(http.StatusOK, health)
}
