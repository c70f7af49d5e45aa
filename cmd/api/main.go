package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/twinssn/blogdex/internal/api"
	"github.com/twinssn/blogdex/internal/cache"
	"github.com/twinssn/blogdex/internal/config"
	"github.com/twinssn/blogdex/internal/database"
	"github.com/twinssn/blogdex/internal/importer"
	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/metrics"
	"github.com/twinssn/blogdex/internal/recommend"
	"github.com/twinssn/blogdex/internal/worker"
)

func main() {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.NewLogger(cfg.Service.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	logg.Info("Connecting to database",
		logger.String("host", cfg.Database.Host),
		logger.String("dbname", cfg.Database.DBName))

	db, err := database.NewPostgresConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logg.Error("Failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()

	blogs := database.NewBlogRepository(db)
	posts := database.NewPostRepository(db)
	titles := database.NewTitleRepository(db)
	stats := database.NewKeywordStatRepository(db)
	perf := database.NewPerformanceRepository(db)

	m := metrics.New()

	// The stat cache is optional; the engine reads the repository directly
	// when Redis is disabled or unreachable.
	var aggregator recommend.StatAggregator = stats
	var invalidator api.StatCacheInvalidator
	if cfg.Redis.Enabled {
		client, redisErr := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if redisErr != nil {
			logg.Warn("Redis unavailable, stat cache disabled", logger.Error(redisErr))
		} else {
			cached := cache.NewStatAggregator(stats, client, cache.DefaultAggregateTTL, logg)
			aggregator = cached
			invalidator = cached
			defer func() { _ = client.Close() }()
		}
	}

	engine := recommend.NewEngine(posts, aggregator, blogs, recommend.DefaultConfig(), logg)

	var rollupWorker *worker.Worker
	if cfg.Worker.Enabled {
		rollupWorker = worker.New(stats, cfg.Worker.RollupSchedule, m, logg)
		if err := rollupWorker.Start(context.Background()); err != nil {
			logg.Error("Failed to start rollup worker", logger.Error(err))
			os.Exit(1)
		}
		defer rollupWorker.Stop()
	}

	router := api.NewRouter(api.Deps{
		Blogs:    blogs,
		Posts:    posts,
		Titles:   titles,
		Stats:    stats,
		Perf:     perf,
		Engine:   engine,
		Importer: importer.New(titles, logg),
		Worker:   rollupWorker,
		Cache:    invalidator,
		DB:       db,
		Metrics:  m,
		Config:   cfg,
		Logger:   logg,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Service.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logg.Info("Starting blogdex API server", logger.Int("port", cfg.Service.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("Server failed", logger.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error("Server forced to shutdown", logger.Error(err))
	}

	logg.Info("Server exited")
}
