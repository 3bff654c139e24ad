package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "catalog-service/common/errors"
	"catalog-service/common/logger"
	"catalog-service/common/middleware"
	"catalog-service/controllers"
	"catalog-service/database"
	awspkg "catalog-service/pkg/aws"
	"catalog-service/repository"
	"catalog-service/routes"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "catalog-service"

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()
	ctx := context.Background()

	// --- 1. Logging & AWS ---
	awsCfg, awsErr := awspkg.LoadAWSConfig(ctx)

	var cloudWatchWriter io.Writer
	if awsErr == nil {
		cw, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, serviceName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "CloudWatch Logs disabled: %v\n", err)
		} else if cw != nil {
			cloudWatchWriter = cw
		}
	}

	log := logger.Initialize(os.Getenv("APP_ENV"), cloudWatchWriter)
	defer log.Sync()

	var metrics *awspkg.MetricsClient
	if awsErr != nil {
		zap.L().Warn("AWS config unavailable, CloudWatch disabled", zap.Error(awsErr))
	} else {
		metrics = awspkg.NewMetricsClient(awsCfg)
	}

	cfg, err := LoadConfig(ctx)
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 2. Storage ---
	store := connectStore(ctx, cfg)

	var redisClient *redis.Client
	var cache *controllers.CacheManager
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zap.L().Warn("Invalid REDIS_URL, response cache disabled", zap.Error(err))
		} else {
			redisClient = redis.NewClient(opts)
			cache = controllers.NewCacheManager(redisClient, cfg.CacheTTL, metrics)
		}
	}

	// --- 3. Dependency Injection ---
	seederOpts := []services.SeederOption{
		services.WithOnSeeded(func(ctx context.Context, collection string, n int) {
			if err := cache.Invalidate(ctx); err != nil {
				zap.L().Warn("Failed to invalidate cache after seeding", zap.Error(err))
			}
			_ = metrics.RecordValue(ctx, awspkg.MetricDocumentsSeeded, float64(n), map[string]string{"Collection": collection})
		}),
	}
	if cfg.SeedDataPath != "" {
		dataset, err := services.LoadDataset(cfg.SeedDataPath)
		if err != nil {
			zap.L().Fatal("Failed to load seed dataset", zap.Error(err))
		}
		seederOpts = append(seederOpts, services.WithDataset(dataset))
		zap.L().Info("Using seed dataset", zap.String("path", cfg.SeedDataPath))
	}

	seeder := services.NewSeeder(store, seederOpts...)
	catalogService := services.NewCatalogService(store, seeder)
	statusService := services.NewStatusService(store, cfg.DatabaseURL != "", cfg.DatabaseName != "")

	catalogController := controllers.NewCatalogController(catalogService, cache)
	statusController := controllers.NewStatusController(statusService)

	// --- 4. HTTP Server & Middleware ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	stopCleanup := make(chan struct{})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeaders())
	if cfg.RateLimitRPM > 0 {
		limiter := middleware.NewPerMinuteLimiter(cfg.RateLimitRPM)
		go limiter.Run(stopCleanup)
		r.Use(middleware.RateLimitMiddleware(limiter))
	}
	r.Use(middleware.MetricsMiddleware(metrics, serviceName))
	r.Use(middleware.Timeout(controllers.DefaultContextTimeout))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(r, catalogController, statusController)

	// --- 5. Graceful Shutdown ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Catalog service starting",
			zap.String("port", cfg.Port),
			zap.Bool("database", store.Available()),
			zap.Bool("cache", cache != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down catalog service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}
	close(stopCleanup)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := database.Close(); err != nil {
		zap.L().Error("Failed to close MongoDB", zap.Error(err))
	}

	zap.L().Info("Catalog service stopped gracefully")
}

// connectStore returns the degraded Handle when the database is not
// configured or cannot be reached; the service keeps serving either way.
func connectStore(ctx context.Context, cfg *Config) repository.Handle {
	db, err := database.Connect(cfg.DatabaseURL, cfg.DatabaseName)
	if errors.Is(err, database.ErrNotConfigured) {
		zap.L().Warn("DATABASE_URL or DATABASE_NAME not set, running without database")
		return repository.Handle{}
	}
	if err != nil {
		zap.L().Error("MongoDB connection failed, running without database", zap.Error(err))
		return repository.Handle{}
	}

	mongoStore := repository.NewMongoStore(db)
	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		zap.L().Warn("Failed to ensure catalog indexes", zap.Error(err))
	}
	return repository.NewHandle(mongoStore)
}
