package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/events"
	apphttp "jobboard/internal/http"
	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
	"jobboard/internal/observability"
	"jobboard/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	response.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("storage init failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer closeStorage()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, cfg.NATSConnTimeout, logger)
		if err != nil {
			logger.Error("nats connect failed, events disabled", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		if redisClient := newRedisClient(cfg.RedisURL, logger); redisClient != nil {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Error("redis close failed", zap.Error(err))
				}
			}()
			limiter = httpmw.NewRedisLimiter(redisClient, "jobboard:ratelimit")
		}
	}

	clientIdentity, err := httpmw.NewClientIdentity(cfg.TrustedProxies)
	if err != nil {
		logger.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}

	jobService := app.NewJobService(repos, publisher, logger)
	applicationService := app.NewApplicationService(repos, publisher, logger)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		JobHandler:         handlers.NewJobHandler(jobService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService),
		Metrics:            metrics.NewCollector(),
		Logger:             logger,
		Limiter:            limiter,
		ClientIdentity:     clientIdentity,
		ApplyRateLimit:     cfg.ApplyRateLimitPerMin,
		RateLimitRequests:  cfg.RateLimitRequests,
		RateLimitWindow:    cfg.RateLimitWindow,
		RequestTimeout:     cfg.RequestTimeout,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
	})
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("API started", zap.String("port", cfg.HTTPPort), zap.String("storage", cfg.DBDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func newRedisClient(url string, logger *zap.Logger) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Error("redis url parse failed, using in-memory rate limiting", zap.Error(err))
		return nil
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("redis ping failed, using in-memory rate limiting", zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}
