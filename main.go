package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/modgate/modgate/internal/classifier/remote"
	"github.com/modgate/modgate/internal/config"
	"github.com/modgate/modgate/internal/database"
	"github.com/modgate/modgate/internal/submission/handler"
	"github.com/modgate/modgate/internal/submission/service"
	"github.com/modgate/modgate/pkg/logger"
	"github.com/modgate/modgate/pkg/metrics"
	"github.com/modgate/modgate/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: classifier=%v mongo=%v redis=%v", cfg.Classifier.BaseURL != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var importedRedis *redis.Client
	if cfg.Redis.Host != "" {
		importedRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := importedRedis.Ping(context.Background()).Err(); err == nil {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			importedRedis = nil
		}
	}

	// Optional global rate limiter (per-moderator when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && importedRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(importedRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Remote classifier client; every submission goes through this.
	caller := remote.New(cfg.Classifier.BaseURL, cfg.Classifier.APIKey, cfg.Classifier.Timeout, cfg.Classifier.RPS, cfg.Classifier.Burst)

	// Prefer a Mongo-backed submission store; fall back to memory otherwise.
	var svc service.Service
	var mongoOK bool
	if cfg.MongoDB.URI != "" {
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		ctx := context.Background()
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v — using memory store", maxAttempts, errConn)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			col := client.Database(cfg.MongoDB.Database).Collection("submissions")
			svc = service.NewMongoService(caller, col)
			mongoOK = true
		}
	}
	if svc == nil {
		svc = service.NewMemoryService(caller)
		logger.Warn("submissions stored in memory only; set MONGODB_URI for persistence")
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["classifier"] = cfg.Classifier.BaseURL != ""
		if !deps["classifier"] {
			ready = false
		}

		// storage readiness: memory fallback always works, report Mongo state
		deps["mongo"] = mongoOK

		// Redis readiness when used for the rate limiter
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = importedRedis != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Moderation API; override endpoint is JWT-protected when a secret is set
	if cfg.JWT.Secret != "" {
		handler.RegisterSubmissionRoutes(r, svc, middleware.ModeratorAuth(cfg.JWT.Secret))
	} else {
		logger.Warnf("JWT_SECRET not set — moderator override endpoint is unprotected")
		handler.RegisterSubmissionRoutes(r, svc)
	}

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting moderation service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
