package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adminedificios/backend/handlers"
	"github.com/adminedificios/backend/internal/areas"
	"github.com/adminedificios/backend/internal/booking"
	"github.com/adminedificios/backend/internal/config"
	"github.com/adminedificios/backend/internal/dashboard"
	"github.com/adminedificios/backend/internal/database"
	"github.com/adminedificios/backend/internal/incidents"
	"github.com/adminedificios/backend/internal/payments"
	"github.com/adminedificios/backend/internal/seed"
	"github.com/adminedificios/backend/internal/store"
	"github.com/adminedificios/backend/internal/tenant"
	"github.com/adminedificios/backend/internal/voting"
	"github.com/adminedificios/backend/pkg/logger"
	"github.com/adminedificios/backend/pkg/metrics"
	"github.com/adminedificios/backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging first (controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v rate_limit=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.RateLimit.Enabled)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Permissive CORS for dev/test; tighten CORS_ORIGINS in production.
	corsOrigin := "*"
	if len(cfg.CORS.Origins) > 0 && cfg.CORS.Origins[0] != "" {
		corsOrigin = strings.Join(cfg.CORS.Origins, ",")
	}
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", corsOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	// Optional Redis, only consumed by the distributed rate limiter
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
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
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	st := store.NewMongoStore(client.Database(cfg.MongoDB.Database))

	votingSvc, err := voting.NewService(ctx, st)
	if err != nil {
		logger.Fatalf("failed to initialize voting service: %v", err)
	}
	seeder := seed.NewSeeder(st)
	if err := seeder.Init(ctx); err != nil {
		logger.Warnf("demo data initialization failed: %v", err)
	} else {
		logger.Infof("Demo data initialized")
	}

	api := &handlers.API{
		Areas:     areas.NewService(st),
		Booking:   booking.NewService(st),
		Voting:    votingSvc,
		Dashboard: dashboard.NewService(st),
		Payments:  payments.NewService(st),
		Incidents: incidents.NewService(st),
		Tenant:    tenant.NewResolver(st),
		Seeder:    seeder,
	}
	api.Register(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when critical dependencies respond
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps["mongo"] = client.Ping(pingCtx, nil) == nil
		if !deps["mongo"] {
			ready = false
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil && redisClient.Ping(pingCtx).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		label := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			label = "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting building-management API on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
