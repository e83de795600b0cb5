package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Health probe timeout

	"health_guardian/internal/api"        // Custom package for API handlers
	"health_guardian/internal/archive"    // Raw upload archival
	"health_guardian/internal/config"     // Custom package for configuration
	"health_guardian/internal/db"         // Database connection
	"health_guardian/internal/middleware" // Custom package for middleware
	"health_guardian/internal/repository" // GORM repositories
	"health_guardian/internal/scorer"     // Prediction model runners
	"health_guardian/internal/service"    // Domain services
	"health_guardian/internal/utils"      // Cache implementations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{}) // Machine readable logs in production
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database
	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection; run uncached rather than refuse to start
	var cache service.Cache = utils.NewRedisCache(redisClient)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.WithField("error", err.Error()).Warn("Redis unavailable, caching disabled")
		cache = utils.NopCache{}
	}

	// Prediction model runner
	var modelScorer service.Scorer
	switch cfg.ScorerMode {
	case "http":
		modelScorer = scorer.NewHTTPScorer(cfg.ScorerURL, cfg.ScorerTimeout)
	default:
		modelScorer = scorer.NewExecScorer(cfg.ScorerCommand, cfg.ScorerScript)
	}

	// Optional archival of raw uploads
	var archiver service.Archiver
	if cfg.ArchiveBucket != "" {
		s3Archiver, err := archive.NewS3ArchiverFromEnv(context.Background(), cfg.ArchiveBucket)
		if err != nil {
			logrus.Fatalf("failed to configure archive bucket: %v", err)
		}
		archiver = s3Archiver
	}

	// Repositories and services
	users := repository.NewUserRepository(conn)
	donors := repository.NewDonorRepository(conn)
	diseases := repository.NewDiseaseRepository(conn)
	alerts := repository.NewAlertRepository(conn)
	notifications := repository.NewNotificationRepository(conn)

	donorService := service.NewDonorService(donors, users, cache, cfg.CacheTTL)
	fanout := service.NewFanout(users, notifications, cfg.FanoutWorkers)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Accounts:      service.NewAccountService(users, cache, cfg.JWTSecret, cfg.TokenTTL, cfg.CacheTTL),
		Donors:        donorService,
		Matcher:       service.NewMatcher(donors),
		Alerts:        service.NewAlertService(alerts, diseases, fanout),
		Notifications: service.NewNotificationService(notifications, donors, fanout),
		Predictions:   service.NewPredictionService(diseases, modelScorer, archiver, cfg.SignificanceThreshold, cfg.ScorerTimeout),
		Gate:          service.NewGate(cfg.JWTSecret),
		Users:         users,
		Limiter:       middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		UploadDir:     cfg.UploadDir,
		Health: func(ctx context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return sqlDB.PingContext(ctx)
		},
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "db": cfg.DBDriver, "scorer": cfg.ScorerMode}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
