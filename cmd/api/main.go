package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/scheduling-api/internal/audit"
	"github.com/BruksfildServices01/scheduling-api/internal/cache"
	"github.com/BruksfildServices01/scheduling-api/internal/config"
	dbpkg "github.com/BruksfildServices01/scheduling-api/internal/db"
	"github.com/BruksfildServices01/scheduling-api/internal/events"
	"github.com/BruksfildServices01/scheduling-api/internal/middleware"
	"github.com/BruksfildServices01/scheduling-api/internal/monitoring"
	"github.com/BruksfildServices01/scheduling-api/internal/routes"
	"github.com/BruksfildServices01/scheduling-api/internal/validators"
)

func main() {

	cfg := config.Load()

	// ======================================================
	// OBSERVABILITY
	// ======================================================
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.AppEnv,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Printf("sentry disabled: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}
	monitoring.Init()

	if err := validators.Register(); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	// ======================================================
	// INFRA
	// ======================================================
	db := dbpkg.NewDB(cfg)

	var listCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer rc.Close()
		listCache = rc
	}

	var publisher audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, publisher)

	retention, err := audit.StartRetention(auditLogger, cfg.AuditRetentionDays)
	if err != nil {
		log.Fatalf("failed to start audit retention: %v", err)
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.SentryMiddleware())
	r.Use(middleware.ErrorReporter())

	routes.RegisterRoutes(r, routes.Deps{
		DB:              db,
		Config:          cfg,
		Cache:           listCache,
		AuditLogger:     auditLogger,
		AuditDispatcher: auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := retention.Shutdown(); err != nil {
		log.Printf("retention shutdown: %v", err)
	}
	auditDispatcher.Close()
}
