package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/alirk24/sejam-porfiling/internal/errorlog"
	"github.com/alirk24/sejam-porfiling/internal/platform/config"
	"github.com/alirk24/sejam-porfiling/internal/platform/database"
	"github.com/alirk24/sejam-porfiling/internal/platform/health"
	"github.com/alirk24/sejam-porfiling/internal/platform/kafka/producer"
	"github.com/alirk24/sejam-porfiling/internal/platform/logger"
	"github.com/alirk24/sejam-porfiling/internal/platform/metrics"
	"github.com/alirk24/sejam-porfiling/internal/platform/middleware"
	platformredis "github.com/alirk24/sejam-porfiling/internal/platform/redis"
	"github.com/alirk24/sejam-porfiling/internal/platform/tracer"
	"github.com/alirk24/sejam-porfiling/internal/profile/events"
	profilehandler "github.com/alirk24/sejam-porfiling/internal/profile/handler"
	"github.com/alirk24/sejam-porfiling/internal/profile/service"
	profilestore "github.com/alirk24/sejam-porfiling/internal/profile/store"
	"github.com/alirk24/sejam-porfiling/internal/ratelimit"
	"github.com/alirk24/sejam-porfiling/internal/sejam"
	"github.com/alirk24/sejam-porfiling/internal/token"
	tokenstore "github.com/alirk24/sejam-porfiling/internal/token/store"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	log.Info("initializing sejam gateway",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"upstream", cfg.SejamBaseURL,
	)

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	rdb, err := platformredis.New(platformredis.Config{URL: cfg.RedisURL})
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// Store selection: Postgres when configured, Redis preferred for the
	// token cache, in-memory fallbacks otherwise.
	var (
		tokens   token.Store
		profiles profilestore.Store
		errLog   errorlog.Store
	)
	switch {
	case pool != nil:
		profiles = profilestore.NewPostgresStore(pool.DB())
		errLog = errorlog.NewPostgresStore(pool.DB())
		tokens = tokenstore.NewPostgresStore(pool.DB())
	default:
		profiles = profilestore.NewInMemoryStore()
		errLog = errorlog.NewInMemoryStore()
		tokens = tokenstore.NewInMemoryStore()
	}
	if rdb != nil {
		tokens = tokenstore.NewRedisStore(rdb.Client)
	}

	var publisher *events.Publisher
	if cfg.KafkaBrokers != "" {
		kafkaCfg := producer.DefaultConfig()
		kafkaCfg.Brokers = cfg.KafkaBrokers
		kafkaProducer, err := producer.New(kafkaCfg, log)
		if err != nil {
			log.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close()
		publisher = events.NewPublisher(kafkaProducer, cfg.EventTopic, log)
	}

	client := sejam.NewClient(cfg.SejamBaseURL, cfg.SejamUsername, cfg.SejamPassword, cfg.SejamTimeout)

	tokenManager := token.NewManager(tokens, client, errLog,
		token.WithLogger(log),
		token.WithMetrics(m),
	)

	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithTracer(tracer.NewOTel()),
	}
	if publisher != nil {
		svcOpts = append(svcOpts, service.WithEvents(publisher))
	}
	svc := service.NewService(tokenManager, client, profiles, errLog, svcOpts...)

	limiter := ratelimit.New(ratelimit.NewInMemoryStore(), cfg.RateLimit, cfg.RateLimitWindow, log,
		ratelimit.WithMetrics(m))

	healthHandler := health.New(cfg.Environment)
	if pool != nil {
		healthHandler.RegisterCheck("database", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(ctx)
		})
	}
	if rdb != nil {
		healthHandler.RegisterCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return rdb.Health(ctx)
		})
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS)
	r.Use(middleware.Timeout(cfg.SejamTimeout + 10*time.Second))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(limiter.Limit)
		profilehandler.New(svc, log, profilehandler.WithMetrics(m)).Register(r)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
