package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/handler"
	"github.com/subtrackhq/subtrack/internal/health"
	"github.com/subtrackhq/subtrack/internal/infra/dispatchrecorder"
	"github.com/subtrackhq/subtrack/internal/infra/postgres"
	"github.com/subtrackhq/subtrack/internal/infra/repository"
	"github.com/subtrackhq/subtrack/internal/infra/telegram"
	"github.com/subtrackhq/subtrack/internal/observability/logging"
	"github.com/subtrackhq/subtrack/internal/observability/metrics"
	"github.com/subtrackhq/subtrack/internal/observability/middleware"
	"github.com/subtrackhq/subtrack/internal/service/catalog"
	"github.com/subtrackhq/subtrack/internal/service/dispatch"
	"github.com/subtrackhq/subtrack/internal/service/item"
	"github.com/subtrackhq/subtrack/internal/service/ledger"
	"github.com/subtrackhq/subtrack/internal/service/savings"
	"github.com/subtrackhq/subtrack/internal/service/sweep"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	engineMetrics, err := metrics.NewEngineMetrics()
	if err != nil {
		slog.Error("failed to initialize engine metrics", slog.String("error", err.Error()))
		return 1
	}

	recorderCfg := dispatchrecorder.LoadConfig()
	recorder, err := dispatchrecorder.NewRecorder(ctx, recorderCfg)
	if err != nil {
		slog.Error("failed to initialize dispatch recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close dispatch recorder", slog.String("error", err.Error()))
		}
	}()

	db, err := postgres.Open(cfg.Postgres.DSN)
	if err != nil {
		slog.Error("failed to connect postgres",
			slog.String("event", "postgres.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			slog.Warn("failed to close postgres connection", slog.String("error", err.Error()))
		}
	}()

	if err := postgres.Migrate(db); err != nil {
		slog.Error("failed to migrate schema", slog.String("error", err.Error()))
		return 1
	}

	slog.Info("postgres connected")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	itemRepo := postgres.NewItemRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	linkRepo := postgres.NewChannelLinkRepository(db)
	markRepo := repository.NewReminderMarkRepository(redisClient)

	clock := domain.SystemClock()

	var sender domain.ChannelSender
	if s := telegram.NewSender(cfg.Telegram); s != nil {
		sender = s
		slog.Info("telegram sender initialized")
	} else {
		slog.Warn("TELEGRAM_BOT_TOKEN not set, channel delivery disabled")
	}

	ledgerService := ledger.NewService(notificationRepo, clock)
	dispatcher := dispatch.NewDispatcher(
		linkRepo,
		sender,
		notificationRepo,
		recorder,
		engineMetrics,
		cfg.Telegram.SendTimeout,
	)
	itemService := item.NewService(itemRepo, ledgerService, dispatcher, clock, engineMetrics)

	matcher := catalog.NewMatcher(catalog.StaticProvider())
	analyzer := savings.NewAnalyzer(matcher, cfg.Savings)

	sweepRunner := sweep.NewRunner(
		itemRepo,
		markRepo,
		ledgerService,
		dispatcher,
		recorder,
		clock,
		engineMetrics,
		cfg.Reminder,
	)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sweepRunner.Start(ctx)
	}()

	itemHandler := handler.NewItemHandler(itemService)
	notificationHandler := handler.NewNotificationHandler(ledgerService, dispatcher, cfg.Reminder.HistoryDefaultLimit)
	recommendationHandler := handler.NewRecommendationHandler(itemRepo, analyzer)
	channelHandler := handler.NewChannelHandler(linkRepo, ledgerService, dispatcher, clock)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready"},
		Module:     logging.Module("billing-engine"),
		TracerName: "github.com/subtrackhq/subtrack/internal/observability/middleware",
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(db, redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/items", itemHandler.HandleCreate)
		v1.GET("/items", itemHandler.HandleList)
		v1.GET("/items/:id", itemHandler.HandleGet)
		v1.PUT("/items/:id", itemHandler.HandleUpdate)
		v1.DELETE("/items/:id", itemHandler.HandleDelete)

		v1.GET("/notifications", notificationHandler.HandleList)
		v1.DELETE("/notifications", notificationHandler.HandleClear)
		v1.POST("/notifications/:id/read", notificationHandler.HandleMarkRead)
		v1.POST("/notifications/test", notificationHandler.HandleTest)

		v1.GET("/recommendations", recommendationHandler.HandleList)

		v1.POST("/channel/link", channelHandler.HandleLink)
		v1.POST("/channel/unlink", channelHandler.HandleUnlink)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Duration("sweep_interval", cfg.Reminder.SweepInterval),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		// Let an in-flight sweep finish before tearing down the
		// connections it writes through.
		<-sweepDone

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
