package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/config"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/publisher"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/rabbit"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/telemetry"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	_ = godotenv.Load()
	cfg := config.Load()

	// --- OpenTelemetry ---
	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint != "" {
		tp, err := telemetry.InitTracer(context.Background(), "sb-outbox-publisher", otelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
			logger.Info("OTel tracer initialized", zap.String("endpoint", otelEndpoint))
		}
		mp, err := telemetry.InitMeterProvider(context.Background(), "sb-outbox-publisher", otelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel meter provider", zap.Error(err))
		} else {
			defer mp.Shutdown(context.Background())
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("failed to parse SB_POSTGRES_DSN", zap.Error(err))
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()
	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// --- RabbitMQ ---
	client, err := rabbit.NewClient(cfg.RabbitURL, logger)
	if err != nil {
		logger.Fatal("RabbitMQ connection failed", zap.Error(err))
	}
	defer client.Close()
	if err := client.DeclareTopology(cfg.Exchange, cfg.Topics.All()); err != nil {
		logger.Fatal("RabbitMQ topology declaration failed", zap.Error(err))
	}

	// --- Janitor ---
	querier := store.New(pool)
	janitor := publisher.NewJanitor(querier, cfg.OutboxSentRetention, logger)
	if err := janitor.Start(cfg.OutboxCleanupCron); err != nil {
		logger.Fatal("janitor start failed", zap.Error(err))
	}

	// --- Health Server ---
	healthSrv := &http.Server{Addr: cfg.HealthAddr, Handler: healthMux()}
	go func() {
		logger.Info("health server listening", zap.String("addr", cfg.HealthAddr))
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failure", zap.Error(err))
		}
	}()

	// --- Worker ---
	worker := publisher.NewWorker(querier, client, cfg.Exchange, cfg.OutboxBatch, cfg.OutboxMaxRetries, logger)
	worker.Run(ctx)

	// --- Graceful Shutdown ---
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("health server shutdown error", zap.Error(err))
	}
	janitor.Stop()
	logger.Info("outbox-publisher shut down cleanly")
}

func healthMux() *http.ServeMux {
	ok := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", ok)
	mux.HandleFunc("/healthz", ok)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		ok(w, r)
	})
	return mux
}
