package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/config"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/consumer"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/rabbit"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/telemetry"
)

// prefetch bounds unacked deliveries per consumer; retries republish to the
// back of the queue, so a small window cannot deadlock on poison messages.
const prefetch = 50

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	_ = godotenv.Load()
	cfg := config.Load()

	// --- OpenTelemetry ---
	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint != "" {
		tp, err := telemetry.InitTracer(context.Background(), "sb-processor", otelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
			logger.Info("OTel tracer initialized", zap.String("endpoint", otelEndpoint))
		}
		mp, err := telemetry.InitMeterProvider(context.Background(), "sb-processor", otelEndpoint)
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

	// --- Processor ---
	proc := consumer.New(pool, client, cfg, logger)
	if err := proc.Run(ctx, client, prefetch); err != nil {
		logger.Fatal("processor stopped", zap.Error(err))
	}
	logger.Info("processor shut down cleanly")
}
