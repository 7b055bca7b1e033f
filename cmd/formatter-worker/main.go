package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"phonefmt/internal/formatter/service"
	"phonefmt/internal/formatter/stream"
	"phonefmt/internal/formatter/validator"
	"phonefmt/pkg/config"
	"phonefmt/pkg/kafka"
	kafka_config "phonefmt/pkg/kafka/config"
	kafka_middleware "phonefmt/pkg/kafka/middleware"
	"phonefmt/pkg/phoneformat"
)

const (
	ServiceName = "formatter-worker"

	metricsInterval = time.Minute
)

func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	formatterService := service.NewFormatterService(
		phoneformat.DefaultPlan(),
		validator.NewFormatValidator(cfg.Log),
		cfg,
	)
	if err := formatterService.Ready(context.Background()); err != nil {
		cfg.Log.Fatal("Formatter service is not ready", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.FormatResultsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	processor := stream.NewProcessor(formatterService, producer, ServiceName, cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.FormatRequestsTopic,
		cfg.FormatConsumerGroup,
		cfg.FormatDLQTopic,
		processor.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(metrics.ProducerMiddleware())
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(metrics.ConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting Formatter worker",
		"requests_topic", cfg.FormatRequestsTopic,
		"results_topic", cfg.FormatResultsTopic,
		"dlq_topic", cfg.FormatDLQTopic,
		"consumer_group", cfg.FormatConsumerGroup,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Start(gctx)
	})
	g.Go(func() error {
		reportMetrics(gctx, metrics, cfg)
		return nil
	})

	exitCode := 0
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Kafka consumer stopped", "error", err)
		exitCode = 1
	}

	stats := consumer.Stats()
	cfg.Log.Info("Shutting down Formatter worker", "messages", stats.Messages, "errors", stats.Errors)
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	if err := producer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka producer", "error", err)
	}

	metrics.Log(cfg.Log)
	cfg.Log.Info("Formatter worker stopped", "exit_code", exitCode)
	stop()
	os.Exit(exitCode)
}

func reportMetrics(ctx context.Context, metrics *kafka_middleware.Metrics, cfg *config.Config) {
	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.Log(cfg.Log)
		}
	}
}
