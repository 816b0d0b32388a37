package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"

	"github.com/aislescan/aislescan-api/adapters/event"
	"github.com/aislescan/aislescan-api/adapters/persistence"
	scanUC "github.com/aislescan/aislescan-api/internal/application/usecase/scan"
	"github.com/aislescan/aislescan-api/internal/config"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Aisle Scan worker...")

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect to Redis", err)
	}
	defer redisClient.Close()

	processScanEventUC := scanUC.NewProcessScanEventUseCase(redisClient, appLogger)

	scanConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicScanEvents,
		GroupID:  "scan-stats-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer scanConsumer.Close()

	appLogger.Info("Worker listening on topic '" + event.TopicScanEvents + "'...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		msg, err := scanConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker shutting down")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.ScanEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal scan event, skipping", err)
			commitMessage(scanConsumer, msg, appLogger)
			continue
		}

		if err := processScanEventUC.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to process scan event for "+payload.ScanID.String(), err)
			continue
		}

		commitMessage(scanConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
