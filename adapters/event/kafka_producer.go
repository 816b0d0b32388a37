package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/aislescan/aislescan-api/internal/config"
)

const TopicScanEvents = "scan.events"

const EventTypeScanCreated = "scan.created"

type ScanEventPayload struct {
	EventType   string    `json:"event_type"`
	ScanID      uuid.UUID `json:"scan_id"`
	UserID      uuid.UUID `json:"user_id"`
	ProductName *string   `json:"product_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ScanEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	scanWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicScanEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{ScanEventsWriter: scanWriter}, nil
}

// PublishScanCreated emits one message per saved scan, keyed by user so a
// user's events stay ordered within a partition.
func (c *KafkaProducerClient) PublishScanCreated(ctx context.Context, payload ScanEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal scan event: %w", err)
	}

	return c.ScanEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ScanEventsWriter != nil {
		c.ScanEventsWriter.Close()
	}
}
