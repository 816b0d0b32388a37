package scan

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aislescan/aislescan-api/adapters/event"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

// ProcessScanEventUseCase is the worker side of the scan.events stream:
// it keeps the per-user scan counters and the product popularity set in
// Redis current. Increments are idempotent only per delivery, which is
// acceptable for stats.
type ProcessScanEventUseCase struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewProcessScanEventUseCase(rdb *redis.Client, log logger.Logger) *ProcessScanEventUseCase {
	return &ProcessScanEventUseCase{rdb: rdb, logger: log}
}

func (uc *ProcessScanEventUseCase) Execute(ctx context.Context, payload event.ScanEventPayload) error {
	if payload.EventType != event.EventTypeScanCreated {
		uc.logger.Warn("Skipping unknown scan event type: " + payload.EventType)
		return nil
	}

	pipe := uc.rdb.Pipeline()
	pipe.Incr(ctx, userScanCountKey(payload.UserID))
	if payload.ProductName != nil && *payload.ProductName != "" {
		pipe.ZIncrBy(ctx, productPopularityKey, 1, *payload.ProductName)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update scan counters: %w", err)
	}
	return nil
}
