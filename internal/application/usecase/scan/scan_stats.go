package scan

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aislescan/aislescan-api/pkg/apperror"
)

// Redis keys shared with the worker that maintains them.
const productPopularityKey = "scan:products"

func userScanCountKey(userID uuid.UUID) string {
	return fmt.Sprintf("scan:count:%s", userID)
}

// StatsReader is the slice of the Redis client the stats path uses.
type StatsReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type ScanStatsUseCase struct {
	rdb StatsReader
}

func NewScanStatsUseCase(rdb StatsReader) *ScanStatsUseCase {
	return &ScanStatsUseCase{rdb: rdb}
}

type ScanStatsInput struct {
	UserID uuid.UUID
}

type ScanStatsOutput struct {
	TotalScans int64
}

func (uc *ScanStatsUseCase) Execute(ctx context.Context, input ScanStatsInput) (*ScanStatsOutput, error) {
	count, err := uc.rdb.Get(ctx, userScanCountKey(input.UserID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &ScanStatsOutput{TotalScans: 0}, nil
		}
		return nil, apperror.NewInternal("failed to read scan counters", err)
	}
	return &ScanStatsOutput{TotalScans: count}, nil
}
