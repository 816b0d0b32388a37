package scan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/aislescan/aislescan-api/adapters/event"
	"github.com/aislescan/aislescan-api/internal/domain/scan"
	"github.com/aislescan/aislescan-api/pkg/apperror"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

var tracer = otel.Tracer("scan_usecase")

// ScanEventPublisher is what SaveScan needs from the Kafka adapter.
type ScanEventPublisher interface {
	PublishScanCreated(ctx context.Context, payload event.ScanEventPayload) error
}

type SaveScanUseCase struct {
	scanRepo  scan.Repository
	publisher ScanEventPublisher
	logger    logger.Logger
}

func NewSaveScanUseCase(repo scan.Repository, publisher ScanEventPublisher, log logger.Logger) *SaveScanUseCase {
	return &SaveScanUseCase{
		scanRepo:  repo,
		publisher: publisher,
		logger:    log,
	}
}

type SaveScanInput struct {
	UserID       uuid.UUID
	ProductName  *string
	ImageURI     *string
	AnalysisData map[string]any
}

type SaveScanOutput struct {
	Scan *scan.Scan
}

func (uc *SaveScanUseCase) Execute(ctx context.Context, input SaveScanInput) (*SaveScanOutput, error) {

	ctx, span := tracer.Start(ctx, "SaveScan")
	defer span.End()

	s := &scan.Scan{
		ID:           uuid.New(),
		UserID:       input.UserID,
		ProductName:  input.ProductName,
		ImageURI:     input.ImageURI,
		AnalysisData: input.AnalysisData,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.scanRepo.Save(ctx, s); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save scan", err)
	}

	// The scan is already durable; a publish failure only delays stats.
	payload := event.ScanEventPayload{
		EventType:   event.EventTypeScanCreated,
		ScanID:      s.ID,
		UserID:      s.UserID,
		ProductName: s.ProductName,
		OccurredAt:  s.CreatedAt,
	}
	if err := uc.publisher.PublishScanCreated(ctx, payload); err != nil {
		uc.logger.Error("Failed to publish scan.created event", err, zap.String("scan_id", s.ID.String()))
	}

	span.SetAttributes(attribute.String("scan_id", s.ID.String()))
	return &SaveScanOutput{Scan: s}, nil
}
