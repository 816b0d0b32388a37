package scan

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aislescan/aislescan-api/internal/domain/scan"
	"github.com/aislescan/aislescan-api/pkg/apperror"
)

type GetScanUseCase struct {
	scanRepo scan.Repository
}

func NewGetScanUseCase(repo scan.Repository) *GetScanUseCase {
	return &GetScanUseCase{scanRepo: repo}
}

type GetScanInput struct {
	ScanID uuid.UUID
	UserID uuid.UUID
}

type GetScanOutput struct {
	Scan *scan.Scan
}

func (uc *GetScanUseCase) Execute(ctx context.Context, input GetScanInput) (*GetScanOutput, error) {
	s, err := uc.scanRepo.FindByID(ctx, input.ScanID, input.UserID)
	if err != nil {
		if errors.Is(err, scan.ErrScanNotFound) {
			return nil, apperror.NewNotFound("scan", input.ScanID.String())
		}
		return nil, apperror.NewInternal("failed to get scan", err)
	}
	return &GetScanOutput{Scan: s}, nil
}
