package scan

import (
	"context"

	"github.com/google/uuid"

	"github.com/aislescan/aislescan-api/internal/domain/scan"
	"github.com/aislescan/aislescan-api/pkg/apperror"
)

const defaultListLimit = 50

type ListScansUseCase struct {
	scanRepo scan.Repository
}

func NewListScansUseCase(repo scan.Repository) *ListScansUseCase {
	return &ListScansUseCase{scanRepo: repo}
}

type ListScansInput struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

type ListScansOutput struct {
	Scans []*scan.Scan
}

func (uc *ListScansUseCase) Execute(ctx context.Context, input ListScansInput) (*ListScansOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	scans, err := uc.scanRepo.ListByUser(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, apperror.NewInternal("failed to list scans", err)
	}
	return &ListScansOutput{Scans: scans}, nil
}
