package scan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrScanNotFound = errors.New("scan not found")

// Scan is one saved food-label scan with the analysis the client computed
// for it. The image itself lives wherever the client put it; we only keep
// the URI.
type Scan struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"userId"`
	ProductName  *string        `json:"productName"`
	ImageURI     *string        `json:"imageUri"`
	AnalysisData map[string]any `json:"analysisData"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type Repository interface {
	Save(ctx context.Context, s *Scan) error
	// FindByID is scoped to the owner; another user's scan id reads as
	// not found.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*Scan, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Scan, error)
}
