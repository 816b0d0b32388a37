package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aislescan/aislescan-api/internal/domain/scan"
	"github.com/aislescan/aislescan-api/pkg/apperror"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

type postgresScanRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresScanRepo(db *pgxpool.Pool, logger logger.Logger) scan.Repository {
	return &postgresScanRepo{db: db, logger: logger}
}

var psqlScan = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var scanColumns = []string{"id", "user_id", "product_name", "image_uri", "analysis_data", "created_at"}

func (r *postgresScanRepo) Save(ctx context.Context, s *scan.Scan) error {
	analysisBytes, err := json.Marshal(s.AnalysisData)
	if err != nil {
		return apperror.NewInternal("failed to marshal analysis data", err)
	}

	query, args, err := psqlScan.
		Insert("food_scans").
		Columns(scanColumns...).
		Values(s.ID, s.UserID, s.ProductName, s.ImageURI, analysisBytes, s.CreatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build scan insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to insert scan", err)
	}
	return nil
}

func (r *postgresScanRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*scan.Scan, error) {
	query, args, err := psqlScan.
		Select(scanColumns...).
		From("food_scans").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build scan query", err)
	}

	return r.scanRow(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresScanRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*scan.Scan, error) {
	query, args, err := psqlScan.
		Select(scanColumns...).
		From("food_scans").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build scan list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list scans", err)
	}
	defer rows.Close()

	scans := make([]*scan.Scan, 0)
	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("failed to read scan rows", err)
	}
	return scans, nil
}

func (r *postgresScanRepo) scanRow(row pgx.Row) (*scan.Scan, error) {
	s := &scan.Scan{}
	var analysisBytes []byte

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.ProductName,
		&s.ImageURI,
		&analysisBytes,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scan.ErrScanNotFound
		}
		return nil, apperror.NewInternal("failed to scan food_scans row", err)
	}

	if len(analysisBytes) > 0 {
		if err := json.Unmarshal(analysisBytes, &s.AnalysisData); err != nil {
			r.logger.Warn("Failed to unmarshal analysis_data", zap.String("scan_id", s.ID.String()), zap.Error(err))
			s.AnalysisData = map[string]any{}
		}
	}
	return s, nil
}
