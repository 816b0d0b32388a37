package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aislescan/aislescan-api/internal/domain/profile"
	"github.com/aislescan/aislescan-api/pkg/apperror"
)

type postgresProfileRepo struct {
	db *pgxpool.Pool
}

func NewPostgresProfileRepo(db *pgxpool.Pool) profile.Repository {
	return &postgresProfileRepo{db: db}
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT user_id, allergies, goals, dietary_restrictions, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	p := &profile.Profile{}

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Allergies,
		&p.Goals,
		&p.DietaryRestrictions,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No row yet; the caller sees the default profile, not an
			// error.
			return profile.Default(userID), nil
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.DietaryRestrictions == nil {
		p.DietaryRestrictions = []string{}
	}
	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO user_profiles (user_id, allergies, goals, dietary_restrictions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), $5)
		ON CONFLICT (user_id) DO UPDATE SET
			allergies = EXCLUDED.allergies,
			goals = EXCLUDED.goals,
			dietary_restrictions = EXCLUDED.dietary_restrictions,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		p.UserID,
		p.Allergies,
		p.Goals,
		p.DietaryRestrictions,
		p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}
