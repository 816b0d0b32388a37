package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile is the per-user nutrition profile. Rows are created lazily on the
// first update; a user without a row reads as the zero-value profile.
type Profile struct {
	UserID              uuid.UUID `json:"userId"`
	Allergies           []string  `json:"allergies"`
	Goals               *string   `json:"goals"`
	DietaryRestrictions []string  `json:"dietaryRestrictions"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Default is what a user without a stored profile looks like.
func Default(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:              userID,
		Allergies:           []string{},
		DietaryRestrictions: []string{},
	}
}

type Repository interface {
	// GetByUserID returns the stored profile, or Default when no row
	// exists. Absence is not an error.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}
