package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aislescan/aislescan-api/internal/domain/profile"
	"github.com/aislescan/aislescan-api/pkg/apperror"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
}

func NewProfileUseCase(repo profile.Repository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
	}
}

type GetProfileInput struct {
	UserID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to get profile", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

// UpdateProfileInput fields are pointers so a field absent from the request
// is distinguishable from one explicitly set to empty. Nil leaves the stored
// value alone; non-nil replaces it wholesale.
type UpdateProfileInput struct {
	UserID              uuid.UUID
	Allergies           *[]string
	Goals               *string
	DietaryRestrictions *[]string
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	// Read the current state first; GetByUserID synthesizes the default
	// profile when no row exists yet, so the merge below also covers lazy
	// creation.
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile for update", err)
	}

	if input.Allergies != nil {
		p.Allergies = *input.Allergies
	}
	if input.Goals != nil {
		p.Goals = input.Goals
	}
	if input.DietaryRestrictions != nil {
		p.DietaryRestrictions = *input.DietaryRestrictions
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to upsert profile", err)
	}

	return &UpdateProfileOutput{Profile: p}, nil
}
