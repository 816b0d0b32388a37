package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/aislescan/aislescan-api/internal/domain/user"
	"github.com/aislescan/aislescan-api/pkg/apperror"
	"github.com/aislescan/aislescan-api/pkg/auth"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

const minPasswordLength = 6

var tracer = otel.Tracer("auth_usecase")

type SignupUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewSignupUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *SignupUseCase {
	return &SignupUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

type SignupOutput struct {
	Token string
	User  *user.User
}

func (uc *SignupUseCase) Execute(ctx context.Context, input SignupInput) (*SignupOutput, error) {

	ctx, span := tracer.Start(ctx, "Signup")
	defer span.End()

	if len(input.Password) < minPasswordLength {
		return nil, apperror.NewInvalidInput(
			fmt.Sprintf("Password must be at least %d characters", minPasswordLength),
			"password below minimum length",
		)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
	}

	// A single INSERT; the store's unique constraint on email rejects the
	// second of two racing signups and nothing is mutated.
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to create user", err)
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	uc.logger.Info("User signed up", zap.String("user_id", u.ID.String()))
	return &SignupOutput{Token: token, User: u}, nil
}
