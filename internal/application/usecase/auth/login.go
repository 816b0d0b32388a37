package auth

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/aislescan/aislescan-api/internal/domain/user"
	"github.com/aislescan/aislescan-api/pkg/apperror"
	"github.com/aislescan/aislescan-api/pkg/auth"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password so responses never reveal which emails are registered.
var ErrInvalidCredentials = errors.New("email or password is incorrect")

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token string
	User  *user.User
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to look up user", err)
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{Token: token, User: u}, nil
}
