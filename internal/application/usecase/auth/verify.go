package auth

import (
	"context"
	"errors"

	"github.com/aislescan/aislescan-api/internal/domain/user"
	"github.com/aislescan/aislescan-api/pkg/apperror"
	"github.com/aislescan/aislescan-api/pkg/auth"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

// VerifyTokenUseCase resolves a bearer token to the user it identifies.
// It is the gate in front of every protected route.
type VerifyTokenUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewVerifyTokenUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *VerifyTokenUseCase {
	return &VerifyTokenUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

// Execute validates the token signature and expiry, then confirms the
// embedded user still exists. A user deleted after issuance reads as
// unauthorized, same as a bad token.
func (uc *VerifyTokenUseCase) Execute(ctx context.Context, tokenString string) (*user.User, error) {
	claims, err := uc.jwtSvc.ValidateToken(tokenString)
	if err != nil {
		return nil, apperror.NewUnauthorized("token validation failed", err)
	}

	u, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewUnauthorized("token user no longer exists", nil)
		}
		return nil, apperror.NewInternal("failed to look up token user", err)
	}

	return u, nil
}
