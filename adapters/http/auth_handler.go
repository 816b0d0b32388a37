package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/aislescan/aislescan-api/internal/application/usecase/auth"
	"github.com/aislescan/aislescan-api/pkg/apperror"
)

type AuthHandler struct {
	signupUseCase *authUC.SignupUseCase
	loginUseCase  *authUC.LoginUseCase
}

func NewAuthHandler(signupUC *authUC.SignupUseCase, loginUC *authUC.LoginUseCase) *AuthHandler {
	return &AuthHandler{
		signupUseCase: signupUC,
		loginUseCase:  loginUC,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Invalid signup request", err.Error()))
		return
	}

	input := authUC.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}

	output, err := h.signupUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   output.Token,
		"user":    ToUserDTO(output.User),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A malformed login body still reads as a credential failure;
		// the response never hints at which part was wrong.
		c.Error(authUC.ErrInvalidCredentials)
		return
	}

	input := authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   output.Token,
		"user":    ToUserDTO(output.User),
	})
}

// Verify backs GET /auth/verify: the auth middleware has already resolved
// the token, so reaching here means it is valid.
func (h *AuthHandler) Verify(c *gin.Context) {
	u, ok := CurrentUser(c)
	if !ok {
		c.Error(apperror.NewInternal("current user missing from context", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    ToUserDTO(u),
	})
}
