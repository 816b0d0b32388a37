package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authUC "github.com/aislescan/aislescan-api/internal/application/usecase/auth"
	"github.com/aislescan/aislescan-api/internal/domain/user"
)

const ginContextKeyUser = "currentUser"

// AuthMiddleware resolves the bearer token to a user before any handler
// logic runs. Handlers read the resolved user from the context; they never
// touch the token themselves.
func AuthMiddleware(verifyUC *authUC.VerifyTokenUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No token provided"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token format"})
			return
		}

		u, err := verifyUC.Execute(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			return
		}

		c.Set(ginContextKeyUser, u)

		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(ginContextKeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}
