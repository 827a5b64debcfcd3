package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"user-hub.backend/internal/domain/entities"
	domainerrors "user-hub.backend/internal/domain/errors"
	"user-hub.backend/internal/interfaces/http/response"
	"user-hub.backend/pkg/logger"
)

// CurrentUserKey is the gin context key for the authenticated user
const CurrentUserKey = "currentUser"

// CredentialVerifier authenticates an HTTP Basic Authorization header
type CredentialVerifier interface {
	AuthenticateBasic(ctx context.Context, authHeader string) (*entities.User, string, error)
}

// BasicAuthMiddleware authenticates requests via HTTP Basic credentials
// and attaches the user to the gin context. Credential failures map to
// 401, an unverified account to 403.
func BasicAuthMiddleware(verifier CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		user, username, err := verifier.AuthenticateBasic(ctx, c.GetHeader("Authorization"))
		if err != nil {
			logger.Warn(ctx, "Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("username", username),
				zap.Error(err),
			)

			switch {
			case errors.Is(err, domainerrors.ErrAuthHeaderMissing):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid Request, Need Authorization header",
				})
			case errors.Is(err, domainerrors.ErrMalformedCredentials):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid authorization header",
				})
			case errors.Is(err, domainerrors.ErrNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": fmt.Sprintf("User: %s not found.", username),
				})
			case errors.Is(err, domainerrors.ErrInvalidCredentials):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": fmt.Sprintf("Authorisation failure for user: %s", username),
				})
			case errors.Is(err, domainerrors.ErrEmailNotVerified):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": fmt.Sprintf("Email verification required to access this API. for user: %s", username),
				})
			default:
				response.Error(c, err)
				c.Abort()
			}
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// GetCurrentUser gets the authenticated user from the gin context
func GetCurrentUser(c *gin.Context) (*entities.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}
