package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
	"github.com/atriumlabs/atrium/backend/internal/user"
)

// Middleware creates a middleware requiring a valid access token. The
// resolved user is stored in the request context.
func Middleware(service *Service, responseHandler ResponseHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			responseHandler.HandleError(c, err)
			c.Abort()
			return
		}

		current, err := service.CurrentUser(c.Request.Context(), token)
		if err != nil {
			responseHandler.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(user.ContextUserKey, current)
		c.Set("userID", current.ID.String())
		c.Next()
	}
}

// RequireSuperuser creates a middleware enforcing the superuser flag.
// It must run after Middleware.
func RequireSuperuser(responseHandler ResponseHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := user.FromContext(c)
		if !ok {
			responseHandler.HandleError(c, apperror.NewAuthentication(apperror.ErrMsgInvalidToken))
			c.Abort()
			return
		}
		if !current.IsSuperuser {
			responseHandler.HandleError(c, apperror.NewPermission(apperror.ErrMsgPermissionDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", apperror.NewAuthentication("Authorization header is required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", apperror.NewAuthentication("Invalid authorization header format")
	}

	return parts[1], nil
}
