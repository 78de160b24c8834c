package user

import (
	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key under which the authenticated
// user is stored by the auth middleware.
const ContextUserKey = "currentUser"

// FromContext returns the authenticated user from the gin context.
func FromContext(c *gin.Context) (*User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	u, ok := value.(*User)
	return u, ok
}
