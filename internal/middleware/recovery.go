package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/atriumlabs/atrium/backend/internal/logger"
	"github.com/atriumlabs/atrium/backend/internal/response"
)

// Recovery converts panics into a generic 500 error envelope so that a
// crashed handler never leaks a stack trace to the client.
func Recovery(log logger.Logger, responseHandler response.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", r)
				}
				log.LogError(err, "Panic recovered while processing request")
				responseHandler.HandleError(c, err)
				c.Abort()
			}
		}()
		c.Next()
	}
}
