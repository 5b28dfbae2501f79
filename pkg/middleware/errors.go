package middleware

import (
	"fmt"
	"runtime/debug"

	"videotube/pkg/apperror"
	"videotube/pkg/logger"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the failure envelope for the last error a handler
// attached with c.Error, and turns panics into a 500.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic serving %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, r, debug.Stack())
				response.Error(c, apperror.Internal(fmt.Errorf("panic: %v", r)))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperror.From(c.Errors.Last().Err)
		if appErr.Status >= 500 {
			log.Error("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, appErr)
		}
		response.Error(c, appErr)
	}
}
