package middleware

import (
	"net/http"
	"strings"

	"videotube/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies, with a separate allowance for multipart uploads.
func BodyLimit(bodyLimit, uploadLimit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		limit := bodyLimit
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			limit = uploadLimit
		}

		if c.Request.ContentLength > limit {
			_ = c.Error(apperror.PayloadTooLarge("request body too large"))
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
