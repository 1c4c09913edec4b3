package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const readOnlyCode = "read_only"

// readOnly blocks write operations. GET, HEAD and OPTIONS pass through.
func readOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error: "this server is read-only",
			Code:  readOnlyCode,
		})
	}
}
