package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMiddleware sets the CORS headers for browser clients and short-circuits
// preflight requests.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", resolveOrigin(c.GetHeader("Origin"), allowed))
		header.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// resolveOrigin echoes the request origin when it is in the allow list. An
// empty list means the API is open.
func resolveOrigin(requestOrigin string, allowed []string) string {
	if len(allowed) == 0 {
		return "*"
	}
	for _, candidate := range allowed {
		switch {
		case candidate == "*":
			return "*"
		case requestOrigin != "" && strings.EqualFold(candidate, requestOrigin):
			return requestOrigin
		}
	}
	return allowed[0]
}
