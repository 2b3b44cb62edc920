package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yanqian/outfit-concierge/internal/infra/config"
)

const authUserKey = "auth_user_id"

// authMiddleware validates HS256 bearer tokens and stores the subject claim
// for handlers. Disabled auth passes every request through.
func authMiddleware(cfg config.AuthConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil))
			return
		}

		token, err := jwt.Parse(strings.TrimSpace(parts[1]), func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			abortWithError(c, NewHTTPError(http.StatusForbidden, "invalid_token", "token validation failed", err))
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			abortWithError(c, NewHTTPError(http.StatusForbidden, "invalid_token", "token has no subject", err))
			return
		}
		c.Set(authUserKey, subject)
		c.Next()
	}
}

func authenticatedUser(c *gin.Context) (string, bool) {
	value, ok := c.Get(authUserKey)
	if !ok {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok
}
