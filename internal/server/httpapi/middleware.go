package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/resumekeeper/internal/logging"
	"github.com/skillforge/resumekeeper/internal/server/auth"
)

const identityKey = "identity"

// AuthRequired extracts the session token from the request cookie, verifies
// it, and attaches the decoded identity to the request context. Any
// verification failure short-circuits with a bare authorization rejection;
// the specific reason is only logged.
func AuthRequired(tokens *auth.TokenManager, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		identity, err := tokens.Verify(tokenStr)
		if err != nil {
			logger.Warn(c.Request.Context(), "session token rejected", "reason", err.Error(), "ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by AuthRequired.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

// RequestLogger logs one line per request: method, path, status, duration,
// client IP. Bodies are never logged, so credentials stay out of the logs.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"ip", c.ClientIP(),
		)
	}
}
