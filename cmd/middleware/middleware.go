package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cecepns/trailrun/internal/dto"
	"github.com/cecepns/trailrun/internal/model"
	"github.com/cecepns/trailrun/pkg/token"
)

const claimsKey = "authClaims"

// LoggingMiddleware tags every request with a request id and logs the
// outcome once the handler chain finishes.
func LoggingMiddleware(log *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("requestId", requestID)
		c.Header("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// Authenticate verifies the bearer token and stores the caller's claims on
// the context. Handlers pass the verified (userId, role) pair on explicitly.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(401, dto.Message{Message: dto.MsgTokenRequired})
			return
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(401, dto.Message{Message: dto.MsgTokenRequired})
			return
		}

		claims, err := token.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(401, dto.Message{Message: dto.MsgInvalidToken})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || claims.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(403, dto.Message{Message: dto.MsgAdminRequired})
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}
