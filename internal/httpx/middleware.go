package httpx

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/luu-sac/ceramics-api/internal/user"
)

var httpLog = zerolog.New(os.Stdout).With().Timestamp().Str("component", "http").Logger()

const (
	ctxUserID = "userId"
	ctxEmail  = "email"
	ctxRole   = "role"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		httpLog.Info().
			Str("rid", c.GetString("rid")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("request")
	}
}

func CORS(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// TokenParser is what the auth middleware needs from the auth service.
type TokenParser interface {
	ParseToken(token string) (*user.Claims, error)
}

// Auth extracts and validates the bearer token, storing the caller's
// identity in the request context.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(401, Response{Success: false, Message: "access token required"})
			return
		}
		claims, err := parser.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(401, Response{Success: false, Message: "invalid token"})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != user.RoleAdmin {
			c.AbortWithStatusJSON(403, Response{Success: false, Message: "admin access required"})
			return
		}
		c.Next()
	}
}

func callerID(c *gin.Context) string { return c.GetString(ctxUserID) }
func isAdmin(c *gin.Context) bool    { return c.GetString(ctxRole) == user.RoleAdmin }
