package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/l1t48/Test-backend/internal/common"
	"github.com/l1t48/Test-backend/internal/server/services"
)

const (
	requestIDKey = "request.id"
	identityKey  = "auth.identity"
)

// requestID takes X-Request-ID from the client or generates one, and
// echoes it on the response.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
			"request_id", c.GetString(requestIDKey),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Error(c.Request.Context(), "request", args...)
			return
		}
		s.logger.Info(c.Request.Context(), "request", args...)
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		s.logger.Error(c.Request.Context(), "panic recovered", "error", err, "request_id", c.GetString(requestIDKey))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	})
}

// requireAuth is the request gate: the session token comes from the cookie,
// falling back to "Authorization: Bearer <token>". Any failure ends the
// request with 401 before the handler runs; the cause is only logged.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := s.cookie.Read(c.Request)
		if token == "" {
			token = bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
			return
		}

		claims, err := s.tokens.Validate(token)
		if err != nil {
			s.logger.Warn(c.Request.Context(), "rejected token", "error", err, "request_id", c.GetString(requestIDKey))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
			return
		}

		identity, err := s.users.ExtractIdentity(claims)
		if err != nil {
			s.logger.Warn(c.Request.Context(), "rejected identity", "error", err, "request_id", c.GetString(requestIDKey))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// currentIdentity returns the identity set by requireAuth.
func currentIdentity(c *gin.Context) (*services.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*services.Identity)
	return identity, ok && identity != nil
}
