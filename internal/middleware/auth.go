package middleware

import (
	"net/http"

	"github.com/DapP256/trabajo-final-uai/internal/auth"
	"github.com/DapP256/trabajo-final-uai/internal/logger"
	"github.com/DapP256/trabajo-final-uai/internal/models"
	"github.com/DapP256/trabajo-final-uai/pkg/apperrors"
	"github.com/DapP256/trabajo-final-uai/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

const sessionKey = string(contextkeys.SessionContextKey)

// SessionMiddleware decodes the session cookie and, when valid, stores the
// payload in the context. It never rejects: a bad cookie is the same as no
// cookie, and route groups that need a session stack RequireSession on top.
func SessionMiddleware(cookies *auth.CookieWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if payload := cookies.Read(c.Request); payload != nil {
			c.Set(sessionKey, payload)
			ctx := logger.WithUserID(c.Request.Context(), payload.User.ID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// RequireSession aborts with 401 when no valid session was decoded.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: apperrors.ErrNoAutenticado})
			return
		}
		c.Next()
	}
}

// RequireRoles aborts with 403 unless the session role is one of roles.
// Administrators pass every gate.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: apperrors.ErrNoAutenticado})
			return
		}
		if !auth.AssertRole(session, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, apperrors.ErrorResponse{Error: apperrors.ErrAccesoDenegado})
			return
		}
		c.Next()
	}
}

// GetSession returns the decoded session payload, or nil when the request
// carried none.
func GetSession(c *gin.Context) *auth.SessionPayload {
	val, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	payload, ok := val.(*auth.SessionPayload)
	if !ok {
		return nil
	}
	return payload
}
