package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys populated by Identify.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextUserRole = "userRole"
)

// Identify parses a bearer token when one is presented and stores the
// caller's identity in the gin context. Anonymous requests pass through
// untouched; only a malformed or invalid token is rejected.
func Identify(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// AdminOnly rejects everyone but admins. Denial is always 403, matching the
// permission contract: the predicate failed, credentials or not.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c.GetString(ContextUserRole)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// AdminOrReadOnly lets safe methods through for anyone, including anonymous
// callers, and restricts writes to admins.
func AdminOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsSafeMethod(c.Request.Method) || IsAdmin(c.GetString(ContextUserRole)) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
	}
}

// RequesterID returns the authenticated caller's user id, or "" when
// anonymous.
func RequesterID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// RequesterRole returns the authenticated caller's role, or "" when
// anonymous.
func RequesterRole(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}
