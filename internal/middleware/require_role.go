package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RoleResolver resolves the role for an authenticated profile ID.
// Satisfied by the auth service; declared here so the middleware does not
// depend on the services package.
type RoleResolver interface {
	ResolveRole(ctx context.Context, profileID string) (domain.Role, error)
}

// RequireRole creates a Gin middleware handler that gates a route group on
// the caller's resolved role. Must run after AuthMiddleware.
func RequireRole(resolver RoleResolver, required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromCtx(c.Request.Context())
		if !ok {
			logger.Error("User ID not found in context for role check")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("Failed to resolve role", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role could not be resolved"})
			return
		}

		// Admins pass every gate; members only pass member gates.
		if role != required && role != domain.RoleAdmin {
			logger.Warn("Insufficient role",
				slog.String("required_role", string(required)),
				slog.String("actual_role", string(role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userRoleKey, string(role))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
