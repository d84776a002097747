package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// staticRoleResolver maps profile IDs to fixed roles.
type staticRoleResolver struct {
	roles map[string]domain.Role
}

func (r *staticRoleResolver) ResolveRole(_ context.Context, profileID string) (domain.Role, error) {
	role, ok := r.roles[profileID]
	if !ok {
		return "", fmt.Errorf("unknown profile %s", profileID)
	}
	return role, nil
}

// newRoleTestRouter builds a router whose POST /guarded route sits behind
// RequireRole, with userID injected the way AuthMiddleware would.
func newRoleTestRouter(resolver RoleResolver, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	r.POST("/guarded", RequireRole(resolver, domain.RoleAdmin), func(c *gin.Context) {
		role, _ := GetUserRoleFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return r
}

func TestRequireRole_AdminPasses(t *testing.T) {
	resolver := &staticRoleResolver{roles: map[string]domain.Role{"p-admin": domain.RoleAdmin}}
	router := newRoleTestRouter(resolver, "p-admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(domain.RoleAdmin))
}

func TestRequireRole_MemberBlockedFromAdminRoute(t *testing.T) {
	resolver := &staticRoleResolver{roles: map[string]domain.Role{"p-member": domain.RoleMember}}
	router := newRoleTestRouter(resolver, "p-member")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient role")
}

func TestRequireRole_MissingUserIDIsUnauthorized(t *testing.T) {
	resolver := &staticRoleResolver{roles: map[string]domain.Role{}}
	router := newRoleTestRouter(resolver, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_UnresolvableRoleIsForbidden(t *testing.T) {
	resolver := &staticRoleResolver{roles: map[string]domain.Role{}}
	router := newRoleTestRouter(resolver, "p-ghost")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
