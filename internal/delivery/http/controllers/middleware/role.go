package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route group on the roles the auth middleware stored in
// the context. The request passes when the client holds at least one of the
// allowed roles; it must run after AuthMiddleware.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		roles, ok := clientRoles(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "roles not found"})
			return
		}

		for _, role := range roles {
			if _, hasRole := allowed[role]; hasRole {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

func clientRoles(c *gin.Context) ([]string, bool) {
	raw, exists := c.Get(ClientRolesCtx)
	if !exists {
		return nil, false
	}
	roles, ok := raw.([]string)
	return roles, ok
}
