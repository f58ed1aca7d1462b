package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/server/respond"
)

// RequireRoles enforces role-based access control. With no arguments any
// authenticated caller passes; otherwise the caller's role must be one of
// the allowed set. A missing role always denies.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := RoleFromContext(c)
		if role == "" {
			respond.Error(c, http.StatusForbidden, "forbidden", "access forbidden", nil)
			return
		}
		if len(allowed) > 0 {
			if _, ok := allowed[role]; !ok {
				respond.Error(c, http.StatusForbidden, "forbidden", "access forbidden", nil)
				return
			}
		}
		c.Next()
	}
}
