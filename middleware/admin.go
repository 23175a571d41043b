package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/montasssar/EcommerceSnazzyWear/models"
)

// AdminOnly gates the admin surface on the role claim of the resolved
// identity. Runs after AuthMiddleware, so a request reaching it is already
// authenticated; a non-admin is denied and the SPA redirects to the root on
// that signal.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != models.RoleAdmin {
			zap.L().Warn("Denied admin access",
				zap.String("user_id", GetUserID(c)),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
