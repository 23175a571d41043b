package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	UserKey  = "userID"
	EmailKey = "userEmail"
	RoleKey  = "userRole"
)

// TokenValidator resolves a bearer token into its claims.
type TokenValidator interface {
	ValidateToken(tokenStr string) (jwt.MapClaims, error)
}

// AuthMiddleware resolves the shopper's identity from the Authorization
// header. Until it runs the request is anonymous; afterwards it is either
// authorized (claims stored on the context) or rejected with 401.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserKey, userID)
		if email, ok := claims["email"].(string); ok {
			c.Set(EmailKey, email)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(RoleKey, role)
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	if val, exists := c.Get(UserKey); exists {
		return val.(string)
	}
	return ""
}

func GetUserRole(c *gin.Context) string {
	if val, exists := c.Get(RoleKey); exists {
		return val.(string)
	}
	return ""
}
