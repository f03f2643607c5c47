package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	a "github.com/mo-shab/tutor/pkg/auth"
)

// JWTAuth authenticates from the http-only cookie set at login, falling back
// to a bearer header for non-browser clients.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie("token")
		if err != nil || tok == "" {
			h := c.GetHeader("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authorized, no token"})
				return
			}
			tok = strings.TrimPrefix(h, "Bearer ")
		}
		claims, err := a.ParseValidate(secret, tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authorized, token failed"})
			return
		}
		c.Set("sub", claims.Sub)
		c.Set("role", claims.Role)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, _ := c.Get("role")
		role, _ := v.(string)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			return
		}
		c.Next()
	}
}

// Subject returns the authenticated user id set by JWTAuth.
func Subject(c *gin.Context) string {
	v, _ := c.Get("sub")
	s, _ := v.(string)
	return s
}

// Role returns the authenticated role set by JWTAuth.
func Role(c *gin.Context) string {
	v, _ := c.Get("role")
	s, _ := v.(string)
	return s
}
