package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hackmate/hackmate/pkg/config"
)

// Context keys set by AuthRequired
const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
	ContextRole   = "user_role"
)

// AuthRequired validates the Bearer token and stores the caller's
// identity on the request context
func AuthRequired() gin.HandlerFunc {
	secret := []byte(config.AppConfig.JWT.Secret)

	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")
		if !strings.HasPrefix(bearer, "Bearer ") {
			unauthorized(c, "missing bearer token")
			return
		}

		token, err := jwt.Parse(bearer[7:], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "invalid token claims")
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			unauthorized(c, "invalid token claims")
			return
		}

		c.Set(ContextUserID, sub)
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextEmail, email)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(ContextRole, role)
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id set by AuthRequired
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
