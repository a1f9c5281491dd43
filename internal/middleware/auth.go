package middleware

import (
	"net/http"
	"strings"

	"conduit/internal/db"
	"conduit/internal/models"
	"conduit/internal/services"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoadUser resolves the optional viewer from the Authorization header and
// sets it on the context. A missing or invalid token just leaves the request
// anonymous; endpoints that need a viewer stack AuthRequired on top.
func LoadUser(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromHeader(c.GetHeader("Authorization"))
		if raw != "" {
			if userID, err := tokens.Verify(raw); err == nil {
				var user models.User
				if result := db.DB.First(&user, userID); result.Error == nil {
					c.Set(CheckUserKey, &user)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a resolved viewer.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"errors": gin.H{"body": []string{"authentication required"}},
			})
			return
		}
		c.Next()
	}
}

// Clients send "Authorization: Token <jwt>"; "Bearer" is accepted too.
func tokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
