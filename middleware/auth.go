package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"quizapi/models"
)

const userContextKey = "user"

// Claims is the decoded token payload the identity provider signs. The
// service trusts these fields and nothing else about the caller.
type Claims struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the bearer token and attaches the caller's claim
// set to the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userContextKey, models.User{
			Email:     claims.Email,
			Name:      claims.Name,
			SubjectID: claims.Subject,
			Roles:     claims.Roles,
		})
		c.Next()
	}
}

// RequireRole rejects callers whose claim set lacks the role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok || !user.HasRole(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permissions to access / on this server"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUser returns the claims attached by AuthMiddleware.
func GetUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
